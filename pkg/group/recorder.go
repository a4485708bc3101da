package group

// Recorder receives registry operation events for instrumentation.
// Implementations must be safe for concurrent use and must not call back
// into the group.
type Recorder interface {
	// RecordRegister is called after n items are registered.
	RecordRegister(n int)

	// RecordUnregister is called after n items are unregistered.
	RecordUnregister(n int)

	// RecordSelection is called after a selection operation completes.
	// op is one of "select", "unselect", "toggle", "select_all",
	// "unselect_all", "toggle_all".
	RecordSelection(op string)

	// RecordSize reports the registry size after a structural mutation.
	RecordSize(n int)
}

// NopRecorder discards all events. It is the default recorder.
type NopRecorder struct{}

func (NopRecorder) RecordRegister(int)     {}
func (NopRecorder) RecordUnregister(int)   {}
func (NopRecorder) RecordSelection(string) {}
func (NopRecorder) RecordSize(int)         {}
