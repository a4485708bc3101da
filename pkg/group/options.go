package group

import "log/slog"

// Mandatory controls whether the selection may become empty.
type Mandatory int

const (
	// MandatoryOff places no constraint on the selection.
	MandatoryOff Mandatory = iota

	// MandatoryOn rejects an unselect that would empty the selection.
	MandatoryOn

	// MandatoryForce additionally auto-selects: the first registered item
	// is selected on registration, and unregistering the last selected
	// item reselects another item when one exists.
	MandatoryForce
)

// ActiveMode controls the cardinality of the active (highlight) set.
type ActiveMode int

const (
	// ActiveSingle keeps at most one active ID; activating a new ID
	// deactivates all others.
	ActiveSingle ActiveMode = iota

	// ActiveMultiple places no constraint on the active set.
	ActiveMultiple
)

// config holds resolved construction options.
type config struct {
	multiple  bool
	mandatory Mandatory
	active    ActiveMode
	logger    *slog.Logger
	recorder  Recorder
}

// Option configures a Group at construction.
type Option func(*config)

// WithMultiple allows more than one item to be selected at a time.
// Default is single selection: selecting an item replaces the previous
// selection.
func WithMultiple() Option {
	return func(c *config) {
		c.multiple = true
	}
}

// WithMandatory sets the mandatory-selection policy.
func WithMandatory(m Mandatory) Option {
	return func(c *config) {
		c.mandatory = m
	}
}

// WithActiveMode sets the cardinality of the active set.
// Default is ActiveSingle.
func WithActiveMode(mode ActiveMode) Option {
	return func(c *config) {
		c.active = mode
	}
}

// WithLogger sets the logger for warn-and-degrade paths (duplicate IDs,
// unknown parents). Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRecorder sets the instrumentation sink for registry operations.
// See package telemetry for a Prometheus-backed implementation.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

func defaultConfig() config {
	return config{
		multiple:  false,
		mandatory: MandatoryOff,
		active:    ActiveSingle,
		logger:    slog.Default(),
		recorder:  NopRecorder{},
	}
}
