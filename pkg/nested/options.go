package nested

import (
	"log/slog"

	"github.com/loom-ui/loom/pkg/group"
)

// SelectionMode controls how a select/unselect/toggle on one node maps onto
// mutations across the tree.
type SelectionMode int

const (
	// SelectCascade propagates selection to all descendants and recomputes
	// selected/mixed state for every ancestor. Default.
	SelectCascade SelectionMode = iota

	// SelectIndependent affects only the target node.
	SelectIndependent

	// SelectLeaf maps a selection on a branch onto its leaf descendants;
	// branch nodes themselves are never selected.
	SelectLeaf
)

// OpenMode picks the built-in open strategy.
type OpenMode int

const (
	// OpenMultiple lets any number of nodes be open. Default.
	OpenMultiple OpenMode = iota

	// OpenSingle closes every previously open node outside the opened
	// node's ancestor chain (accordion behavior).
	OpenSingle
)

type config struct {
	selection  SelectionMode
	openMode   OpenMode
	strategy   OpenStrategy
	openAll    bool
	autoReveal bool

	mandatory group.Mandatory
	active    group.ActiveMode
	logger    *slog.Logger
	recorder  group.Recorder
}

// Option configures a Nested tree at construction.
type Option func(*config)

// WithSelection sets the selection mode.
func WithSelection(mode SelectionMode) Option {
	return func(c *config) {
		c.selection = mode
	}
}

// WithOpenMode picks one of the built-in open strategies.
func WithOpenMode(mode OpenMode) Option {
	return func(c *config) {
		c.openMode = mode
	}
}

// WithOpenStrategy installs a custom open strategy, overriding WithOpenMode.
func WithOpenStrategy(s OpenStrategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithOpenAll auto-opens a parent whenever a child registers under it.
func WithOpenAll() Option {
	return func(c *config) {
		c.openAll = true
	}
}

// WithAutoReveal opens a node's ancestors whenever the node is opened, so
// deep opens are always visible.
func WithAutoReveal() Option {
	return func(c *config) {
		c.autoReveal = true
	}
}

// WithMandatory sets the mandatory-selection policy (see package group).
func WithMandatory(m group.Mandatory) Option {
	return func(c *config) {
		c.mandatory = m
	}
}

// WithActiveMode sets the active-set cardinality (see package group).
func WithActiveMode(mode group.ActiveMode) Option {
	return func(c *config) {
		c.active = mode
	}
}

// WithLogger sets the logger for warn-and-degrade paths.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRecorder sets the instrumentation sink for registry operations.
func WithRecorder(r group.Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

func defaultNestedConfig() config {
	return config{
		selection: SelectCascade,
		openMode:  OpenMultiple,
		mandatory: group.MandatoryOff,
		active:    group.ActiveSingle,
		logger:    slog.Default(),
		recorder:  group.NopRecorder{},
	}
}
