package flow

import (
	"github.com/rs/zerolog"

	"github.com/askiada/go-flow/pkg/flow/model"
)

// Option configures a flow at construction time.
type Option func(f *Flow)

// WithLogger replaces the logger warnings and progress are reported on.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Flow) {
		f.log = logger
	}
}

// WithVerbose enables progress reporting during training.
func WithVerbose() Option {
	return func(f *Flow) {
		f.verbose = true
		f.log = f.log.Level(zerolog.InfoLevel)
	}
}

// WithCrashRecovery arms crash recovery with an engine-chosen dump file.
func WithCrashRecovery() Option {
	return func(f *Flow) {
		f.recovery = crashRecovery{enabled: true}
	}
}

// WithCrashRecoveryFile arms crash recovery with a caller-chosen dump file.
func WithCrashRecoveryFile(path string) Option {
	return func(f *Flow) {
		f.recovery = crashRecovery{enabled: true, path: path}
	}
}

// WithObserver registers a flow observer, such as measure.FlowMeasure or
// drawer.FlowDrawer.
func WithObserver(obs model.FlowOption) Option {
	return func(f *Flow) {
		f.opts = append(f.opts, obs)
	}
}
