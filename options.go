package polytri

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// FacePolicy decides what a mesh-level call does with a face that fails to
// triangulate.
type FacePolicy string

const (
	// PolicyAbort stops at the first failing face and returns its error.
	PolicyAbort FacePolicy = "abort"
	// PolicySkip logs the failure, leaves the face out and carries on.
	PolicySkip FacePolicy = "skip"
	// PolicyFan fan-triangulates n-gons whose ear clipping stalls and skips
	// faces that fail for any other reason.
	PolicyFan FacePolicy = "fan"
)

// Options configures mesh triangulation. It can be loaded from YAML.
type Options struct {
	OnFaceError FacePolicy `yaml:"on_face_error"`

	// ReferencePredicates switches ear detection to the reference exporter's
	// tolerant tests.
	ReferencePredicates bool `yaml:"reference_predicates"`

	// Workers is the goroutine count for TriangulateMeshParallel; 0 or less
	// means one per CPU.
	Workers int `yaml:"workers"`

	// PlanarityTolerance, when positive, logs n-gons whose corners stray
	// further than this from their fitted plane.
	PlanarityTolerance float64 `yaml:"planarity_tolerance"`

	Logger *slog.Logger `yaml:"-"`
}

// Option adjusts the Options of a mesh-level call.
type Option func(*Options)

// WithFacePolicy sets what happens to faces that fail to triangulate.
func WithFacePolicy(p FacePolicy) Option {
	return func(o *Options) {
		o.OnFaceError = p
	}
}

// WithReferencePredicates switches ear detection to ReferencePredicates.
func WithReferencePredicates() Option {
	return func(o *Options) {
		o.ReferencePredicates = true
	}
}

// WithWorkers sets the goroutine count of the parallel calls.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithLogger sets the logger for skipped faces and planarity warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOptions replaces every setting with the given ones, typically read by
// LoadOptions. Later options still apply on top.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

// DefaultOptions aborts on the first failing face and uses RobustPredicates.
func DefaultOptions() Options {
	return Options{OnFaceError: PolicyAbort}
}

// LoadOptions reads options from a YAML file. Missing keys keep their
// defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("could not read options file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("error parsing options file %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid options file %s: %w", path, err)
	}
	return opts, nil
}

// Validate reports an unknown or empty face policy.
func (o Options) Validate() error {
	switch o.OnFaceError {
	case PolicyAbort, PolicySkip, PolicyFan:
		return nil
	case "":
		return fmt.Errorf("on_face_error is empty")
	default:
		return fmt.Errorf("unknown on_face_error policy %q", o.OnFaceError)
	}
}

func (o Options) clipOptions() []ClipOption {
	var opts []ClipOption
	if o.ReferencePredicates {
		opts = append(opts, WithPredicates(ReferencePredicates))
	}
	if o.OnFaceError == PolicyFan {
		opts = append(opts, WithFanFallback())
	}
	return opts
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}
