package rstate

import (
	"github.com/pkg/errors"
)

// ErrConfiguration marks bad option values and API calls made in the wrong
// lifecycle state. It is surfaced to the caller and never retried.
var ErrConfiguration = errors.New("configuration error")

// AcceleratorBVH is the only accelerator kind the renderer recognizes.
const AcceleratorBVH = "bvh"

// Options is the enumerated render configuration, fixed while the renderer
// is in the options state.
type Options struct {
	OutputWidth     int
	OutputHeight    int
	SamplesPerPixel int
	MaxBounces      int
	AcceleratorKind string
	WorkerCount     int // 0 picks runtime.NumCPU()
	OutputPath      string
	RNGSeed         int64
}

// DefaultOptions is the configuration the demo scene renders with when no
// options file is given.
func DefaultOptions() Options {
	return Options{
		OutputWidth:     400,
		OutputHeight:    400,
		SamplesPerPixel: 4,
		MaxBounces:      4,
		AcceleratorKind: AcceleratorBVH,
		OutputPath:      "render.png",
	}
}

// Validate rejects out-of-range values and unknown accelerator kinds.
func (o Options) Validate() error {
	if o.OutputWidth <= 0 || o.OutputHeight <= 0 {
		return errors.Wrapf(ErrConfiguration, "output dimensions %dx%d", o.OutputWidth, o.OutputHeight)
	}
	if o.SamplesPerPixel <= 0 {
		return errors.Wrapf(ErrConfiguration, "samplesPerPixel %d", o.SamplesPerPixel)
	}
	if o.MaxBounces <= 0 {
		return errors.Wrapf(ErrConfiguration, "maxBounces %d", o.MaxBounces)
	}
	if o.AcceleratorKind != AcceleratorBVH {
		return errors.Wrapf(ErrConfiguration, "unknown accelerator kind %q", o.AcceleratorKind)
	}
	if o.WorkerCount < 0 {
		return errors.Wrapf(ErrConfiguration, "workerCount %d", o.WorkerCount)
	}
	return nil
}
