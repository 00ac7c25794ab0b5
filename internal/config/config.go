// Package config loads render options from a TOML file. Keys the renderer
// does not know are rejected rather than ignored, so a typo in an options
// file fails loudly instead of silently rendering with defaults.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/pkg/rstate"
)

// fileOptions mirrors rstate.Options with the option names the CLI
// documents.
type fileOptions struct {
	OutputWidth     int    `toml:"outputWidth"`
	OutputHeight    int    `toml:"outputHeight"`
	SamplesPerPixel int    `toml:"samplesPerPixel"`
	MaxBounces      int    `toml:"maxBounces"`
	AcceleratorKind string `toml:"acceleratorKind"`
	WorkerCount     int    `toml:"workerCount"`
	OutputPath      string `toml:"outputPath"`
	RNGSeed         int64  `toml:"rngSeed"`
}

// Load reads the options file, applying its keys over the defaults. Absent
// keys keep their default values; unknown keys are a configuration error.
func Load(path string) (rstate.Options, error) {
	defaults := rstate.DefaultOptions()
	opts := fileOptions{
		OutputWidth:     defaults.OutputWidth,
		OutputHeight:    defaults.OutputHeight,
		SamplesPerPixel: defaults.SamplesPerPixel,
		MaxBounces:      defaults.MaxBounces,
		AcceleratorKind: defaults.AcceleratorKind,
		WorkerCount:     defaults.WorkerCount,
		OutputPath:      defaults.OutputPath,
		RNGSeed:         defaults.RNGSeed,
	}

	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return rstate.Options{}, errors.Wrapf(err, "reading options file %s", path)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		names := make([]string, len(unknown))
		for i, key := range unknown {
			names[i] = key.String()
		}
		return rstate.Options{}, errors.Wrapf(rstate.ErrConfiguration,
			"unknown options in %s: %s", path, strings.Join(names, ", "))
	}

	result := rstate.Options{
		OutputWidth:     opts.OutputWidth,
		OutputHeight:    opts.OutputHeight,
		SamplesPerPixel: opts.SamplesPerPixel,
		MaxBounces:      opts.MaxBounces,
		AcceleratorKind: opts.AcceleratorKind,
		WorkerCount:     opts.WorkerCount,
		OutputPath:      opts.OutputPath,
		RNGSeed:         opts.RNGSeed,
	}
	if err := result.Validate(); err != nil {
		return rstate.Options{}, err
	}
	return result, nil
}
