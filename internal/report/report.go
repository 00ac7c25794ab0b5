// Package report renders the post-render summary: configuration, sample
// statistics, and the degeneracy counts the error-handling contract
// promises after every render.
package report

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/elixir-render/elixir/pkg/rstate"
)

// Report is the YAML document printed after a render.
type Report struct {
	Output            string  `yaml:"output"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	SamplesPerPixel   int     `yaml:"samplesPerPixel"`
	MaxBounces        int     `yaml:"maxBounces"`
	Seed              int64   `yaml:"rngSeed"`
	Workers           int     `yaml:"workers"`
	TilesRendered     int     `yaml:"tilesRendered"`
	TilesTotal        int     `yaml:"tilesTotal"`
	TotalSamples      int64   `yaml:"totalSamples"`
	DegenerateSamples int64   `yaml:"degenerateSamples"`
	ElapsedSeconds    float64 `yaml:"elapsedSeconds"`
	Cancelled         bool    `yaml:"cancelled"`
}

// FromRender assembles the report for a finished (or cancelled) render.
func FromRender(opts rstate.Options, result *rstate.Result) Report {
	return Report{
		Output:            opts.OutputPath,
		Width:             opts.OutputWidth,
		Height:            opts.OutputHeight,
		SamplesPerPixel:   opts.SamplesPerPixel,
		MaxBounces:        opts.MaxBounces,
		Seed:              opts.RNGSeed,
		Workers:           result.Stats.Workers,
		TilesRendered:     result.Stats.TilesRendered,
		TilesTotal:        result.Stats.TilesTotal,
		TotalSamples:      result.Stats.TotalSamples,
		DegenerateSamples: result.Stats.DegenerateSamples,
		ElapsedSeconds:    result.Stats.Elapsed.Seconds(),
		Cancelled:         result.Cancelled,
	}
}

// Encode emits the report as YAML.
func (r Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encoding render report")
	}
	return nil
}
