// Command elixir renders a scene to an image file.
//
// Usage:
//
//	elixir [--options-file F] [--scene -|PATH] [--output PATH] [--integrator path|whitted]
//
// The only scene source currently implemented is the built-in demo ("-");
// an external scene-description parser is a separate concern. Exit status
// is 0 on success and 1 on configuration, scene, or I/O failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/internal/config"
	"github.com/elixir-render/elixir/internal/imageio"
	"github.com/elixir-render/elixir/internal/report"
	"github.com/elixir-render/elixir/pkg/camera"
	"github.com/elixir-render/elixir/pkg/core"
	"github.com/elixir-render/elixir/pkg/geometry"
	"github.com/elixir-render/elixir/pkg/integrator"
	"github.com/elixir-render/elixir/pkg/lights"
	"github.com/elixir-render/elixir/pkg/material"
	"github.com/elixir-render/elixir/pkg/rstate"
	"github.com/elixir-render/elixir/pkg/scenegraph"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "elixir: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	optionsFile := flag.String("options-file", "", "TOML options file")
	scenePath := flag.String("scene", "-", "scene source; '-' renders the built-in demo scene")
	output := flag.String("output", "", "output image path, overriding the options file")
	integratorKind := flag.String("integrator", "path", "light transport: 'path' or 'whitted'")
	flag.Parse()

	opts := rstate.DefaultOptions()
	if *optionsFile != "" {
		loaded, err := config.Load(*optionsFile)
		if err != nil {
			return err
		}
		opts = loaded
	}
	if *output != "" {
		opts.OutputPath = *output
	}

	var integ integrator.Integrator
	switch *integratorKind {
	case "path":
		integ = integrator.NewPathTracing(opts.MaxBounces)
	case "whitted":
		integ = integrator.NewWhitted(opts.MaxBounces)
	default:
		return errors.Wrapf(rstate.ErrConfiguration, "unknown integrator %q", *integratorKind)
	}

	if *scenePath != "-" {
		return errors.Wrapf(rstate.ErrConfiguration,
			"scene file parsing is not implemented; only the demo scene ('-') is available, got %q", *scenePath)
	}

	renderer, err := rstate.New(opts, rstate.DefaultLogger{})
	if err != nil {
		return err
	}
	if err := renderer.SetCamera(demoCamera()); err != nil {
		return err
	}
	if err := renderer.DescribeScene(setupDemoScene); err != nil {
		return err
	}

	// Interrupt cancels between tiles, leaving a partial image.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := renderer.Render(ctx, integ)
	if err != nil {
		return err
	}

	if err := imageio.Write(result.Film, opts.OutputPath); err != nil {
		return err
	}
	if err := report.FromRender(opts, result).Encode(os.Stdout); err != nil {
		return err
	}
	return renderer.Cleanup()
}

// demoCamera looks down the z axis at the demo arrangement, with a touch of
// depth of field focused on the look-at point.
func demoCamera() camera.Config {
	position := core.NewVec3(0, 1.5, 10)
	lookAt := core.NewVec3(0, 0.5, 0)
	return camera.Config{
		Position:  position,
		LookAt:    lookAt,
		Up:        core.NewVec3(0, 1, 0),
		FOV:       40,
		Aperture:  0.05,
		FocusDist: lookAt.Subtract(position).Length(),
	}
}

// setupDemoScene builds the demo: a diffuse sphere flanked by metal and
// glass on a ground plane, a rotated box, an area light overhead, and a
// dim environment.
func setupDemoScene(scene *scenegraph.Scene) error {
	ground, err := geometry.NewQuad(
		core.NewVec3(-50, 0, -50),
		core.NewVec3(100, 0, 0),
		core.NewVec3(0, 0, 100),
		core.Identity(),
	)
	if err != nil {
		return err
	}
	if err := scene.AddPrimitive(ground, scene.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))); err != nil {
		return err
	}

	center, err := geometry.NewSphere(core.Translate(core.NewVec3(0, 1, 0)), 1)
	if err != nil {
		return err
	}
	if err := scene.AddPrimitive(center, scene.AddMaterial(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))); err != nil {
		return err
	}

	left, err := geometry.NewSphere(core.Translate(core.NewVec3(-2.2, 1, 0)), 1)
	if err != nil {
		return err
	}
	if err := scene.AddPrimitive(left, scene.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05))); err != nil {
		return err
	}

	right, err := geometry.NewSphere(core.Translate(core.NewVec3(2.2, 1, 0)), 1)
	if err != nil {
		return err
	}
	if err := scene.AddPrimitive(right, scene.AddMaterial(material.NewDielectric(1.5))); err != nil {
		return err
	}

	box, err := geometry.NewBox(
		core.Translate(core.NewVec3(0, 0.5, -2.5)).Mul(core.RotateY(math.Pi/6)),
		core.NewVec3(1, 1, 1),
	)
	if err != nil {
		return err
	}
	if err := scene.AddPrimitive(box, scene.AddMaterial(material.NewLambertian(core.NewVec3(0.3, 0.4, 0.7)))); err != nil {
		return err
	}

	// Warm panel overhead, facing down.
	if err := scene.AddQuadLight(
		core.NewVec3(-1.5, 0, -1.5),
		core.NewVec3(3, 0, 0),
		core.NewVec3(0, 0, 3),
		core.Translate(core.NewVec3(0, 6, 0)),
		core.NewVec3(12, 11, 9),
	); err != nil {
		return err
	}

	if err := scene.AddLight(lights.NewPointLight(core.NewVec3(-5, 5, 5), core.NewVec3(40, 40, 40))); err != nil {
		return err
	}

	return scene.AddLight(lights.NewUniformInfiniteLight(core.NewVec3(0.05, 0.06, 0.08)))
}
