// Package imageio turns the linear-RGB film into a gamma-corrected image
// on disk. The encoder is chosen by the output path's extension.
package imageio

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/pkg/film"
)

// displayGamma is the standard monitor gamma applied on write-out; the film
// itself stays linear.
const displayGamma = 2.2

// ToImage converts the film to an 8-bit image, applying gamma correction
// and clamping.
func ToImage(f *film.Film) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			c := f.Average(x, y).GammaCorrect(displayGamma).Clamp(0, 1)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(c.X*255 + 0.5),
				G: uint8(c.Y*255 + 0.5),
				B: uint8(c.Z*255 + 0.5),
				A: 255,
			})
		}
	}
	return img
}

// Write encodes the film to the given path.
func Write(f *film.Film, path string) error {
	if err := imaging.Save(ToImage(f), path); err != nil {
		return errors.Wrapf(err, "writing render to %s", path)
	}
	return nil
}
