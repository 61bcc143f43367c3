// Package icons renders the application icon: a stylized molecule
// drawn with the same rasterizer that powers the viewport, written out
// as PNG in the sizes desktop environments expect.
package icons

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chemvista/chemvista/internal/logger"
	"github.com/chemvista/chemvista/internal/render"
)

// DefaultSizes are the icon sizes generated when none are requested.
var DefaultSizes = []int{16, 32, 48, 64, 128, 256, 512}

// iconScene builds the stylized molecule: a central atom with three
// neighbors, drawn on a dark background.
func iconScene() *render.Scene {
	s := render.NewScene(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})

	center := r3.Vec{}
	arms := []struct {
		pos r3.Vec
		col color.NRGBA
	}{
		{r3.Vec{X: 1.2, Y: 0.5}, color.NRGBA{R: 0xd8, G: 0x3c, B: 0x3c, A: 0xff}},
		{r3.Vec{X: -1.1, Y: 0.7, Z: 0.3}, color.NRGBA{R: 0x3c, G: 0x6e, B: 0xd8, A: 0xff}},
		{r3.Vec{Y: -1.2, Z: -0.4}, color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}},
	}

	s.AddSphere(render.Sphere{
		Center: center,
		Radius: 0.55,
		Color:  color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
		Alpha:  1,
	})
	for _, arm := range arms {
		s.AddCylinder(render.Cylinder{
			A: center, B: arm.pos,
			Radius: 0.12,
			Color:  color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},
			Alpha:  1,
		})
		s.AddSphere(render.Sphere{
			Center: arm.pos,
			Radius: 0.38,
			Color:  arm.col,
			Alpha:  1,
		})
	}
	return s
}

// fieldGlyphScene suggests an isosurface pair: two lobes in the
// default isosurface colors.
func fieldGlyphScene() *render.Scene {
	s := render.NewScene(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})
	s.AddSphere(render.Sphere{
		Center: r3.Vec{X: -0.7},
		Radius: 0.65,
		Color:  color.NRGBA{R: 0x1e, G: 0x52, B: 0xc8, A: 0xff},
		Alpha:  0.85,
	})
	s.AddSphere(render.Sphere{
		Center: r3.Vec{X: 0.7},
		Radius: 0.65,
		Color:  color.NRGBA{R: 0xc8, G: 0x28, B: 0x1e, A: 0xff},
		Alpha:  0.85,
	})
	s.AddSphere(render.Sphere{
		Center: r3.Vec{},
		Radius: 0.2,
		Color:  color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},
		Alpha:  1,
	})
	return s
}

// trajectoryGlyphScene shows a molecule sliding along a path: three
// spheres fading along a line.
func trajectoryGlyphScene() *render.Scene {
	s := render.NewScene(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})
	s.AddCylinder(render.Cylinder{
		A: r3.Vec{X: -1.2, Y: -0.3}, B: r3.Vec{X: 1.2, Y: 0.3},
		Radius: 0.08,
		Color:  color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		Alpha:  1,
	})
	steps := []struct {
		pos   r3.Vec
		alpha float64
	}{
		{r3.Vec{X: -1.2, Y: -0.3}, 0.35},
		{r3.Vec{Y: 0}, 0.6},
		{r3.Vec{X: 1.2, Y: 0.3}, 1},
	}
	for _, st := range steps {
		s.AddSphere(render.Sphere{
			Center: st.pos,
			Radius: 0.45,
			Color:  color.NRGBA{R: 0x3c, G: 0x6e, B: 0xd8, A: 0xff},
			Alpha:  st.alpha,
		})
	}
	return s
}

// GlyphNames lists the object-tree glyphs Generate produces alongside
// the application icon.
var GlyphNames = []string{"molecule", "field", "trajectory"}

func glyphScene(name string) (*render.Scene, error) {
	switch name {
	case "molecule":
		return iconScene(), nil
	case "field":
		return fieldGlyphScene(), nil
	case "trajectory":
		return trajectoryGlyphScene(), nil
	default:
		return nil, fmt.Errorf("unknown glyph %q", name)
	}
}

func renderScene(s *render.Scene, size int) image.Image {
	cam := render.NewCamera()
	if min, max, ok := s.Bounds(); ok {
		cam.FitBounds(min, max)
	}
	return s.Render(cam, size, size)
}

// Render draws the application icon at the given pixel size.
func Render(size int) (image.Image, error) {
	if size < 8 {
		return nil, fmt.Errorf("icon size %d too small", size)
	}
	return renderScene(iconScene(), size), nil
}

// RenderGlyph draws one of the object-tree glyphs.
func RenderGlyph(name string, size int) (image.Image, error) {
	if size < 8 {
		return nil, fmt.Errorf("icon size %d too small", size)
	}
	s, err := glyphScene(name)
	if err != nil {
		return nil, err
	}
	return renderScene(s, size), nil
}

// PNG renders the application icon and encodes it.
func PNG(size int) ([]byte, error) {
	img, err := Render(size)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func writePNG(path string, img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Generate writes icon_<size>.png for every size into dir, icon.png at
// the largest size, and one glyph_<name>.png per tree glyph. The
// directory is created if missing.
func Generate(dir string, sizes []int) error {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	log := logger.For("icons")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	largest := sizes[0]
	for _, size := range sizes {
		if size > largest {
			largest = size
		}
		img, err := Render(size)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("icon_%d.png", size))
		if err := writePNG(path, img); err != nil {
			return err
		}
		log.Debug().Str("file", path).Int("size", size).Msg("wrote icon")
	}

	img, err := Render(largest)
	if err != nil {
		return err
	}
	if err := writePNG(filepath.Join(dir, "icon.png"), img); err != nil {
		return err
	}

	const glyphSize = 64
	for _, name := range GlyphNames {
		img, err := RenderGlyph(name, glyphSize)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("glyph_%s.png", name))
		if err := writePNG(path, img); err != nil {
			return err
		}
		log.Debug().Str("file", path).Msg("wrote glyph")
	}

	log.Info().Str("dir", dir).Int("sizes", len(sizes)).Int("glyphs", len(GlyphNames)).Msg("icons generated")
	return nil
}
