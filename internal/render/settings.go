// Package render turns scene content into images: render settings,
// an orbiting perspective camera, a software rasterizer and isosurface
// extraction for volumetric fields.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"
)

// MoleculeSettings controls how a molecule is drawn.
type MoleculeSettings struct {
	ShowHydrogens bool
	ShowNumbers   bool
	Alpha         float64
	Resolution    int
	// ColorOverrides replaces the element color for specific symbols.
	ColorOverrides map[string]color.NRGBA
}

// FieldSettings controls how a scalar field is drawn.
type FieldSettings struct {
	// IsoValues and IsoColors pair up; when there are fewer colors than
	// values the last color repeats.
	IsoValues []float64
	IsoColors []color.NRGBA
	Opacity   float64

	ShowGridSurface  bool
	GridSurfaceColor color.NRGBA

	ShowGridPoints  bool
	GridPointsColor color.NRGBA
	GridPointSize   int

	ShowFilteredPoints bool
	PointValueRange    [2]float64
}

var (
	colorBlue = color.NRGBA{R: 0x1e, G: 0x52, B: 0xc8, A: 0xff}
	colorRed  = color.NRGBA{R: 0xc8, G: 0x28, B: 0x1e, A: 0xff}
)

// DefaultMoleculeSettings mirrors the application defaults; the values
// can be overridden by a settings file (see LoadDefaults).
func DefaultMoleculeSettings() MoleculeSettings {
	return MoleculeSettings{
		ShowHydrogens: true,
		ShowNumbers:   false,
		Alpha:         1.0,
		Resolution:    20,
	}
}

// DefaultFieldSettings returns the stock scalar-field settings: a
// symmetric isosurface pair in blue/red at low opacity.
func DefaultFieldSettings() FieldSettings {
	return FieldSettings{
		IsoValues:        []float64{-0.1, 0.1},
		IsoColors:        []color.NRGBA{colorBlue, colorRed},
		Opacity:          0.3,
		GridSurfaceColor: colorBlue,
		GridPointsColor:  colorRed,
		GridPointSize:    5,
		PointValueRange:  [2]float64{0.0, 1.0},
	}
}

// Copy returns an independent settings value.
func (s MoleculeSettings) Copy() MoleculeSettings {
	c := s
	if s.ColorOverrides != nil {
		c.ColorOverrides = make(map[string]color.NRGBA, len(s.ColorOverrides))
		for k, v := range s.ColorOverrides {
			c.ColorOverrides[k] = v
		}
	}
	return c
}

// Copy returns an independent settings value.
func (s FieldSettings) Copy() FieldSettings {
	c := s
	c.IsoValues = append([]float64(nil), s.IsoValues...)
	c.IsoColors = append([]color.NRGBA(nil), s.IsoColors...)
	return c
}

// IsoColorAt returns the color for isosurface i, repeating the last
// color when there are fewer colors than isovalues.
func (s FieldSettings) IsoColorAt(i int) color.NRGBA {
	if len(s.IsoColors) == 0 {
		return colorBlue
	}
	if i >= len(s.IsoColors) {
		return s.IsoColors[len(s.IsoColors)-1]
	}
	return s.IsoColors[i]
}

// Defaults bundles the configurable render defaults.
type Defaults struct {
	Molecule   MoleculeSettings
	Field      FieldSettings
	Background color.NRGBA
}

// NewDefaults returns the built-in defaults.
func NewDefaults() Defaults {
	return Defaults{
		Molecule:   DefaultMoleculeSettings(),
		Field:      DefaultFieldSettings(),
		Background: color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff},
	}
}

// LoadDefaults reads a YAML settings file and overlays it on the
// built-in defaults. Only keys present in the file override anything.
func LoadDefaults(path string) (Defaults, error) {
	d := NewDefaults()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return d, fmt.Errorf("read settings file: %w", err)
	}

	if v.IsSet("molecule.show_hydrogens") {
		d.Molecule.ShowHydrogens = v.GetBool("molecule.show_hydrogens")
	}
	if v.IsSet("molecule.show_numbers") {
		d.Molecule.ShowNumbers = v.GetBool("molecule.show_numbers")
	}
	if v.IsSet("molecule.alpha") {
		d.Molecule.Alpha = v.GetFloat64("molecule.alpha")
	}
	if v.IsSet("molecule.resolution") {
		d.Molecule.Resolution = v.GetInt("molecule.resolution")
	}
	if v.IsSet("molecule.colors") {
		overrides := map[string]color.NRGBA{}
		for sym, hex := range v.GetStringMapString("molecule.colors") {
			c, err := ParseHexColor(hex)
			if err != nil {
				return d, fmt.Errorf("molecule.colors.%s: %w", sym, err)
			}
			// viper lowercases map keys; element symbols are cased.
			overrides[strings.ToUpper(sym[:1])+sym[1:]] = c
		}
		d.Molecule.ColorOverrides = overrides
	}

	if v.IsSet("field.iso_values") {
		vals := []float64{}
		for _, raw := range v.GetStringSlice("field.iso_values") {
			var f float64
			if _, err := fmt.Sscanf(raw, "%g", &f); err != nil {
				return d, fmt.Errorf("field.iso_values: bad value %q", raw)
			}
			vals = append(vals, f)
		}
		d.Field.IsoValues = vals
	}
	if v.IsSet("field.iso_colors") {
		cols := []color.NRGBA{}
		for _, hex := range v.GetStringSlice("field.iso_colors") {
			c, err := ParseHexColor(hex)
			if err != nil {
				return d, fmt.Errorf("field.iso_colors: %w", err)
			}
			cols = append(cols, c)
		}
		d.Field.IsoColors = cols
	}
	if v.IsSet("field.opacity") {
		d.Field.Opacity = v.GetFloat64("field.opacity")
	}
	if v.IsSet("background") {
		c, err := ParseHexColor(v.GetString("background"))
		if err != nil {
			return d, fmt.Errorf("background: %w", err)
		}
		d.Background = c
	}

	return d, nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var c color.NRGBA
	c.A = 0xff
	switch len(s) {
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return c, fmt.Errorf("bad color %q", s)
		}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return c, fmt.Errorf("bad color %q", s)
		}
	default:
		return c, fmt.Errorf("bad color %q: want #rrggbb or #rrggbbaa", s)
	}
	return c, nil
}
