// Package style loads the packaged application stylesheet and exposes it as
// a fyne theme.
package style

import (
	_ "embed"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed stylesheet.toml
var packaged []byte

// Sheet is a parsed stylesheet. It implements fyne.Theme and defers to its
// base theme for every colour, size, font and icon it does not name.
type Sheet struct {
	name  string
	light map[fyne.ThemeColorName]color.Color
	dark  map[fyne.ThemeColorName]color.Color
	sizes map[fyne.ThemeSizeName]float32
	base  fyne.Theme
}

var _ fyne.Theme = (*Sheet)(nil)

// LoadPackaged parses the stylesheet embedded in the binary.
func LoadPackaged() (*Sheet, error) {
	return Parse(packaged)
}

// Parse reads a TOML stylesheet.
func Parse(data []byte) (*Sheet, error) {
	var raw struct {
		Name   string `toml:"name"`
		Colors struct {
			Light map[string]string `toml:"light"`
			Dark  map[string]string `toml:"dark"`
		} `toml:"colors"`
		Sizes map[string]float32 `toml:"sizes"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}

	light, err := colorTable(raw.Colors.Light)
	if err != nil {
		return nil, fmt.Errorf("light colors: %w", err)
	}
	dark, err := colorTable(raw.Colors.Dark)
	if err != nil {
		return nil, fmt.Errorf("dark colors: %w", err)
	}

	sizes := make(map[fyne.ThemeSizeName]float32, len(raw.Sizes))
	for name, v := range raw.Sizes {
		if v < 0 {
			return nil, fmt.Errorf("size %q: negative value %v", name, v)
		}
		sizes[fyne.ThemeSizeName(name)] = v
	}

	return &Sheet{
		name:  strings.TrimSpace(raw.Name),
		light: light,
		dark:  dark,
		sizes: sizes,
		base:  theme.DefaultTheme(),
	}, nil
}

// Name returns the stylesheet's declared name.
func (s *Sheet) Name() string {
	return s.name
}

// Color implements fyne.Theme.
func (s *Sheet) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	table := s.light
	if variant == theme.VariantDark {
		table = s.dark
	}
	if c, ok := table[name]; ok {
		return c
	}
	return s.base.Color(name, variant)
}

// Font implements fyne.Theme.
func (s *Sheet) Font(style fyne.TextStyle) fyne.Resource {
	return s.base.Font(style)
}

// Icon implements fyne.Theme.
func (s *Sheet) Icon(name fyne.ThemeIconName) fyne.Resource {
	return s.base.Icon(name)
}

// Size implements fyne.Theme.
func (s *Sheet) Size(name fyne.ThemeSizeName) float32 {
	if v, ok := s.sizes[name]; ok {
		return v
	}
	return s.base.Size(name)
}

func colorTable(in map[string]string) (map[fyne.ThemeColorName]color.Color, error) {
	out := make(map[fyne.ThemeColorName]color.Color, len(in))
	for name, hex := range in {
		c, err := parseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", name, err)
		}
		out[fyne.ThemeColorName(name)] = c
	}
	return out, nil
}

// parseHex accepts #rgb, #rrggbb and #rrggbbaa.
func parseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
