// Package ui provides the display that applies installed stylesheets.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"packet/internal/style"
)

// Display applies the highest-priority installed stylesheet as the app theme.
type Display struct {
	app     fyne.App
	stack   style.Stack
	variant string
}

func newDisplay(a fyne.App, variant string) *Display {
	return &Display{app: a, variant: variant}
}

// AddStyleSheet installs sheet at priority and re-applies the theme.
func (d *Display) AddStyleSheet(sheet *style.Sheet, priority style.Priority) {
	d.stack.Add(sheet, priority)
	d.apply()
}

// SetVariant forces "light" or "dark"; anything else follows the system.
func (d *Display) SetVariant(variant string) {
	d.variant = variant
	d.apply()
}

// Theme returns the theme currently applied.
func (d *Display) Theme() fyne.Theme {
	if d.stack.Len() == 0 {
		return nil
	}
	sheet, _, _ := d.stack.Top()
	switch d.variant {
	case "light":
		return &variantTheme{Theme: sheet, variant: theme.VariantLight}
	case "dark":
		return &variantTheme{Theme: sheet, variant: theme.VariantDark}
	}
	return sheet
}

func (d *Display) apply() {
	if t := d.Theme(); t != nil {
		d.app.Settings().SetTheme(t)
	}
}

// variantTheme pins a theme to one variant regardless of the system setting.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}
