// Package ui provides keyboard accelerator parsing.
package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var accelModifiers = map[string]fyne.KeyModifier{
	"control": fyne.KeyModifierControl,
	"ctrl":    fyne.KeyModifierControl,
	"shift":   fyne.KeyModifierShift,
	"alt":     fyne.KeyModifierAlt,
	"super":   fyne.KeyModifierSuper,
	"meta":    fyne.KeyModifierSuper,
	"primary": fyne.KeyModifierShortcutDefault,
}

var accelKeys = map[string]fyne.KeyName{
	"comma":     fyne.KeyComma,
	"period":    fyne.KeyPeriod,
	"minus":     fyne.KeyMinus,
	"equal":     fyne.KeyEqual,
	"slash":     fyne.KeySlash,
	"space":     fyne.KeySpace,
	"escape":    fyne.KeyEscape,
	"return":    fyne.KeyReturn,
	"tab":       fyne.KeyTab,
	"delete":    fyne.KeyDelete,
	"backspace": fyne.KeyBackspace,
}

// parseAccel converts a chord such as "<Control>q", "<Control>comma" or
// "F1" into a desktop shortcut.
func parseAccel(accel string) (*desktop.CustomShortcut, error) {
	rest := strings.TrimSpace(accel)
	var mods fyne.KeyModifier

	for strings.HasPrefix(rest, "<") {
		end := strings.Index(rest, ">")
		if end < 0 {
			return nil, fmt.Errorf("accelerator %q: unterminated modifier", accel)
		}
		name := strings.ToLower(rest[1:end])
		mod, ok := accelModifiers[name]
		if !ok {
			return nil, fmt.Errorf("accelerator %q: unknown modifier %q", accel, name)
		}
		mods |= mod
		rest = rest[end+1:]
	}

	key, err := accelKey(rest)
	if err != nil {
		return nil, fmt.Errorf("accelerator %q: %w", accel, err)
	}
	return &desktop.CustomShortcut{KeyName: key, Modifier: mods}, nil
}

func accelKey(name string) (fyne.KeyName, error) {
	if name == "" {
		return "", errors.New("missing key")
	}
	if key, ok := accelKeys[strings.ToLower(name)]; ok {
		return key, nil
	}
	if len(name) == 1 {
		return fyne.KeyName(strings.ToUpper(name)), nil
	}
	upper := strings.ToUpper(name)
	if n, err := strconv.Atoi(upper[1:]); upper[0] == 'F' && err == nil && n >= 1 && n <= 12 {
		return fyne.KeyName(upper), nil
	}
	return "", fmt.Errorf("unknown key %q", name)
}
