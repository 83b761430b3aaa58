// Package ui provides the about dialog.
package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"packet/internal/lifecycle"
)

// aboutMarkdown renders the about metadata.
func aboutMarkdown(info lifecycle.AboutInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nVersion %s\n\n", info.ApplicationName, info.Version)
	fmt.Fprintf(&b, "Developed by %s\n\n", info.DeveloperName)

	writeCredits(&b, "Developers", info.Developers)
	writeCredits(&b, "Designers", info.Designers)
	for _, section := range info.Acknowledgements {
		writeCredits(&b, section.Title, section.Entries)
	}

	fmt.Fprintf(&b, "[Website](%s) · [Report an Issue](%s)\n\n", info.Website, info.IssueURL)
	fmt.Fprintf(&b, "License: %s\n", info.License)
	return b.String()
}

// writeCredits writes a titled list; "Name https://..." entries become links.
func writeCredits(b *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, entry := range entries {
		name, link, ok := strings.Cut(entry, " http")
		if ok {
			fmt.Fprintf(b, "- [%s](http%s)\n", name, link)
		} else {
			fmt.Fprintf(b, "- %s\n", entry)
		}
	}
	b.WriteString("\n")
}

// showAboutDialog shows the about dialog over parent, or in its own window
// when there is no main window yet.
func showAboutDialog(a fyne.App, info lifecycle.AboutInfo, parent *MainWindow) {
	body := widget.NewRichTextFromMarkdown(aboutMarkdown(info))
	body.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(container.NewCenter(widget.NewIcon(iconNamed(info.ApplicationIcon))), body)

	title := "About " + info.ApplicationName
	if parent == nil {
		w := a.NewWindow(title)
		w.SetContent(container.NewVScroll(content))
		w.Resize(fyne.NewSize(360, 480))
		w.Show()
		return
	}

	scroll := container.NewVScroll(content)
	scroll.SetMinSize(fyne.NewSize(340, 420))
	dialog.ShowCustom(title, "Close", scroll, parent.window)
}
