package lifecycle

// AboutInfo is the static metadata shown in the about dialog.
type AboutInfo struct {
	ApplicationName  string
	ApplicationIcon  string
	Version          string
	DeveloperName    string
	Developers       []string
	Designers        []string
	License          string
	IssueURL         string
	Website          string
	Acknowledgements []AcknowledgementSection
}

// AcknowledgementSection is a titled list of credits. Entries use the
// "Name https://example.com" form.
type AcknowledgementSection struct {
	Title   string
	Entries []string
}

// DefaultAbout returns the application's about metadata.
func DefaultAbout(appID, version string) AboutInfo {
	info := AboutInfo{
		ApplicationName: "Packet",
		ApplicationIcon: appID,
		Version:         version,
		DeveloperName:   "nozwock",
		Developers:      []string{"nozwock https://github.com/nozwock"},
		Designers:       []string{"Dominik Baran https://gitlab.gnome.org/wallaby"},
		License:         "GPL-3.0",
		IssueURL:        "https://github.com/nozwock/packet/issues",
		Website:         "https://github.com/nozwock/packet",
	}
	info.Acknowledgements = append(info.Acknowledgements, AcknowledgementSection{
		Title:   "Similar Projects",
		Entries: []string{
			"NearDrop https://github.com/grishka/NearDrop/",
			"rquickshare https://github.com/Martichou/rquickshare/",
		},
	})
	return info
}
