package plugin

// Host is the surface the embedding editor provides to the plugin.
type Host interface {
	// Status shows a transient message in the status line.
	Status(msg string)

	// Alert shows a message the user must acknowledge.
	Alert(msg string)

	// Confirm asks a yes/no question and reports the answer.
	Confirm(msg string) bool

	// OpenFile opens the file at path in the editor and reports
	// whether it could.
	OpenFile(path string) bool

	// SettingsDir returns the directory holding plugin settings.
	SettingsDir() string
}
