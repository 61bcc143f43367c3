package ui

import (
	"fyne.io/fyne/v2"

	"github.com/chemvista/chemvista/internal/icons"
)

const appIconSize = 256

// AppIconResource renders the application icon once and wraps it as a
// Fyne resource. Returns nil if rendering fails; callers fall back to
// the default icon.
func AppIconResource() fyne.Resource {
	data, err := icons.PNG(appIconSize)
	if err != nil {
		return nil
	}
	return &fyne.StaticResource{
		StaticName:    "chemvista.png",
		StaticContent: data,
	}
}
