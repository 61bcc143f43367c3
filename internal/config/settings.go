package config

import (
	"os"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLastOpenDir     = "last_open_directory"
	KeyWindowWidth     = "window_width"
	KeyWindowHeight    = "window_height"
	KeyBackgroundColor = "background_color"
	KeyShowTreePanel   = "show_tree_panel"
	KeyShowAxes        = "show_axes"
	KeyFrameStep       = "trajectory_frame_step"
)

// Default values
const (
	DefaultWindowWidth     = 1200
	DefaultWindowHeight    = 800
	DefaultBackgroundColor = "#101018"
	DefaultShowTreePanel   = true
	DefaultShowAxes        = false
	DefaultFrameStep       = 1
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLastOpenDirectory returns the directory the last file was opened
// from, falling back to the user's home directory.
func (s *Settings) GetLastOpenDirectory() string {
	dir := s.app.Preferences().String(KeyLastOpenDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		return home
	}
	if _, err := os.Stat(dir); err != nil {
		return "."
	}
	return dir
}

// SetLastOpenDirectory records where a file was opened from
func (s *Settings) SetLastOpenDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastOpenDir, dir)
}

// GetWindowSize returns the stored main window size
func (s *Settings) GetWindowSize() (width, height int) {
	width = s.app.Preferences().IntWithFallback(KeyWindowWidth, DefaultWindowWidth)
	height = s.app.Preferences().IntWithFallback(KeyWindowHeight, DefaultWindowHeight)
	if width < 400 {
		width = 400
	}
	if height < 300 {
		height = 300
	}
	return width, height
}

// SetWindowSize stores the main window size
func (s *Settings) SetWindowSize(width, height int) {
	s.app.Preferences().SetInt(KeyWindowWidth, width)
	s.app.Preferences().SetInt(KeyWindowHeight, height)
}

// GetBackgroundColor returns the viewport background as a hex string
func (s *Settings) GetBackgroundColor() string {
	return s.app.Preferences().StringWithFallback(KeyBackgroundColor, DefaultBackgroundColor)
}

// SetBackgroundColor stores the viewport background hex string
func (s *Settings) SetBackgroundColor(hex string) {
	if hex == "" {
		hex = DefaultBackgroundColor
	}
	s.app.Preferences().SetString(KeyBackgroundColor, hex)
}

// GetShowTreePanel returns whether the object tree panel is visible
func (s *Settings) GetShowTreePanel() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowTreePanel, DefaultShowTreePanel)
}

// SetShowTreePanel stores the object tree panel visibility
func (s *Settings) SetShowTreePanel(show bool) {
	s.app.Preferences().SetBool(KeyShowTreePanel, show)
}

// GetShowAxes returns whether the origin axes are drawn in the viewport
func (s *Settings) GetShowAxes() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowAxes, DefaultShowAxes)
}

// SetShowAxes stores the origin axes visibility
func (s *Settings) SetShowAxes(show bool) {
	s.app.Preferences().SetBool(KeyShowAxes, show)
}

// GetFrameStep returns how many trajectory frames one step advances
func (s *Settings) GetFrameStep() int {
	step := s.app.Preferences().IntWithFallback(KeyFrameStep, DefaultFrameStep)
	if step < 1 {
		step = 1
	}
	return step
}

// SetFrameStep stores the trajectory frame step
func (s *Settings) SetFrameStep(step int) {
	if step < 1 {
		step = 1
	}
	s.app.Preferences().SetInt(KeyFrameStep, step)
}
