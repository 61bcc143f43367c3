package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/chemvista/chemvista/internal/render"
)

// Viewport constants
const (
	ViewportOrbitSpeed  = 0.01
	ViewportZoomInStep  = 0.9
	ViewportZoomOutStep = 1.1
	ViewportMinSize     = 320
)

// Viewport is the 3D view: a raster redrawn from the scene manager
// through an orbiting camera. Dragging orbits, scrolling zooms.
type Viewport struct {
	widget.BaseWidget

	raster *canvas.Raster
	camera *render.Camera

	mu    sync.Mutex
	build func() *render.Scene
	scene *render.Scene
	dirty bool
}

// NewViewport creates a viewport that pulls scene content from build.
func NewViewport(build func() *render.Scene) *Viewport {
	v := &Viewport{
		camera: render.NewCamera(),
		build:  build,
		dirty:  true,
	}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// Camera exposes the viewport camera.
func (v *Viewport) Camera() *render.Camera {
	return v.camera
}

// Invalidate marks the scene stale and schedules a redraw.
func (v *Viewport) Invalidate() {
	v.mu.Lock()
	v.dirty = true
	v.mu.Unlock()
	v.raster.Refresh()
}

// ResetCamera re-fits the camera to the current scene bounds.
func (v *Viewport) ResetCamera() {
	v.mu.Lock()
	if v.dirty || v.scene == nil {
		v.scene = v.build()
		v.dirty = false
	}
	s := v.scene
	v.mu.Unlock()

	if min, max, ok := s.Bounds(); ok {
		v.camera.FitBounds(min, max)
	}
	v.raster.Refresh()
}

func (v *Viewport) draw(w, h int) image.Image {
	if w < 1 || h < 1 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}

	v.mu.Lock()
	if v.dirty || v.scene == nil {
		v.scene = v.build()
		v.dirty = false
	}
	s := v.scene
	v.mu.Unlock()

	return s.Render(v.camera, w, h)
}

// CreateRenderer implements fyne.Widget.
func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize implements fyne.Widget.
func (v *Viewport) MinSize() fyne.Size {
	return fyne.NewSize(ViewportMinSize, ViewportMinSize)
}

// Dragged orbits the camera.
func (v *Viewport) Dragged(e *fyne.DragEvent) {
	v.camera.Orbit(
		float64(e.Dragged.DX)*ViewportOrbitSpeed,
		float64(e.Dragged.DY)*ViewportOrbitSpeed,
	)
	v.raster.Refresh()
}

// DragEnd implements fyne.Draggable.
func (v *Viewport) DragEnd() {}

// Scrolled zooms the camera.
func (v *Viewport) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY > 0 {
		v.camera.Zoom(ViewportZoomInStep)
	} else if e.Scrolled.DY < 0 {
		v.camera.Zoom(ViewportZoomOutStep)
	}
	v.raster.Refresh()
}

// MouseIn implements desktop.Hoverable so scroll events reach us.
func (v *Viewport) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (v *Viewport) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (v *Viewport) MouseOut() {}
