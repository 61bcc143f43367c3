package ui

import (
	"fmt"
	"net/url"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/chemvista/chemvista/internal/config"
	"github.com/chemvista/chemvista/internal/logger"
	"github.com/chemvista/chemvista/internal/render"
	"github.com/chemvista/chemvista/internal/scene"
)

// RootUI is the main window: a scene tree panel on the left, the 3D
// viewport on the right, menus and a toolbar for loading files and
// manipulating objects.
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	manager  *scene.Manager
	settings *config.Settings
	log      zerolog.Logger

	viewport  *Viewport
	treePanel *TreePanel
	status    *widget.Label
	split     *container.Split

	selectedUUID string
}

// NewRootUI creates and wires the main window content.
func NewRootUI(window fyne.Window, app fyne.App, manager *scene.Manager) *RootUI {
	ui := &RootUI{
		window:   window,
		app:      app,
		manager:  manager,
		settings: config.NewSettings(app),
		log:      logger.For("ui"),
	}

	window.SetTitle("ChemVista")
	w, h := ui.settings.GetWindowSize()
	window.Resize(fyne.NewSize(float32(w), float32(h)))

	if c, err := render.ParseHexColor(ui.settings.GetBackgroundColor()); err == nil {
		manager.SetBackground(c)
	}
	manager.SetShowAxes(ui.settings.GetShowAxes())

	ui.setupUI()
	ui.subscribeEvents()
	return ui
}

// setupUI creates and arranges all UI components.
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.viewport = NewViewport(ui.manager.BuildScene)

	ui.treePanel = NewTreePanel(ui.manager)
	ui.treePanel.OnSelect = func(uuid string) {
		ui.selectedUUID = uuid
		ui.updateStatus()
	}
	ui.treePanel.OnToggleVisibility = func(uuid string, visible bool) {
		if _, err := ui.manager.SetVisibility(uuid, visible); err != nil {
			ui.showError(err)
		}
	}

	ui.status = widget.NewLabel("No objects loaded")
	ui.status.Truncation = fyne.TextTruncateEllipsis

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), ui.onOpenXYZ),
		widget.NewToolbarAction(theme.DocumentIcon(), ui.onOpenCubeMolecule),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), ui.onResetCamera),
		widget.NewToolbarAction(theme.SettingsIcon(), ui.onObjectSettings),
		widget.NewToolbarAction(theme.DeleteIcon(), ui.onDeleteObject),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaSkipPreviousIcon(), func() { ui.stepFrame(-1) }),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), func() { ui.stepFrame(1) }),
	)

	ui.split = container.NewHSplit(ui.treePanel, ui.viewport)
	ui.split.SetOffset(0.25)

	content := container.NewBorder(
		toolbar,   // top
		ui.status, // bottom
		nil, nil,
		ui.split,
	)
	ui.window.SetContent(content)

	if !ui.settings.GetShowTreePanel() {
		ui.split.SetOffset(0)
	}
}

// subscribeEvents keeps the widgets in sync with the scene graph.
func (ui *RootUI) subscribeEvents() {
	refresh := func() {
		fyne.Do(func() {
			ui.treePanel.Refresh()
			ui.viewport.Invalidate()
			ui.updateStatus()
		})
	}
	ui.manager.SetEvents(&scene.Events{
		NodeAdded:         func(string) { refresh() },
		NodeRemoved:       func(string) { refresh() },
		NodeChanged:       func(string) { refresh() },
		VisibilityChanged: func(string, bool) { refresh() },
		StructureChanged:  func() { refresh() },
	})
}

// createMenu creates the application menu.
func (ui *RootUI) createMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open XYZ...", ui.onOpenXYZ),
		fyne.NewMenuItem("Open Cube as Molecule...", ui.onOpenCubeMolecule),
		fyne.NewMenuItem("Open Cube as Field...", ui.onOpenCubeField),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Selection as XYZ...", ui.onSaveXYZ),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset Camera", ui.onResetCamera),
		fyne.NewMenuItem("Toggle Tree Panel", ui.onToggleTreePanel),
		fyne.NewMenuItem("Toggle Axes", ui.onToggleAxes),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Background Color...", ui.onBackgroundColor),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", ui.onAbout),
	)

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

func (ui *RootUI) onOpenXYZ() {
	ui.openFile([]string{".xyz", ".gz"}, func(path string) {
		if _, err := ui.manager.LoadXYZ(path); err != nil {
			ui.showError(err)
			return
		}
		ui.viewport.ResetCamera()
	})
}

func (ui *RootUI) onOpenCubeMolecule() {
	ui.openFile([]string{".cube", ".gz"}, func(path string) {
		if _, err := ui.manager.LoadMoleculeCube(path); err != nil {
			ui.showError(err)
			return
		}
		ui.viewport.ResetCamera()
	})
}

func (ui *RootUI) onOpenCubeField() {
	ui.openFile([]string{".cube", ".gz"}, func(path string) {
		if _, err := ui.manager.LoadFieldCube(path); err != nil {
			ui.showError(err)
			return
		}
		ui.viewport.ResetCamera()
	})
}

// openFile shows a file-open dialog starting in the last used
// directory.
func (ui *RootUI) openFile(extensions []string, onOpen func(path string)) {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()

		ui.settings.SetLastOpenDirectory(filepath.Dir(path))
		ui.log.Info().Str("file", path).Msg("opening file")
		onOpen(path)
	}, ui.window)
	fd.SetFilter(storage.NewExtensionFileFilter(extensions))

	if dir := ui.settings.GetLastOpenDirectory(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

func (ui *RootUI) onSaveXYZ() {
	node := ui.selectedNode()
	if node == nil {
		ui.showInfo("Select a molecule or trajectory first")
		return
	}

	fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()

		if err := ui.manager.SaveXYZ(node.UUID(), path); err != nil {
			ui.showError(err)
			return
		}
		ui.showInfo("Saved " + filepath.Base(path))
	}, ui.window)
	fd.SetFileName(node.Name() + ".xyz")
	fd.Show()
}

func (ui *RootUI) onResetCamera() {
	ui.viewport.ResetCamera()
}

func (ui *RootUI) onToggleTreePanel() {
	show := !ui.settings.GetShowTreePanel()
	ui.settings.SetShowTreePanel(show)
	if show {
		ui.split.SetOffset(0.25)
	} else {
		ui.split.SetOffset(0)
	}
}

func (ui *RootUI) onToggleAxes() {
	show := !ui.settings.GetShowAxes()
	ui.settings.SetShowAxes(show)
	ui.manager.SetShowAxes(show)
	ui.viewport.Invalidate()
}

func (ui *RootUI) onBackgroundColor() {
	entry := widget.NewEntry()
	entry.SetText(ui.settings.GetBackgroundColor())
	entry.Validator = func(s string) error {
		_, err := render.ParseHexColor(s)
		return err
	}

	dialog.ShowForm("Background color", "Apply", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Hex color", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			c, err := render.ParseHexColor(entry.Text)
			if err != nil {
				ui.showError(err)
				return
			}
			ui.settings.SetBackgroundColor(entry.Text)
			ui.manager.SetBackground(c)
			ui.viewport.Invalidate()
		}, ui.window)
}

func (ui *RootUI) onObjectSettings() {
	node := ui.selectedNode()
	if node == nil {
		ui.showInfo("Select an object first")
		return
	}

	switch node.Kind() {
	case scene.KindMolecule:
		NewMoleculeSettingsDialog(ui.window, node, func(set render.MoleculeSettings) {
			if err := ui.manager.UpdateMoleculeSettings(node.UUID(), set); err != nil {
				ui.showError(err)
			}
		}).Show()
	case scene.KindField:
		NewFieldSettingsDialog(ui.window, node, func(set render.FieldSettings) {
			if err := ui.manager.UpdateFieldSettings(node.UUID(), set); err != nil {
				ui.showError(err)
			}
		}).Show()
	default:
		ui.showInfo("This object has no render settings")
	}
}

func (ui *RootUI) onDeleteObject() {
	node := ui.selectedNode()
	if node == nil {
		ui.showInfo("Select an object first")
		return
	}

	dialog.ShowConfirm("Delete object",
		fmt.Sprintf("Delete %q and everything under it?", node.Name()),
		func(confirm bool) {
			if !confirm {
				return
			}
			if err := ui.manager.Delete(node.UUID()); err != nil {
				ui.showError(err)
				return
			}
			ui.selectedUUID = ""
		}, ui.window)
}

// stepFrame advances the selected trajectory (or the selected frame's
// parent trajectory) by delta frames, wrapping around.
func (ui *RootUI) stepFrame(delta int) {
	node := ui.selectedNode()
	if node != nil && node.Kind() != scene.KindTrajectory && node.Parent() != nil {
		node = node.Parent()
	}
	if node == nil || node.Kind() != scene.KindTrajectory || node.NumChildren() == 0 {
		return
	}

	step := ui.settings.GetFrameStep() * delta
	count := node.NumChildren()
	next := ((node.ActiveFrame()+step)%count + count) % count
	if err := node.SetActiveFrame(next); err != nil {
		ui.showError(err)
	}
}

func (ui *RootUI) onAbout() {
	link, _ := url.Parse("https://github.com/chemvista/chemvista")
	dialog.ShowCustom("About ChemVista", "Close", container.NewVBox(
		widget.NewLabel("ChemVista — molecular structure and scalar field viewer"),
		widget.NewLabel("XYZ and Gaussian cube support, isosurface rendering"),
		widget.NewHyperlink("github.com/chemvista/chemvista", link),
	), ui.window)
}

func (ui *RootUI) selectedNode() *scene.Node {
	if ui.selectedUUID == "" {
		return nil
	}
	return ui.manager.GetByUUID(ui.selectedUUID)
}

// updateStatus refreshes the status bar for the current selection.
func (ui *RootUI) updateStatus() {
	node := ui.selectedNode()
	if node == nil {
		n := len(ui.manager.RootObjects())
		if n == 0 {
			ui.status.SetText("No objects loaded")
		} else {
			ui.status.SetText(fmt.Sprintf("%d object(s) in scene", n))
		}
		return
	}

	switch node.Kind() {
	case scene.KindMolecule:
		ui.status.SetText(fmt.Sprintf("%s — %s, %d atoms, %d bonds",
			node.Name(), node.Molecule.Formula(), node.Molecule.NumAtoms(), len(node.Molecule.Bonds)))
	case scene.KindField:
		min, max := node.Field.MinMax()
		ui.status.SetText(fmt.Sprintf("%s — grid %dx%dx%d, values %.4g .. %.4g",
			node.Name(), node.Field.Shape[0], node.Field.Shape[1], node.Field.Shape[2], min, max))
	case scene.KindTrajectory:
		ui.status.SetText(fmt.Sprintf("%s — %d frames, showing %s",
			node.Name(), node.NumChildren(), scene.FrameName(node.ActiveFrame())))
	default:
		ui.status.SetText(node.Name())
	}
}

func (ui *RootUI) showError(err error) {
	ui.log.Error().Err(err).Msg("ui error")
	dialog.ShowError(err, ui.window)
}

func (ui *RootUI) showInfo(msg string) {
	dialog.ShowInformation("ChemVista", msg, ui.window)
}
