package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/chemvista/chemvista/internal/render"
	"github.com/chemvista/chemvista/internal/scene"
)

// MoleculeSettingsDialog edits a molecule node's render settings.
type MoleculeSettingsDialog struct {
	window fyne.Window
	node   *scene.Node
	dialog *dialog.ConfirmDialog

	hydrogensCheck *widget.Check
	numbersCheck   *widget.Check
	alphaSlider    *widget.Slider

	onApply func(render.MoleculeSettings)
}

// NewMoleculeSettingsDialog creates the dialog for a molecule node.
func NewMoleculeSettingsDialog(window fyne.Window, node *scene.Node, onApply func(render.MoleculeSettings)) *MoleculeSettingsDialog {
	d := &MoleculeSettingsDialog{
		window:  window,
		node:    node,
		onApply: onApply,
	}

	d.hydrogensCheck = widget.NewCheck("Show hydrogens", nil)
	d.numbersCheck = widget.NewCheck("Show atom numbers", nil)
	d.alphaSlider = widget.NewSlider(0, 1)
	d.alphaSlider.Step = 0.05

	form := container.NewVBox(
		d.hydrogensCheck,
		d.numbersCheck,
		widget.NewLabel("Opacity:"),
		d.alphaSlider,
	)

	d.dialog = dialog.NewCustomConfirm(
		fmt.Sprintf("Settings: %s", node.Name()),
		"Apply",
		"Cancel",
		form,
		d.onConfirm,
		window,
	)
	d.dialog.Resize(fyne.NewSize(360, 260))
	return d
}

// Show loads current values and displays the dialog.
func (d *MoleculeSettingsDialog) Show() {
	set := d.node.MolSettings
	d.hydrogensCheck.SetChecked(set.ShowHydrogens)
	d.numbersCheck.SetChecked(set.ShowNumbers)
	d.alphaSlider.SetValue(set.Alpha)
	d.dialog.Show()
}

func (d *MoleculeSettingsDialog) onConfirm(apply bool) {
	if !apply || d.onApply == nil {
		return
	}
	set := d.node.MolSettings.Copy()
	set.ShowHydrogens = d.hydrogensCheck.Checked
	set.ShowNumbers = d.numbersCheck.Checked
	set.Alpha = d.alphaSlider.Value
	d.onApply(set)
}

// FieldSettingsDialog edits a scalar-field node's render settings.
type FieldSettingsDialog struct {
	window fyne.Window
	node   *scene.Node
	dialog *dialog.ConfirmDialog

	isoEntry      *widget.Entry
	opacitySlider *widget.Slider
	gridCheck     *widget.Check
	pointsCheck   *widget.Check

	onApply func(render.FieldSettings)
}

// NewFieldSettingsDialog creates the dialog for a scalar-field node.
func NewFieldSettingsDialog(window fyne.Window, node *scene.Node, onApply func(render.FieldSettings)) *FieldSettingsDialog {
	d := &FieldSettingsDialog{
		window:  window,
		node:    node,
		onApply: onApply,
	}

	d.isoEntry = widget.NewEntry()
	d.isoEntry.SetPlaceHolder("-0.1, 0.1")
	d.isoEntry.Validator = func(s string) error {
		_, err := parseIsoValues(s)
		return err
	}
	d.opacitySlider = widget.NewSlider(0, 1)
	d.opacitySlider.Step = 0.05
	d.gridCheck = widget.NewCheck("Show grid outline", nil)
	d.pointsCheck = widget.NewCheck("Show grid points", nil)

	form := container.NewVBox(
		widget.NewLabel("Isosurface values (comma separated):"),
		d.isoEntry,
		widget.NewLabel("Opacity:"),
		d.opacitySlider,
		d.gridCheck,
		d.pointsCheck,
	)

	d.dialog = dialog.NewCustomConfirm(
		fmt.Sprintf("Settings: %s", node.Name()),
		"Apply",
		"Cancel",
		form,
		d.onConfirm,
		window,
	)
	d.dialog.Resize(fyne.NewSize(380, 320))
	return d
}

// Show loads current values and displays the dialog.
func (d *FieldSettingsDialog) Show() {
	set := d.node.FieldSettings
	d.isoEntry.SetText(formatIsoValues(set.IsoValues))
	d.opacitySlider.SetValue(set.Opacity)
	d.gridCheck.SetChecked(set.ShowGridSurface)
	d.pointsCheck.SetChecked(set.ShowGridPoints)
	d.dialog.Show()
}

func (d *FieldSettingsDialog) onConfirm(apply bool) {
	if !apply || d.onApply == nil {
		return
	}
	values, err := parseIsoValues(d.isoEntry.Text)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	set := d.node.FieldSettings.Copy()
	set.IsoValues = values
	set.Opacity = d.opacitySlider.Value
	set.ShowGridSurface = d.gridCheck.Checked
	set.ShowGridPoints = d.pointsCheck.Checked
	d.onApply(set)
}

func parseIsoValues(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad isovalue %q", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one isovalue required")
	}
	return out, nil
}

func formatIsoValues(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(parts, ", ")
}
