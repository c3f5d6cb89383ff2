//go:build windows

package dialogs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/lxn/walk"
	d "github.com/lxn/walk/declarative"

	"vehicletax/internal/ui/report"
)

// ShowResultDialog открывает модальное окно с текстом результата расчёта.
// Кнопка сохранения записывает печатную HTML-форму.
func ShowResultDialog(owner walk.Form, model report.DisplayModel, printView func() ([]byte, error)) {
	var dlg *walk.Dialog
	var copyPB, savePB, closePB *walk.PushButton

	text := report.FormatText(model)

	err := d.Dialog{
		AssignTo:      &dlg,
		Title:         model.Title,
		MinSize:       d.Size{Width: 520, Height: 480},
		Layout:        d.VBox{},
		DefaultButton: &copyPB,
		CancelButton:  &closePB,
		Children: []d.Widget{
			d.TextEdit{
				Text:     report.ToWindowsText(text),
				ReadOnly: true,
				VScroll:  true,
				Font:     d.Font{Family: "Consolas", PointSize: 9},
			},
			d.Composite{
				Layout: d.HBox{Spacing: 6},
				Children: []d.Widget{
					d.HSpacer{},
					d.PushButton{
						AssignTo: &copyPB,
						Text:     "Copy",
						OnClicked: func() {
							_ = walk.Clipboard().SetText(report.ToWindowsText(text))
						},
					},
					d.PushButton{
						AssignTo: &savePB,
						Text:     "Save for print...",
						OnClicked: func() {
							savePrintView(dlg, printView)
						},
					},
					d.PushButton{
						AssignTo: &closePB,
						Text:     "Close",
						OnClicked: func() {
							dlg.Accept()
						},
					},
				},
			},
		},
	}.Create(owner)

	if err != nil {
		walk.MsgBox(owner, "Error", err.Error(), walk.MsgBoxIconError)
		return
	}

	dlg.Run()
}

// savePrintView открывает системный диалог сохранения печатной формы
func savePrintView(owner walk.Form, printView func() ([]byte, error)) {
	html, err := printView()
	if err != nil {
		walk.MsgBox(owner, "Error", err.Error(), walk.MsgBoxIconError)
		return
	}

	dlg := new(walk.FileDialog)
	dlg.FilePath = report.PrintFileName(time.Now())
	dlg.Filter = "HTML Files (*.html)|*.html|All Files (*.*)|*.*"
	dlg.Title = "Save printable results"

	// Пытаемся открыть в "Документах"
	if home, err := os.UserHomeDir(); err == nil {
		dlg.InitialDirPath = filepath.Join(home, "Documents")
	}

	if ok, _ := dlg.ShowSave(owner); ok {
		if err := os.WriteFile(dlg.FilePath, html, 0644); err != nil {
			walk.MsgBox(owner, "Error", "Failed to save file:\n"+err.Error(), walk.MsgBoxIconError)
		} else {
			walk.MsgBox(owner, "Saved", "File saved. Open it in a browser to print.", walk.MsgBoxIconInformation)
		}
	}
}
