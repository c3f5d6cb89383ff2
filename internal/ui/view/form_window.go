//go:build windows

package view

import (
	"context"

	"github.com/lxn/walk"
	d "github.com/lxn/walk/declarative"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/ui/controller"
	"vehicletax/internal/ui/report"
	"vehicletax/internal/ui/view/dialogs"
	"vehicletax/internal/ui/viewmodel"
)

// NV пара имя-значение для ComboBox
type NV struct {
	Name string
	Code string
}

// FormWindowView окно формы расчёта налога. Только отображает модель
// и передаёт события виджетов в контроллер.
type FormWindowView struct {
	mw   *walk.MainWindow
	ctrl *controller.FormController

	regTypeCombo  *walk.ComboBox
	categoryCombo *walk.ComboBox
	ccRow         *walk.Composite
	ccEdit        *walk.LineEdit
	lastPaidEdit  *walk.LineEdit
	nextPayEdit   *walk.LineEdit
	errorLabels   map[string]*walk.Label
	calcBtn       *walk.PushButton
	printBtn      *walk.PushButton
	noticeLabel   *walk.Label
	resultView    *walk.TextEdit

	regTypes   []*NV
	categories []*NV

	// Подавляет обратные события при программной установке текста
	updating bool
}

// NewFormWindowView создает окно для контроллера формы.
func NewFormWindowView(ctrl *controller.FormController) *FormWindowView {
	vm := ctrl.ViewModel()

	w := &FormWindowView{
		ctrl:        ctrl,
		errorLabels: make(map[string]*walk.Label),
		regTypes:    []*NV{{Name: "", Code: ""}},
		categories:  []*NV{{Name: "", Code: ""}},
	}
	for _, rt := range vm.RegTypes {
		w.regTypes = append(w.regTypes, &NV{Name: rt.Name, Code: rt.ID})
	}
	for _, c := range vm.Categories {
		w.categories = append(w.categories, &NV{Name: c.Name, Code: c.ID})
	}
	return w
}

// Create создает и инициализирует окно.
func (w *FormWindowView) Create() error {
	w.ctrl.SetOnUpdate(w.updateUI)

	labels := make(map[string]**walk.Label)
	for _, name := range models.FormFields {
		var l *walk.Label
		labels[name] = &l
	}
	errorLabel := func(name string) d.Label {
		return d.Label{AssignTo: labels[name], TextColor: walk.RGB(200, 0, 0), ColumnSpan: 2}
	}

	err := d.MainWindow{
		AssignTo: &w.mw,
		Title:    "Vehicle Tax Calculator",
		Size:     d.Size{Width: 520, Height: 680},
		MinSize:  d.Size{Width: 480, Height: 600},
		Layout:   d.VBox{Margins: d.Margins{Left: 8, Top: 8, Right: 8, Bottom: 8}, Spacing: 6},
		// Горячие клавиши как действия меню: работают при фокусе в любом поле ввода
		MenuItems: []d.MenuItem{
			d.Menu{
				Text: "&Form",
				Items: []d.MenuItem{
					d.Action{
						Text:        "&Calculate",
						Shortcut:    d.Shortcut{Modifiers: walk.ModControl, Key: walk.KeyReturn},
						OnTriggered: w.onShortcut(controller.KeyEvent{Key: controller.KeyEnter, Ctrl: true}),
					},
					d.Action{
						Text:        "&Reset",
						Shortcut:    d.Shortcut{Key: walk.KeyEscape},
						OnTriggered: w.onShortcut(controller.KeyEvent{Key: controller.KeyEscape}),
					},
					d.Separator{},
					d.Action{Text: "&Print...", OnTriggered: w.onPrint},
				},
			},
		},
		Children: []d.Widget{
			d.GroupBox{
				Title:  "Vehicle",
				Layout: d.Grid{Columns: 2, Spacing: 4},
				Children: []d.Widget{
					d.Label{Text: "Registration Type:"},
					d.ComboBox{
						AssignTo:              &w.regTypeCombo,
						BindingMember:         "Code",
						DisplayMember:         "Name",
						Model:                 w.regTypes,
						OnCurrentIndexChanged: w.onRegTypeChanged,
					},
					errorLabel(models.FieldRegType),

					d.Label{Text: "Vehicle Category:"},
					d.ComboBox{
						AssignTo:              &w.categoryCombo,
						BindingMember:         "Code",
						DisplayMember:         "Name",
						Model:                 w.categories,
						OnCurrentIndexChanged: w.onCategoryChanged,
					},
					errorLabel(models.FieldCategory),

					d.Composite{
						AssignTo:   &w.ccRow,
						Visible:    false, // Показывается только для категорий с объёмом двигателя
						ColumnSpan: 2,
						Layout:     d.Grid{Columns: 2, MarginsZero: true, Spacing: 4},
						Children: []d.Widget{
							d.Label{Text: "CC/Power:"},
							d.LineEdit{
								AssignTo:          &w.ccEdit,
								OnTextChanged:     w.fieldChanged(models.FieldCCPower, &w.ccEdit),
								OnEditingFinished: w.fieldBlurred(models.FieldCCPower),
							},
							errorLabel(models.FieldCCPower),
						},
					},
				},
			},
			d.GroupBox{
				Title:  "Payment dates (BS)",
				Layout: d.Grid{Columns: 2, Spacing: 4},
				Children: []d.Widget{
					d.Label{Text: "Last Paid Date:"},
					d.LineEdit{
						AssignTo:          &w.lastPaidEdit,
						CueBanner:         "YYYY-MM-DD",
						MaxLength:         10,
						OnTextChanged:     w.fieldChanged(models.FieldLastPaidDate, &w.lastPaidEdit),
						OnEditingFinished: w.fieldBlurred(models.FieldLastPaidDate),
					},
					errorLabel(models.FieldLastPaidDate),

					d.Label{Text: "Next Payment Date:"},
					d.LineEdit{
						AssignTo:          &w.nextPayEdit,
						CueBanner:         "YYYY-MM-DD",
						MaxLength:         10,
						OnTextChanged:     w.fieldChanged(models.FieldNextPaymentDate, &w.nextPayEdit),
						OnEditingFinished: w.fieldBlurred(models.FieldNextPaymentDate),
					},
					errorLabel(models.FieldNextPaymentDate),
				},
			},
			d.Composite{
				Layout: d.HBox{MarginsZero: true, Spacing: 6},
				Children: []d.Widget{
					d.PushButton{AssignTo: &w.calcBtn, Text: viewmodel.SubmitLabel, OnClicked: w.onSubmit},
					d.PushButton{Text: "Reset", OnClicked: w.ctrl.OnReset},
					d.PushButton{AssignTo: &w.printBtn, Text: "Print...", Enabled: false, OnClicked: w.onPrint},
					d.HSpacer{},
				},
			},
			d.Label{AssignTo: &w.noticeLabel, EllipsisMode: d.EllipsisEnd},
			d.TextEdit{
				AssignTo: &w.resultView,
				ReadOnly: true,
				VScroll:  true,
				Font:     d.Font{Family: "Consolas", PointSize: 9},
			},
		},
	}.Create()
	if err != nil {
		return err
	}

	for name, l := range labels {
		w.errorLabels[name] = *l
	}

	w.ctrl.Restore()
	w.render()
	return nil
}

// Run запускает цикл сообщений окна.
func (w *FormWindowView) Run() {
	w.mw.Run()
	w.ctrl.Wait()
}

// updateUI вызывается контроллером из любой горутины.
func (w *FormWindowView) updateUI() {
	if w.mw == nil {
		return
	}
	w.mw.Synchronize(w.render)
}

func (w *FormWindowView) render() {
	vm := w.ctrl.ViewModel()

	w.updating = true
	defer func() { w.updating = false }()

	setComboCode(w.regTypeCombo, w.regTypes, vm.Values[models.FieldRegType])
	setComboCode(w.categoryCombo, w.categories, vm.Values[models.FieldCategory])
	setText(w.ccEdit, vm.Values[models.FieldCCPower])
	setText(w.lastPaidEdit, vm.Values[models.FieldLastPaidDate])
	setText(w.nextPayEdit, vm.Values[models.FieldNextPaymentDate])
	w.ccRow.SetVisible(vm.CCPowerVisible)

	for name, l := range w.errorLabels {
		if l != nil {
			_ = l.SetText(vm.Errors[name])
		}
	}

	w.calcBtn.SetEnabled(!vm.Loading)
	_ = w.calcBtn.SetText(vm.ButtonText())
	w.printBtn.SetEnabled(vm.Result != nil)

	w.renderNotification(vm.Notification)

	if vm.Result != nil {
		_ = w.resultView.SetText(report.ToWindowsText(report.FormatText(*vm.Result)))
	} else {
		_ = w.resultView.SetText("")
	}
}

func (w *FormWindowView) renderNotification(n *models.Notification) {
	if n == nil {
		_ = w.noticeLabel.SetText("")
		return
	}
	switch n.Kind {
	case models.NotifySuccess:
		w.noticeLabel.SetTextColor(walk.RGB(0, 140, 0))
	case models.NotifyWarning:
		w.noticeLabel.SetTextColor(walk.RGB(200, 120, 0))
	default:
		w.noticeLabel.SetTextColor(walk.RGB(200, 0, 0))
	}
	_ = w.noticeLabel.SetText(n.Message)
}

func (w *FormWindowView) fieldChanged(name string, edit **walk.LineEdit) walk.EventHandler {
	return func() {
		if w.updating || *edit == nil {
			return
		}
		w.ctrl.OnFieldChange(name, (*edit).Text())
	}
}

func (w *FormWindowView) fieldBlurred(name string) walk.EventHandler {
	return func() {
		if !w.updating {
			w.ctrl.OnFieldBlur(name)
		}
	}
}

func (w *FormWindowView) onRegTypeChanged() {
	if w.updating {
		return
	}
	w.ctrl.OnFieldChange(models.FieldRegType, comboCode(w.regTypeCombo, w.regTypes))
}

func (w *FormWindowView) onCategoryChanged() {
	if w.updating {
		return
	}
	w.ctrl.OnFieldChange(models.FieldCategory, comboCode(w.categoryCombo, w.categories))
}

func (w *FormWindowView) onSubmit() {
	// Ошибки проверки уже отражены в модели
	_ = w.ctrl.OnSubmit(context.Background())
}

func (w *FormWindowView) onShortcut(ev controller.KeyEvent) walk.EventHandler {
	return func() {
		w.ctrl.OnKey(ev)
	}
}

// onPrint показывает результат с возможностью сохранить печатную форму.
func (w *FormWindowView) onPrint() {
	vm := w.ctrl.ViewModel()
	if vm.Result == nil {
		walk.MsgBox(w.mw, "Print", controller.ErrNoResult.Error(), walk.MsgBoxIconInformation)
		return
	}
	dialogs.ShowResultDialog(w.mw, *vm.Result, w.ctrl.OnPrint)
}

func comboCode(cb *walk.ComboBox, items []*NV) string {
	idx := cb.CurrentIndex()
	if idx < 0 || idx >= len(items) {
		return ""
	}
	return items[idx].Code
}

func setComboCode(cb *walk.ComboBox, items []*NV, code string) {
	for i, it := range items {
		if it.Code == code {
			if cb.CurrentIndex() != i {
				_ = cb.SetCurrentIndex(i)
			}
			return
		}
	}
	_ = cb.SetCurrentIndex(0)
}

func setText(le *walk.LineEdit, text string) {
	if le.Text() != text {
		_ = le.SetText(text)
		le.SetTextSelection(len(text), len(text))
	}
}
