//go:build windows

package ui

import (
	"vehicletax/internal/ui/controller"
	"vehicletax/internal/ui/view"
)

// Run запускает графическое приложение с контроллером формы.
func Run(formCtrl *controller.FormController) error {
	return view.Run(formCtrl)
}
