//go:build windows

package view

import (
	"vehicletax/internal/ui/controller"
)

// Run запускает графическое приложение
func Run(formController *controller.FormController) error {
	// Создание основного окна
	w := NewFormWindowView(formController)

	// Создание и инициализация окна
	if err := w.Create(); err != nil {
		return err
	}

	// Запуск главного цикла сообщений
	w.Run()
	return nil
}
