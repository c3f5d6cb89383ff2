package ports

// Logger абстракция логирования, используемая сервисами и контроллерами.
// Сообщения форматируются в стиле Printf. Реализация по умолчанию построена на zap.
type Logger interface {
	// Debug выводит отладочную информацию
	Debug(msg string, args ...interface{})

	// Info выводит информационные сообщения
	Info(msg string, args ...interface{})

	// Warn выводит предупреждения
	Warn(msg string, args ...interface{})

	// Error выводит ошибки
	Error(msg string, args ...interface{})

	// Fatal выводит критические ошибки и завершает программу
	Fatal(msg string, args ...interface{})

	// Printf форматированный вывод (для совместимости с функциями-логгерами)
	Printf(format string, args ...interface{})
}
