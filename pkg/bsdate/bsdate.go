package bsdate

import (
	"regexp"
	"strconv"
	"strings"
)

// Length длина полностью введённой даты YYYY-MM-DD.
const Length = 10

// Максимальное количество цифр в дате (YYYYMMDD).
const maxDigits = 8

// Границы дня месяца. Верхняя граница намеренно нестрогая: таблица длин месяцев BS не ведётся.
const (
	minDay = 1
	maxDay = 32
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Range задаёт допустимый диапазон лет (включительно).
type Range struct {
	MinYear int
	MaxYear int
}

// DefaultRange диапазон фискальных лет, принимаемый формой по умолчанию.
var DefaultRange = Range{MinYear: 2070, MaxYear: 2090}

// Contains проверяет, что год попадает в диапазон.
func (r Range) Contains(year int) bool {
	return year >= r.MinYear && year <= r.MaxYear
}

// Format приводит произвольный ввод к маске YYYY, YYYY-MM, YYYY-MM-DD.
// Все нецифровые символы отбрасываются, разделители вставляются после 4-й и 6-й цифры.
// Функция идемпотентна: Format(Format(x)) == Format(x).
func Format(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == maxDigits {
				break
			}
		}
	}

	d := digits.String()
	switch {
	case len(d) > 6:
		return d[:4] + "-" + d[4:6] + "-" + d[6:]
	case len(d) > 4:
		return d[:4] + "-" + d[4:]
	default:
		return d
	}
}

// Parse разбирает корректно оформленную дату на год, месяц и день без проверки диапазонов.
func Parse(value string) (year, month, day int, err error) {
	if value == "" {
		return 0, 0, 0, ErrEmpty
	}
	if len(value) != Length || !datePattern.MatchString(value) {
		return 0, 0, 0, ErrFormat
	}

	// Шаблон гарантирует только цифры, Atoi не может завершиться ошибкой
	year, _ = strconv.Atoi(value[0:4])
	month, _ = strconv.Atoi(value[5:7])
	day, _ = strconv.Atoi(value[8:10])
	return year, month, day, nil
}

// Check проверяет дату и возвращает причину отказа.
func Check(value string, r Range) error {
	year, month, day, err := Parse(value)
	if err != nil {
		return err
	}
	if !r.Contains(year) {
		return &YearRangeError{Year: year, Range: r}
	}
	if month < 1 || month > 12 {
		return ErrMonthRange
	}
	if day < minDay || day > maxDay {
		return ErrDayRange
	}
	return nil
}

// Validate сообщает, является ли значение допустимой датой в диапазоне r.
func Validate(value string, r Range) bool {
	return Check(value, r) == nil
}

// Before сравнивает две корректные даты. Фиксированный формат с ведущими нулями
// позволяет сравнивать строки лексикографически.
func Before(a, b string) bool {
	return a < b
}
