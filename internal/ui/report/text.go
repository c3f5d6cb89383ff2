package report

import (
	"strings"
	"unicode/utf8"
)

// FormatText выводит модель в текстовом виде с выравниванием подписей.
func FormatText(m DisplayModel) string {
	var b strings.Builder

	b.WriteString(m.Title)
	b.WriteString("\n\n")

	writeLines(&b, "", m.Vehicle)
	if m.CaseMethod != "" {
		writeLines(&b, "", []Line{{"Calculation Method", m.CaseMethod}})
	}

	for _, y := range m.Years {
		b.WriteString("\n")
		b.WriteString(y.FiscalYear)
		if y.RenewalOnly {
			b.WriteString(" [renewal only]")
		}
		if y.PenaltyApplied {
			b.WriteString(" [penalty]")
		}
		b.WriteString("\n")
		writeLines(&b, "  ", y.Amounts)
		for _, pl := range y.Penalties {
			b.WriteString("    - " + pl.Type)
			if pl.Rate != "" {
				b.WriteString(" (" + pl.Rate + ")")
			}
			b.WriteString(": " + pl.Amount + "\n")
		}
		if y.CaseNote != "" {
			b.WriteString("  " + normalizeNewlines(y.CaseNote) + "\n")
		}
	}

	if len(m.Totals) > 0 {
		b.WriteString("\n")
		writeLines(&b, "", append(append([]Line{}, m.Totals...), Line{"Grand Total", m.GrandTotal}))
	}

	return b.String()
}

// writeLines пишет пары с выравниванием по самой длинной подписи.
func writeLines(b *strings.Builder, indent string, lines []Line) {
	maxKeyLen := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l.Label); n > maxKeyLen {
			maxKeyLen = n
		}
	}

	for _, l := range lines {
		prefix := indent + l.Label + strings.Repeat(" ", maxKeyLen-utf8.RuneCountInString(l.Label)) + ": "
		valueLines := strings.Split(normalizeNewlines(l.Value), "\n")

		b.WriteString(prefix)
		b.WriteString(valueLines[0])
		b.WriteString("\n")

		// Продолжение многострочного значения
		for i := 1; i < len(valueLines); i++ {
			b.WriteString(strings.Repeat(" ", utf8.RuneCountInString(prefix)))
			b.WriteString(valueLines[i])
			b.WriteString("\n")
		}
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// ToWindowsText конвертирует переводы строк в формат Windows.
func ToWindowsText(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}
