package http

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// percentFormatter renders percentages for the form's locale, e.g. 40,00%.
type percentFormatter struct {
	printer *message.Printer
}

func newPercentFormatter(tag language.Tag) percentFormatter {
	return percentFormatter{printer: message.NewPrinter(tag)}
}

func (f percentFormatter) Format(v float64) string {
	return f.printer.Sprintf("%.2f%%", v)
}
