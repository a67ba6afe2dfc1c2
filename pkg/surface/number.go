package surface

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// population formats a population in millions with thousands grouping,
// e.g. 1428.6 -> "1,428.6M".
func population(millions float64) string {
	return printer.Sprintf("%.1fM", millions)
}
