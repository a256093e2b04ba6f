package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// FormatThousands renders n with English thousands separators, e.g. 128000 -> "128,000"
func FormatThousands(n int) string {
	return englishPrinter.Sprintf("%d", n)
}
