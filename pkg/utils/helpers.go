package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText strips simple markdown artifacts that confuse lay readers
// and collapses runs of whitespace.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	for _, marker := range []string{"**", "__", "`", "*"} {
		text = strings.ReplaceAll(text, marker, "")
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Truncate cuts a string to at most n runes
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// FormatBRL formats a number as pt-BR currency without depending on
// system locale. Ex: 20000.0 -> R$ 20.000,00
func FormatBRL(value float64) string {
	s := fmt.Sprintf("%.2f", value)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	out := fmt.Sprintf("R$ %s,%s", strings.Join(grouped, "."), decPart)
	if neg {
		out = strings.Replace(out, "R$ ", "R$ -", 1)
	}
	return out
}

// WrapText wraps text at the given width without breaking long words
func WrapText(text string, width int) string {
	text = strings.TrimSpace(text)
	if text == "" || width <= 0 {
		return text
	}

	words := strings.Fields(text)
	var lines []string
	var line string

	for _, w := range words {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
