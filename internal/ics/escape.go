package ics

import "strings"

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\n", `\n`,
)

// Escape makes free text safe for a property value. Backslashes are doubled
// before the content characters are escaped.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return escaper.Replace(text)
}

// Unescape reverses the newline, comma and semicolon escapes. Doubled
// backslashes are left as they are, so Unescape is not an exact inverse of
// Escape for text containing a backslash.
func Unescape(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\,`, ",")
	return strings.ReplaceAll(text, `\;`, ";")
}
