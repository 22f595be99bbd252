// Package i18n holds locale catalogs for user-facing error messages.
//
// Error codes are duplicated here as plain strings to avoid an import
// cycle with the errors package.
package i18n

import (
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Catalog stores the user-facing messages for one locale.
type Catalog struct {
	locale   string
	tag      language.Tag
	messages map[string]string
}

// Locale returns the catalog's BCP 47 locale string.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code, interpolating metadata values
// through {{.Key}} placeholders. Unknown codes fall back to the code
// itself so callers always have something to show.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return code
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := template.New(code).Parse(msg)
	if err != nil {
		return msg
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return msg
	}
	return b.String()
}

var catalogs = []*Catalog{enUSCatalog}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(catalogs))
	for _, c := range catalogs {
		tags = append(tags, c.tag)
	}
	return language.NewMatcher(tags)
}()

// GetCatalog returns the best catalog for the requested locale,
// falling back to en-US.
func GetCatalog(locale string) *Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		return enUSCatalog
	}
	_, index, _ := matcher.Match(tag)
	if index < 0 || index >= len(catalogs) {
		return enUSCatalog
	}
	return catalogs[index]
}
