// Package sanitize strips markup from user-generated text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// quotes restores the entities that cannot open a tag. Angle brackets stay
// escaped, so the result never contains '<' or '>'.
var quotes = strings.NewReplacer(
	"&#39;", "'",
	"&#34;", `"`,
	"&quot;", `"`,
	"&amp;", "&",
)

// Text removes every HTML element and trims surrounding whitespace.
// Entities are decoded before the policy runs so escaped markup is stripped
// like any other tag.
func Text(s string) string {
	return strings.TrimSpace(quotes.Replace(strict.Sanitize(html.UnescapeString(s))))
}
