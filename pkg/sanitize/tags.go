package sanitize

import (
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-cardgen/pkg/record"
)

const (
	maxTags      = 5
	maxTagLength = 30
)

// TagPalette is the fixed set of colours tags are hashed onto.
var TagPalette = []string{
	"#e74c3c",
	"#3498db",
	"#2ecc71",
	"#f39c12",
	"#9b59b6",
	"#1abc9c",
	"#e67e22",
	"#34495e",
	"#16a085",
	"#c0392b",
}

// SplitTags splits comma separated input, trims entries and drops empties.
func SplitTags(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := normalizeSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// BuildTags caps names to maxTags entries of maxTagLength runes each and
// attaches slug and colour. The second result reports how many were dropped.
func BuildTags(names []string) ([]record.Tag, int) {
	dropped := 0
	if len(names) > maxTags {
		dropped = len(names) - maxTags
		names = names[:maxTags]
	}
	tags := make([]record.Tag, 0, len(names))
	for _, name := range names {
		name = capRunes(name, maxTagLength)
		tags = append(tags, record.Tag{
			Name:  EscapeHTML(name),
			Slug:  Slugify(name),
			Color: TagColor(name),
		})
	}
	return tags, dropped
}

// TagColor picks a palette entry from a hash of the lower-cased name.
func TagColor(name string) string {
	sum := xxhash.Sum64String(strings.ToLower(strings.TrimSpace(name)))
	return TagPalette[sum%uint64(len(TagPalette))]
}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases s and strips diacritics: "Política" -> "politica".
func Fold(s string) string {
	folded, _, err := transform.String(foldMarks, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Slugify folds s and collapses everything outside [a-z0-9] into dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range Fold(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func capRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
