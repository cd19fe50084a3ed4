package sanitize

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultCategoryIcon = "📰"

var categoryIcons = map[string]string{
	"politica":        "🏛️",
	"economia":        "💰",
	"deportes":        "⚽",
	"tecnologia":      "💻",
	"salud":           "🏥",
	"cultura":         "🎭",
	"internacional":   "🌍",
	"ciencia":         "🔬",
	"educacion":       "📚",
	"entretenimiento": "🎬",
	"opinion":         "💬",
	"sociedad":        "👥",
	"general":         defaultCategoryIcon,
}

// CategoryIcon looks up an icon ignoring case and accents.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[Slugify(category)]; ok {
		return icon
	}
	return defaultCategoryIcon
}

// CategoryLabel title-cases a category for display. Casers are stateful, so
// one is built per call.
func CategoryLabel(category string) string {
	return cases.Title(language.Spanish).String(normalizeSpace(category))
}

// Categories lists the categories with a dedicated icon, sorted.
func Categories() []string {
	out := make([]string, 0, len(categoryIcons))
	for slug := range categoryIcons {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
