package sanitize

import (
	"math"
	"strconv"
	"strings"
)

const (
	wordsPerMinute = 200
	ellipsis       = "..."
)

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most max runes (plus an ellipsis), cutting at the
// last word boundary so words are never split. A first word longer than max
// is kept whole, and a single word is returned unchanged.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	} else if runes[max] != ' ' {
		end := strings.IndexByte(s[len(cut):], ' ')
		if end < 0 {
			return s
		}
		cut = s[:len(cut)+end]
	}
	return strings.TrimRight(cut, " ,.;:") + ellipsis
}

// WordCount counts whitespace separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime renders ceil(words/200) as a minutes label, never below "1 min".
func ReadingTime(words int) string {
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " min"
}
