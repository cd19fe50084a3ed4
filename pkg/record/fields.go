package record

// Input field names accepted in a Raw record.
const (
	FieldTitle           = "title"
	FieldExcerpt         = "excerpt"
	FieldSource          = "source"
	FieldAuthor          = "author"
	FieldCategory        = "category"
	FieldTags            = "tags"
	FieldBackgroundImage = "backgroundImage"
	FieldTheme           = "theme"
	FieldFontStyle       = "fontStyle"
	FieldAnimationStyle  = "animationStyle"
	FieldDate            = "date"
)

// Derived field names added during sanitisation.
const (
	FieldShortTitle    = "shortTitle"
	FieldShortExcerpt  = "shortExcerpt"
	FieldCategoryIcon  = "categoryIcon"
	FieldCategoryLabel = "categoryLabel"
	FieldReadingTime   = "readingTime"
	FieldWordCount     = "wordCount"
	FieldPlainTitle    = "plainTitle"
	FieldPlainExcerpt  = "plainExcerpt"
	FieldHashtags      = "hashtags"
	FieldTagCount      = "tagCount"
	FieldISODate       = "isoDate"
)

// InputFields lists every key a Raw record may carry, in canonical order.
var InputFields = []string{
	FieldTitle,
	FieldExcerpt,
	FieldSource,
	FieldAuthor,
	FieldCategory,
	FieldTags,
	FieldBackgroundImage,
	FieldTheme,
	FieldFontStyle,
	FieldAnimationStyle,
	FieldDate,
}

// IsInputField reports whether key is part of the closed input schema.
func IsInputField(key string) bool {
	for _, name := range InputFields {
		if name == key {
			return true
		}
	}
	return false
}
