package record

// Tag is a derived hashtag entry.
type Tag struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// Item exposes the tag to {{#each}} blocks as {{name}}, {{slug}}, {{color}}.
func (t Tag) Item() Item {
	return Object(
		Prop{Key: "name", Value: t.Name},
		Prop{Key: "slug", Value: t.Slug},
		Prop{Key: "color", Value: t.Color},
	)
}

// TagItems converts tags into an Items value.
func TagItems(tags []Tag) Value {
	items := make([]Item, 0, len(tags))
	for _, tag := range tags {
		items = append(items, tag.Item())
	}
	return Items(items...)
}
