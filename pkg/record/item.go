package record

// Prop is a single named property of a loop item.
type Prop struct {
	Key   string
	Value string
}

// Item is one element of an iterable field. Object items carry ordered
// properties; primitive items carry a single string.
type Item struct {
	props     []Prop
	primitive string
}

// Primitive builds an item substituted through {{this}}.
func Primitive(value string) Item { return Item{primitive: value} }

// Object builds an item whose properties are substituted by name.
func Object(props ...Prop) Item {
	return Item{props: append([]Prop{}, props...)}
}

// IsObject reports whether the item carries properties.
func (i Item) IsObject() bool { return i.props != nil }

// Props returns the ordered properties of an object item.
func (i Item) Props() []Prop { return append([]Prop(nil), i.props...) }

// Get looks up a property by key.
func (i Item) Get(key string) (string, bool) {
	for _, prop := range i.props {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// String returns the primitive value, or the "name" property of an object
// (falling back to its first property).
func (i Item) String() string {
	if !i.IsObject() {
		return i.primitive
	}
	if name, ok := i.Get("name"); ok {
		return name
	}
	if len(i.props) > 0 {
		return i.props[0].Value
	}
	return ""
}

func (i Item) toJSON() any {
	if !i.IsObject() {
		return i.primitive
	}
	out := make(map[string]string, len(i.props))
	for _, prop := range i.props {
		out[prop.Key] = prop.Value
	}
	return out
}
