package record

import "encoding/json"

// Field is a named substitution value.
type Field struct {
	Key   string
	Value Value
}

// Enriched is a sanitised record ready for the directive processor. Field
// order is the substitution order.
type Enriched struct {
	fields []Field
	index  map[string]int

	// Theme, FontStyle and AnimationStyle are resolved style selectors consumed
	// by the style-token stage rather than plain substitution.
	Theme          string
	FontStyle      string
	AnimationStyle string

	// BackgroundImage is the vetted URL, empty when none or rejected.
	BackgroundImage string

	// Variables holds the CSS variable map of the resolved theme.
	Variables map[string]string

	Tags     []Tag
	Warnings []Warning
}

// NewEnriched returns an empty record.
func NewEnriched() *Enriched {
	return &Enriched{index: make(map[string]int)}
}

// Set stores a field. Re-setting a key keeps its original position.
func (e *Enriched) Set(key string, value Value) {
	if e.index == nil {
		e.index = make(map[string]int)
	}
	if pos, ok := e.index[key]; ok {
		e.fields[pos].Value = value
		return
	}
	e.index[key] = len(e.fields)
	e.fields = append(e.fields, Field{Key: key, Value: value})
}

// Get returns the field stored under key.
func (e *Enriched) Get(key string) (Value, bool) {
	if e == nil {
		return Value{}, false
	}
	pos, ok := e.index[key]
	if !ok {
		return Value{}, false
	}
	return e.fields[pos].Value, true
}

// Text returns the string form of key, or "" when absent.
func (e *Enriched) Text(key string) string {
	v, ok := e.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}

// Fields returns the ordered fields.
func (e *Enriched) Fields() []Field {
	if e == nil {
		return nil
	}
	return append([]Field(nil), e.fields...)
}

// Keys returns field names in substitution order.
func (e *Enriched) Keys() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.fields))
	for _, field := range e.fields {
		out = append(out, field.Key)
	}
	return out
}

// Warn appends a soft warning.
func (e *Enriched) Warn(field, message string) {
	e.Warnings = append(e.Warnings, Warning{Field: field, Message: message})
}

// MarshalJSON flattens the record for diagnostics surfaces.
func (e *Enriched) MarshalJSON() ([]byte, error) {
	fields := make(map[string]Value, len(e.fields))
	for _, field := range e.fields {
		fields[field.Key] = field.Value
	}
	return json.Marshal(struct {
		Fields          map[string]Value `json:"fields"`
		Theme           string           `json:"theme"`
		FontStyle       string           `json:"fontStyle"`
		AnimationStyle  string           `json:"animationStyle"`
		BackgroundImage string           `json:"backgroundImage,omitempty"`
		Tags            []Tag            `json:"tags,omitempty"`
		Warnings        []Warning        `json:"warnings,omitempty"`
	}{
		Fields:          fields,
		Theme:           e.Theme,
		FontStyle:       e.FontStyle,
		AnimationStyle:  e.AnimationStyle,
		BackgroundImage: e.BackgroundImage,
		Tags:            e.Tags,
		Warnings:        e.Warnings,
	})
}
