package record

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindList
	KindItems
	KindDate
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindItems:
		return "items"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is the closed set of shapes a record field can take.
type Value struct {
	kind  Kind
	str   string
	list  []string
	items []Item
	date  time.Time
	flag  bool
}

// String wraps a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List wraps a list of primitive strings.
func List(values ...string) Value {
	return Value{kind: KindList, list: append([]string(nil), values...)}
}

// Items wraps a list of loop items.
func Items(items ...Item) Value {
	return Value{kind: KindItems, items: append([]Item(nil), items...)}
}

// Date wraps a point in time.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Bool wraps a flag.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// Time returns the wrapped date; zero for other kinds.
func (v Value) Time() time.Time { return v.date }

// Len returns the number of elements for list kinds and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindItems:
		return len(v.items)
	default:
		return 0
	}
}

// Elements exposes list kinds as loop items. Primitive lists are wrapped.
func (v Value) Elements() []Item {
	switch v.kind {
	case KindItems:
		return append([]Item(nil), v.items...)
	case KindList:
		out := make([]Item, 0, len(v.list))
		for _, entry := range v.list {
			out = append(out, Primitive(entry))
		}
		return out
	default:
		return nil
	}
}

// String renders the substitution form: lists join with ", ".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindList:
		return strings.Join(v.list, ", ")
	case KindItems:
		parts := make([]string, 0, len(v.items))
		for _, item := range v.items {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ", ")
	case KindDate:
		return FormatDate(v.date)
	case KindBool:
		if v.flag {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Truthy reports whether a conditional block guarded by this value is kept.
// Empty strings, the literal "none", false and empty lists are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != "" && v.str != "none"
	case KindList, KindItems:
		return v.Len() > 0
	case KindDate:
		return !v.date.IsZero()
	case KindBool:
		return v.flag
	default:
		return false
	}
}

// MarshalJSON emits the natural JSON shape of the variant.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindList:
		return json.Marshal(v.list)
	case KindItems:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.toJSON())
		}
		return json.Marshal(out)
	case KindDate:
		return json.Marshal(v.date.Format(time.RFC3339))
	case KindBool:
		return json.Marshal(v.flag)
	default:
		return json.Marshal(v.str)
	}
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as a Spanish long date, e.g. "19 de octubre de 2026".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.Itoa(t.Day()) + " de " + spanishMonths[t.Month()-1] + " de " + strconv.Itoa(t.Year())
}
