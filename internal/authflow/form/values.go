package form

import (
	"sort"
	"strings"
)

// Value is the current content of one field: free text or a checkbox state.
type Value struct {
	text    string
	checked bool
	isBool  bool
}

// Text builds a text value.
func Text(s string) Value {
	return Value{text: s}
}

// Bool builds a checkbox value.
func Bool(b bool) Value {
	return Value{checked: b, isBool: true}
}

// String returns the text content, or "true"/"false" for checkbox values.
func (v Value) String() string {
	if v.isBool {
		if v.checked {
			return "true"
		}
		return "false"
	}
	return v.text
}

// Bool reports the checkbox state. Text values are never checked.
func (v Value) Bool() bool {
	return v.isBool && v.checked
}

// IsBool reports whether v holds a checkbox state.
func (v Value) IsBool() bool {
	return v.isBool
}

// Empty reports whether v carries no user input.
func (v Value) Empty() bool {
	if v.isBool {
		return !v.checked
	}
	return v.text == ""
}

// Values maps field names to their current values.
type Values map[string]Value

// Text returns the text content of name, or "" when unset.
func (v Values) Text(name string) string {
	return v[name].String()
}

// Bool returns the checkbox state of name, or false when unset.
func (v Values) Bool(name string) bool {
	return v[name].Bool()
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}

// Errors maps field names to a human-readable reason the field is rejected.
// An empty map means the form is valid.
type Errors map[string]string

// Has reports whether name has an error.
func (e Errors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Get returns the message for name, or "".
func (e Errors) Get(name string) string {
	return e[name]
}

// Keys returns the field names with errors in sorted order.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for name, message := range e {
		out[name] = message
	}
	return out
}

// Decode reads posted form data into Values for the fields rules declares.
// Checkbox fields are checked when present with any value other than
// "false" or "off"; text fields keep the first submitted value.
func Decode(rules Rules, src map[string][]string) Values {
	out := make(Values, len(rules.Fields))
	for _, field := range rules.Fields {
		raw, present := src[field.Name]
		first := ""
		if len(raw) > 0 {
			first = raw[0]
		}
		if field.Kind == KindCheckbox {
			switch strings.ToLower(strings.TrimSpace(first)) {
			case "false", "off":
				out[field.Name] = Bool(false)
			default:
				out[field.Name] = Bool(present)
			}
			continue
		}
		out[field.Name] = Text(first)
	}
	return out
}
