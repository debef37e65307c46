package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// View selects how a record is displayed.
type View int

const (
	ViewHuman View = iota
	ViewJSON
)

// ParseView maps a query value to a View. Anything but "json" is the human
// view.
func ParseView(s string) View {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return ViewJSON
	}
	return ViewHuman
}

// Toggle returns the other view.
func (v View) Toggle() View {
	if v == ViewJSON {
		return ViewHuman
	}
	return ViewJSON
}

func (v View) String() string {
	if v == ViewJSON {
		return "json"
	}
	return "human"
}

// Label is the toggle caption for v.
func (v View) Label() string {
	if v == ViewJSON {
		return "JSON View"
	}
	return "Regular View"
}

// Field is one labelled line of the human view.
type Field struct {
	Label string
	Value string
}

// Human is the formatted human view of a record.
type Human struct {
	FullName string
	Email    string
	Phone    string
	Company  []Field
	Members  []Member
}

// Output is a record rendered in one view. Exactly one of Human or Raw is
// set.
type Output struct {
	View  View
	Human *Human
	Raw   string
}

// Render formats rec in view.
func Render(rec Record, view View) (Output, error) {
	if view == ViewJSON {
		raw, err := RawView(rec)
		if err != nil {
			return Output{}, err
		}
		return Output{View: view, Raw: raw}, nil
	}
	human := HumanView(rec)
	return Output{View: ViewHuman, Human: &human}, nil
}

var fixedCompanyFields = []struct {
	key   string
	label string
}{
	{key: "name", label: "Name"},
	{key: "business_type", label: "Type"},
	{key: "industry", label: "Industry"},
	{key: "website", label: "Website"},
}

// HumanView lists the fixed company fields first, then every other scalar
// company field ordered by type (string, number, boolean) and then by key.
// Objects, arrays and nulls are left out of the extra fields.
func HumanView(rec Record) Human {
	h := Human{
		FullName: rec.FullName,
		Email:    rec.Email,
		Phone:    rec.Phone,
		Members:  append([]Member(nil), rec.Company.Users...),
	}
	fixed := map[string]bool{}
	for _, field := range fixedCompanyFields {
		fixed[field.key] = true
		h.Company = append(h.Company, Field{Label: field.label, Value: scalarString(rec.Company.Fields[field.key])})
	}

	type entry struct {
		key   string
		value any
	}
	var extras []entry
	for key, value := range rec.Company.Fields {
		if fixed[key] || typeClass(value) == classSkipped {
			continue
		}
		extras = append(extras, entry{key: key, value: value})
	}
	sort.Slice(extras, func(i, j int) bool {
		ci, cj := typeClass(extras[i].value), typeClass(extras[j].value)
		if ci != cj {
			return ci < cj
		}
		return extras[i].key < extras[j].key
	})
	for _, e := range extras {
		h.Company = append(h.Company, Field{Label: e.key, Value: scalarString(e.value)})
	}
	return h
}

const (
	classString = iota
	classNumber
	classBoolean
	classSkipped
)

func typeClass(v any) int {
	switch v.(type) {
	case string:
		return classString
	case json.Number, float64:
		return classNumber
	case bool:
		return classBoolean
	default:
		return classSkipped
	}
}

// RawView returns rec as indented JSON with empty strings and nulls removed
// at every depth.
func RawView(rec Record) (string, error) {
	pruned := Prune(rec.raw)
	if pruned == nil {
		pruned = map[string]any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pruned); err != nil {
		return "", fmt.Errorf("encode user record: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Prune removes empty strings and nulls from v recursively. It returns nil
// when v itself is pruned. Empty objects and arrays are kept.
func Prune(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		if value == "" {
			return nil
		}
		return value
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			if kept := Prune(item); kept != nil {
				out[key] = kept
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(value))
		for _, item := range value {
			if kept := Prune(item); kept != nil {
				out = append(out, kept)
			}
		}
		return out
	default:
		return value
	}
}
