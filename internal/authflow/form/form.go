// Package form holds per-instance form state: the values a user has entered
// and the validation errors derived from them.
package form

// Kind describes how a field is collected.
type Kind int

const (
	// KindText is a free text input.
	KindText Kind = iota
	// KindChoice is a select or radio group restricted to Options.
	KindChoice
	// KindCheckbox is a boolean toggle.
	KindCheckbox
)

// Option is one selectable entry of a choice field.
type Option struct {
	ID    string
	Value string
	Label string
}

// Field declares the checks for one input.
type Field struct {
	Name string
	Kind Kind
	// Required is the message reported when the field is empty. Fields with
	// no Required message are optional.
	Required string
	// Check validates a non-empty value; Invalid is reported when it fails.
	Check   func(string) bool
	Invalid string
	Options []Option
}

// Confirm requires Field to equal Target. It is only evaluated when Target
// passes its own checks.
type Confirm struct {
	Field   string
	Target  string
	Message string
}

// Rules is the fixed rule set for one form.
type Rules struct {
	Name     string
	Fields   []Field
	Confirms []Confirm
}

// Field returns the declaration for name.
func (r Rules) Field(name string) (Field, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Evaluate returns the errors for values under r. The result depends only on
// values and r.
func (r Rules) Evaluate(values Values) Errors {
	errs := Errors{}
	for _, field := range r.Fields {
		if message, ok := field.evaluate(values[field.Name]); !ok {
			errs[field.Name] = message
		}
	}
	for _, confirm := range r.Confirms {
		target, ok := r.Field(confirm.Target)
		if !ok {
			continue
		}
		if _, targetOK := target.evaluate(values[confirm.Target]); !targetOK {
			continue
		}
		if values.Text(confirm.Field) != values.Text(confirm.Target) {
			errs[confirm.Field] = confirm.Message
		}
	}
	return errs
}

func (f Field) evaluate(value Value) (string, bool) {
	if value.Empty() {
		if f.Required != "" {
			return f.Required, false
		}
		return "", true
	}
	if f.Kind == KindChoice && len(f.Options) > 0 && !f.hasOption(value.String()) {
		if f.Required != "" {
			return f.Required, false
		}
		return f.Invalid, false
	}
	if f.Check != nil && !f.Check(value.String()) {
		return f.Invalid, false
	}
	return "", true
}

func (f Field) hasOption(value string) bool {
	for _, option := range f.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// Form is the state of one form instance.
type Form struct {
	rules         Rules
	values        Values
	errors        Errors
	submittedOnce bool
}

// New returns an empty form governed by rules.
func New(rules Rules) *Form {
	return &Form{rules: rules, values: Values{}, errors: Errors{}}
}

// FromValues returns a form pre-filled with values.
func FromValues(rules Rules, values Values) *Form {
	f := New(rules)
	for name, value := range values {
		f.values[name] = value
	}
	return f
}

// Rules returns the form's rule set.
func (f *Form) Rules() Rules {
	return f.rules
}

// SetField replaces one value. Once a submit has been attempted, the form is
// re-validated immediately so errors clear as the user corrects them.
func (f *Form) SetField(name string, value Value) {
	f.values[name] = value
	if f.submittedOnce {
		f.Validate()
	}
}

// Validate recomputes and returns the full error map.
func (f *Form) Validate() Errors {
	f.errors = f.rules.Evaluate(f.values)
	return f.errors.Clone()
}

// MarkSubmitted records that the user attempted a submit.
func (f *Form) MarkSubmitted() {
	f.submittedOnce = true
}

// SubmittedOnce reports whether a submit has been attempted.
func (f *Form) SubmittedOnce() bool {
	return f.submittedOnce
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	return f.values.Clone()
}

// Errors returns a copy of the errors from the last validation pass.
func (f *Form) Errors() Errors {
	return f.errors.Clone()
}

// Clear drops all values and errors and resets the submit marker.
func (f *Form) Clear() {
	f.values = Values{}
	f.errors = Errors{}
	f.submittedOnce = false
}
