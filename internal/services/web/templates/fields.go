package templates

import (
	"github.com/louisbranch/earlypay/internal/authflow/form"
)

// AuthForm is the state a login or signup form renders from.
type AuthForm struct {
	Values        form.Values
	Errors        form.Errors
	SubmittedOnce bool
}

// SubmittedOnceField carries the form's submitted flag between requests.
const SubmittedOnceField = "submittedOnce"

// FieldErrorID returns the element id of a field's error slot.
func FieldErrorID(field string) string {
	return "error-" + field
}

type inputSpec struct {
	name        string
	inputType   string
	label       string
	hint        string
	value       string
	validateURL string
	inputMode   string
}

func (h *htmlWriter) hiddenSubmitted(submitted bool) {
	value := "false"
	if submitted {
		value = "true"
	}
	h.open("input", "type", "hidden", "name", SubmittedOnceField, "value", value)
}

func (h *htmlWriter) validateAttrs(url string) []string {
	if url == "" {
		return nil
	}
	return []string{
		"hx-post", url,
		"hx-trigger", "input changed delay:300ms, change",
		"hx-include", "closest form",
		"hx-swap", "none",
	}
}

func (h *htmlWriter) textInput(spec inputSpec, errs form.Errors, loc Localizer) {
	id := "field-" + spec.name
	h.open("div", "class", "field field-text")
	h.open("input", append([]string{
		"id", id,
		"type", spec.inputType,
		"name", spec.name,
		"value", spec.value,
		"placeholder", spec.label,
		when(spec.inputMode != "", "inputmode"), spec.inputMode,
		"aria-describedby", FieldErrorID(spec.name),
	}, h.validateAttrs(spec.validateURL)...)...)
	h.element("label", spec.label, "for", id)
	h.fieldError(spec.name, errs, loc, spec.hint, false)
	h.close("div")
}

// fieldError writes the error slot for field. When there is no error the
// optional hint is shown instead.
func (h *htmlWriter) fieldError(field string, errs form.Errors, loc Localizer, hint string, oob bool) {
	h.open("div", "id", FieldErrorID(field), "class", "field-feedback", when(oob, "hx-swap-oob"), "true")
	if message := errs.Get(field); message != "" {
		h.element("p", T(loc, message), "class", "field-error", "role", "alert")
	} else if hint != "" {
		h.element("p", hint, "class", "field-hint")
	}
	h.close("div")
}

func (h *htmlWriter) selectInput(field form.Field, label, value, validateURL string, errs form.Errors, loc Localizer) {
	id := "select-" + field.Name
	h.open("div", "class", "field field-select")
	h.element("label", label, "for", id)
	h.open("select", append([]string{"id", id, "name", field.Name, "aria-describedby", FieldErrorID(field.Name)}, h.validateAttrs(validateURL)...)...)
	h.element("option", T(loc, "auth.field.select_placeholder"), "value", "")
	for _, option := range field.Options {
		h.element("option", option.Label, "value", option.Value, when(option.Value == value, "selected"), bare)
	}
	h.close("select")
	h.fieldError(field.Name, errs, loc, "", false)
	h.close("div")
}

// radioWithTickMark renders a radio group whose options show a tick when
// selected.
func (h *htmlWriter) radioWithTickMark(field form.Field, legend, value, validateURL string, errs form.Errors, loc Localizer) {
	h.open("fieldset", "class", "field radio-tick", "aria-describedby", FieldErrorID(field.Name))
	if legend != "" {
		h.element("legend", legend)
	}
	for _, option := range field.Options {
		selected := option.Value == value
		class := "radio-tick-option"
		if selected {
			class += " is-selected"
		}
		h.open("label", "class", class, "for", option.ID)
		h.open("input", append([]string{
			"id", option.ID,
			"type", "radio",
			"name", field.Name,
			"value", option.Value,
			when(selected, "checked"), bare,
		}, h.validateAttrs(validateURL)...)...)
		h.element("span", option.Label, "class", "radio-tick-label")
		h.element("span", "✓", "class", "radio-tick-mark", "aria-hidden", "true")
		h.close("label")
	}
	h.close("fieldset")
	h.fieldError(field.Name, errs, loc, "", false)
}

func (h *htmlWriter) checkbox(name, label string, checked bool, validateURL string) {
	id := "field-" + name
	h.open("label", "class", "field field-checkbox", "for", id)
	h.open("input", append([]string{
		"id", id,
		"type", "checkbox",
		"name", name,
		"value", "true",
		when(checked, "checked"), bare,
	}, h.validateAttrs(validateURL)...)...)
	h.element("span", label)
	h.close("label")
}

func (h *htmlWriter) submitButton(label, pending, indicatorID string) {
	h.open("div", "class", "form-actions")
	h.element("button", label, "type", "submit", "class", "button-primary")
	h.element("span", pending, "id", indicatorID, "class", "htmx-indicator", "role", "status")
	h.close("div")
}

func mustField(rules form.Rules, name string) form.Field {
	field, _ := rules.Field(name)
	return field
}
