package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/earlypay/internal/authflow/form"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

const (
	// SignupFormID is the HTMX swap target of the signup form.
	SignupFormID = "signup-form"

	signupIndicatorID    = "signup-pending"
	registrationHelpID   = "registration-help"
	operatingNameFieldID = "operating-name-field"
)

var signupErrorFields = []string{
	form.FieldFirstName,
	form.FieldLastName,
	form.FieldEmail,
	form.FieldConfirmPassword,
	form.FieldLegalName,
	form.FieldPhone,
}

// SignupPage renders the signup heading and form.
func SignupPage(f AuthForm, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("section", "class", "auth-page")
		h.authSwitch(routepath.Login, T(loc, "auth.signup.switch"))
		h.element("h1", T(loc, "auth.signup.heading"))
		h.element("h2", T(loc, "auth.signup.subheading"))
		h.component(SignupForm(f, loc))
		h.close("section")
		return h.err
	})
}

// SignupForm renders the signup form. It is also the HTMX response when a
// submission is rejected.
func SignupForm(f AuthForm, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rules := form.SignupRules()
		validate := routepath.SignupValidate
		h := newHTMLWriter(ctx, w)
		h.open("form",
			"id", SignupFormID,
			"class", "auth-form",
			"method", "post",
			"action", routepath.Signup,
			"novalidate", bare,
			"hx-post", routepath.Signup,
			"hx-target", "#"+SignupFormID,
			"hx-swap", "outerHTML",
			"hx-indicator", "#"+signupIndicatorID,
			"hx-disabled-elt", "find button[type=submit]",
		)
		h.hiddenSubmitted(f.SubmittedOnce)

		h.open("div", "class", "field-row")
		h.textInput(inputSpec{name: form.FieldFirstName, inputType: "text", label: T(loc, "auth.field.first_name"), value: f.Values.Text(form.FieldFirstName), validateURL: validate}, f.Errors, loc)
		h.textInput(inputSpec{name: form.FieldLastName, inputType: "text", label: T(loc, "auth.field.last_name"), value: f.Values.Text(form.FieldLastName), validateURL: validate}, f.Errors, loc)
		h.close("div")
		h.textInput(inputSpec{name: form.FieldEmail, inputType: "email", label: T(loc, "auth.field.work_email_required"), value: f.Values.Text(form.FieldEmail), validateURL: validate}, f.Errors, loc)
		h.textInput(inputSpec{name: form.FieldPassword, inputType: "password", label: T(loc, "auth.field.password_required"), hint: T(loc, "auth.field.password_hint"), value: f.Values.Text(form.FieldPassword), validateURL: validate}, f.Errors, loc)
		h.textInput(inputSpec{name: form.FieldConfirmPassword, inputType: "password", label: T(loc, "auth.field.confirm_password_required"), value: f.Values.Text(form.FieldConfirmPassword), validateURL: validate}, f.Errors, loc)

		h.raw(`<hr class="form-divider">`)
		h.element("h3", T(loc, "auth.signup.company_heading"))
		registration := f.Values.Text(form.FieldBusinessRegistrationType)
		h.radioWithTickMark(mustField(rules, form.FieldBusinessRegistrationType), "", registration, validate, f.Errors, loc)
		h.registrationHelp(registration, loc, false)
		h.textInput(inputSpec{name: form.FieldLegalName, inputType: "text", label: T(loc, "auth.field.legal_name_required"), value: f.Values.Text(form.FieldLegalName), validateURL: validate}, f.Errors, loc)
		h.checkbox(form.FieldHasTradeName, T(loc, "auth.field.has_trade_name"), f.Values.Bool(form.FieldHasTradeName), validate)
		h.operatingName(f, loc, false)
		h.textInput(inputSpec{name: form.FieldBusinessNumber, inputType: "text", inputMode: "numeric", label: T(loc, "auth.field.business_number"), value: f.Values.Text(form.FieldBusinessNumber)}, f.Errors, loc)
		h.selectInput(mustField(rules, form.FieldCompanyType), T(loc, "auth.field.company_type_required"), f.Values.Text(form.FieldCompanyType), validate, f.Errors, loc)
		h.selectInput(mustField(rules, form.FieldIndustry), T(loc, "auth.field.industry_required"), f.Values.Text(form.FieldIndustry), validate, f.Errors, loc)

		h.raw(`<hr class="form-divider">`)
		h.textInput(inputSpec{name: form.FieldWebsite, inputType: "text", label: T(loc, "auth.field.website"), value: f.Values.Text(form.FieldWebsite)}, f.Errors, loc)
		h.textInput(inputSpec{name: form.FieldPhone, inputType: "tel", inputMode: "numeric", label: T(loc, "auth.field.phone"), value: f.Values.Text(form.FieldPhone), validateURL: validate}, f.Errors, loc)

		h.raw(`<hr class="form-divider">`)
		h.element("h3", T(loc, "auth.signup.activity_heading"))
		h.radioWithTickMark(mustField(rules, form.FieldExpectedActivity), T(loc, "auth.signup.activity_prompt"), f.Values.Text(form.FieldExpectedActivity), validate, f.Errors, loc)

		h.submitButton(T(loc, "auth.signup.submit"), T(loc, "auth.signup.pending"), signupIndicatorID)
		h.close("form")
		return h.err
	})
}

// SignupFieldErrors renders every signup error slot out of band. The field
// named by trigger also refreshes the sections that depend on it.
func SignupFieldErrors(f AuthForm, loc Localizer, trigger string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		for _, field := range signupErrorFields {
			h.fieldError(field, f.Errors, loc, "", true)
		}
		h.fieldError(form.FieldPassword, f.Errors, loc, T(loc, "auth.field.password_hint"), true)
		for _, field := range []string{form.FieldBusinessRegistrationType, form.FieldCompanyType, form.FieldIndustry, form.FieldExpectedActivity} {
			h.fieldError(field, f.Errors, loc, "", true)
		}
		switch trigger {
		case form.FieldBusinessRegistrationType:
			h.registrationHelp(f.Values.Text(form.FieldBusinessRegistrationType), loc, true)
		case form.FieldHasTradeName:
			h.operatingName(f, loc, true)
		}
		return h.err
	})
}

func (h *htmlWriter) registrationHelp(registration string, loc Localizer, oob bool) {
	h.open("div", "id", registrationHelpID, "class", "registration-help", when(oob, "hx-swap-oob"), "true")
	switch registration {
	case form.RegistrationSoleProprietor:
		h.element("p", T(loc, "auth.signup.help_sole_proprietor"))
	case form.RegistrationCorporation:
		h.element("p", T(loc, "auth.signup.help_corporation"))
	}
	h.close("div")
}

func (h *htmlWriter) operatingName(f AuthForm, loc Localizer, oob bool) {
	h.open("div", "id", operatingNameFieldID, when(oob, "hx-swap-oob"), "true")
	if f.Values.Bool(form.FieldHasTradeName) {
		h.textInput(inputSpec{
			name:      form.FieldOperatingName,
			inputType: "text",
			label:     T(loc, "auth.field.operating_name"),
			value:     f.Values.Text(form.FieldOperatingName),
		}, f.Errors, loc)
	}
	h.close("div")
}
