package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/earlypay/internal/authflow/form"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

const (
	// LoginFormID is the HTMX swap target of the login form.
	LoginFormID = "login-form"

	loginIndicatorID = "login-pending"
)

// LoginPage renders the login heading and form.
func LoginPage(f AuthForm, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("section", "class", "auth-page")
		h.authSwitch(routepath.Signup, T(loc, "auth.login.switch"))
		h.element("h1", T(loc, "auth.login.heading"))
		h.element("h2", T(loc, "auth.login.subheading"))
		h.component(LoginForm(f, loc))
		h.close("section")
		return h.err
	})
}

// LoginForm renders the login form. It is also the HTMX response when a
// submission is rejected.
func LoginForm(f AuthForm, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("form",
			"id", LoginFormID,
			"class", "auth-form",
			"method", "post",
			"action", routepath.Login,
			"novalidate", bare,
			"hx-post", routepath.Login,
			"hx-target", "#"+LoginFormID,
			"hx-swap", "outerHTML",
			"hx-indicator", "#"+loginIndicatorID,
			"hx-disabled-elt", "find button[type=submit]",
		)
		h.hiddenSubmitted(f.SubmittedOnce)
		h.textInput(inputSpec{
			name:        form.FieldEmail,
			inputType:   "email",
			label:       T(loc, "auth.field.work_email"),
			value:       f.Values.Text(form.FieldEmail),
			validateURL: routepath.LoginValidate,
		}, f.Errors, loc)
		h.textInput(inputSpec{
			name:        form.FieldPassword,
			inputType:   "password",
			label:       T(loc, "auth.field.password"),
			hint:        T(loc, "auth.field.password_hint"),
			value:       f.Values.Text(form.FieldPassword),
			validateURL: routepath.LoginValidate,
		}, f.Errors, loc)
		h.submitButton(T(loc, "auth.login.submit"), T(loc, "auth.login.pending"), loginIndicatorID)
		h.close("form")
		return h.err
	})
}

// LoginFieldErrors renders every login error slot out of band.
func LoginFieldErrors(f AuthForm, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.fieldError(form.FieldEmail, f.Errors, loc, "", true)
		h.fieldError(form.FieldPassword, f.Errors, loc, T(loc, "auth.field.password_hint"), true)
		return h.err
	})
}

func (h *htmlWriter) authSwitch(href, label string) {
	h.open("div", "class", "auth-switch")
	h.element("a", label, "href", href, "class", "text-button")
	h.close("div")
}
