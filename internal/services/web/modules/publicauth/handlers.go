package publicauth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/earlypay/internal/authflow/form"
	"github.com/louisbranch/earlypay/internal/authflow/submit"
	module "github.com/louisbranch/earlypay/internal/services/web/module"
	apperrors "github.com/louisbranch/earlypay/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/earlypay/internal/services/web/platform/flash"
	"github.com/louisbranch/earlypay/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/earlypay/internal/services/web/platform/i18n"
	"github.com/louisbranch/earlypay/internal/services/web/platform/pagerender"
	"github.com/louisbranch/earlypay/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/earlypay/internal/services/web/platform/weberror"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/earlypay/internal/services/web/templates"
	"go.uber.org/zap"
)

type handlers struct {
	service service
	deps    module.Dependencies
	logger  *zap.Logger
}

// formView binds a flow to the components that render it.
type formView struct {
	flow     flow
	titleKey string
	page     func(webtemplates.AuthForm, webtemplates.Localizer) templ.Component
	form     func(webtemplates.AuthForm, webtemplates.Localizer) templ.Component
}

var (
	loginView = formView{
		flow:     loginFlow,
		titleKey: "auth.login.title",
		page:     webtemplates.LoginPage,
		form:     webtemplates.LoginForm,
	}
	signupView = formView{
		flow:     signupFlow,
		titleKey: "auth.signup.title",
		page:     webtemplates.SignupPage,
		form:     webtemplates.SignupForm,
	}
)

func newHandlers(s service, deps module.Dependencies) handlers {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return handlers{service: s, deps: deps, logger: logger.Named("publicauth")}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps.Policy)
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.writeFormPage(w, r, loginView, webtemplates.AuthForm{Values: form.Values{}, Errors: form.Errors{}}, http.StatusOK, nil)
}

func (h handlers) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	h.writeFormPage(w, r, signupView, webtemplates.AuthForm{Values: form.Values{}, Errors: form.Errors{}}, http.StatusOK, nil)
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	h.handleSubmit(w, r, loginView)
}

func (h handlers) handleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	h.handleSubmit(w, r, signupView)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request, view formView) {
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form: "+err.Error()), h.deps.Policy)
		return
	}
	values := form.Decode(view.flow.rules, r.PostForm)
	f := form.FromValues(view.flow.rules, values)
	sessionID := sessioncookie.Ensure(w, r, h.deps.Policy)

	out, err := h.service.submit(r.Context(), sessionID, view.flow, f)
	if errors.Is(err, submit.ErrInFlight) {
		notice := flashnotice.FromSubmit(submit.NoticeInFlight())
		h.writeFormPage(w, r, view, authForm(f), http.StatusConflict, &notice)
		return
	}
	if err != nil {
		h.logger.Error("submit failed",
			zap.String("flow", string(view.flow.name)),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		h.writeFormPage(w, r, view, authForm(f), http.StatusInternalServerError, noticeOrNil(out.notice))
		return
	}

	switch out.result.State {
	case submit.Idle:
		h.writeFormPage(w, r, view, authForm(f), http.StatusUnprocessableEntity, nil)
	case submit.Succeeded:
		if out.notice != nil {
			flashnotice.Write(w, r, flashnotice.FromSubmit(*out.notice), h.deps.Policy)
		}
		httpx.WriteRedirect(w, r, out.redirect)
	default:
		h.logger.Info("submit rejected by backend",
			zap.String("flow", string(view.flow.name)),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.String("message", out.result.Message),
		)
		h.writeFormPage(w, r, view, authForm(f), http.StatusOK, noticeOrNil(out.notice))
	}
}

func (h handlers) handleLoginValidate(w http.ResponseWriter, r *http.Request) {
	h.handleValidate(w, r, loginFlow, func(f webtemplates.AuthForm, loc webtemplates.Localizer) templ.Component {
		return webtemplates.LoginFieldErrors(f, loc)
	})
}

func (h handlers) handleSignupValidate(w http.ResponseWriter, r *http.Request) {
	trigger := strings.TrimSpace(r.Header.Get("HX-Trigger-Name"))
	h.handleValidate(w, r, signupFlow, func(f webtemplates.AuthForm, loc webtemplates.Localizer) templ.Component {
		return webtemplates.SignupFieldErrors(f, loc, trigger)
	})
}

// handleValidate answers a field change. Errors are only reported once the
// form has been submitted.
func (h handlers) handleValidate(w http.ResponseWriter, r *http.Request, fl flow, render func(webtemplates.AuthForm, webtemplates.Localizer) templ.Component) {
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form: "+err.Error()), h.deps.Policy)
		return
	}
	f := form.FromValues(fl.rules, form.Decode(fl.rules, r.PostForm))
	if r.PostForm.Get(webtemplates.SubmittedOnceField) == "true" {
		f.MarkSubmitted()
		f.Validate()
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	var buf strings.Builder
	if err := render(authForm(f), loc).Render(httpx.RequestContext(r), &buf); err != nil {
		weberror.WriteModuleError(w, r, err, h.deps.Policy)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, buf.String())
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := sessioncookie.Read(r); ok {
		if err := h.service.logout(r.Context(), sessionID); err != nil {
			h.logger.Warn("logout failed",
				zap.String("request_id", httpx.RequestIDFrom(r)),
				zap.Error(err),
			)
		}
	}
	flashnotice.Write(w, r, flashnotice.Notice{Kind: flashnotice.KindInfo, Key: submit.FormatLoggedOut}, h.deps.Policy)
	httpx.WriteRedirect(w, r, routepath.Login)
}

// writeFormPage renders view with f. HTMX requests get the form fragment
// with a 200 so htmx swaps it; statusCode applies to full page loads.
func (h handlers) writeFormPage(w http.ResponseWriter, r *http.Request, view formView, f webtemplates.AuthForm, statusCode int, notice *flashnotice.Notice) {
	build := view.page
	if httpx.IsHTMXRequest(r) {
		build = view.form
		statusCode = http.StatusOK
	}
	err := pagerender.WritePage(w, r, h.deps.Policy, pagerender.Page{
		TitleKey:   view.titleKey,
		StatusCode: statusCode,
		Build: func(loc webtemplates.Localizer) templ.Component {
			return build(f, loc)
		},
		Notice: notice,
	})
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps.Policy)
	}
}

func authForm(f *form.Form) webtemplates.AuthForm {
	return webtemplates.AuthForm{Values: f.Values(), Errors: f.Errors(), SubmittedOnce: f.SubmittedOnce()}
}

func noticeOrNil(n *submit.Notice) *flashnotice.Notice {
	if n == nil {
		return nil
	}
	notice := flashnotice.FromSubmit(*n)
	return &notice
}
