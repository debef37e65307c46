package publicauth

import (
	"context"
	"errors"

	"github.com/louisbranch/earlypay/internal/apiclient"
	"github.com/louisbranch/earlypay/internal/authflow/form"
	"github.com/louisbranch/earlypay/internal/authflow/submit"
	module "github.com/louisbranch/earlypay/internal/services/web/module"
	"github.com/louisbranch/earlypay/internal/services/web/storage"
)

// service runs one submission per request against the shared guard and the
// caller's session storage.
type service struct {
	gateway  submit.Gateway
	sessions storage.SessionStore
	guard    *submit.Guard
}

// flow binds a submit flow to its rule set and controller constructor.
type flow struct {
	name          submit.Flow
	rules         form.Rules
	newController func(submit.Deps) *submit.Controller
}

var (
	loginFlow  = flow{name: submit.FlowLogin, rules: form.LoginRules(), newController: submit.NewLogin}
	signupFlow = flow{name: submit.FlowSignup, rules: form.SignupRules(), newController: submit.NewSignup}
)

// outcome is the result of one submission plus what the controller asked the
// browser to do next.
type outcome struct {
	result submit.Result
	// notice is the last notification raised by the controller.
	notice *submit.Notice
	// redirect is set when the controller navigated away.
	redirect string
}

func newService(deps module.Dependencies) service {
	guard := deps.Guard
	if guard == nil {
		guard = submit.NewGuard()
	}
	var gateway submit.Gateway = unavailableGateway{}
	if deps.Gateway != nil {
		gateway = deps.Gateway
	}
	return service{gateway: gateway, sessions: deps.Sessions, guard: guard}
}

// submit runs f through fl's controller for sessionID. Invalid forms are
// returned as Idle before the guard is claimed. It returns
// submit.ErrInFlight when the same session already has fl pending.
func (s service) submit(ctx context.Context, sessionID string, fl flow, f *form.Form) (outcome, error) {
	f.MarkSubmitted()
	if errs := f.Validate(); len(errs) > 0 {
		return outcome{result: submit.Result{State: submit.Idle, Errors: errs}}, nil
	}

	release, err := s.guard.Begin(submit.Key(sessionID, fl.name))
	if err != nil {
		return outcome{}, err
	}
	defer release()

	rec := &recorder{}
	ctrl := fl.newController(submit.Deps{
		Gateway:   s.gateway,
		Tokens:    s.tokens(sessionID),
		Navigator: rec,
		Notifier:  rec,
	})
	result, err := ctrl.Submit(ctx, f)
	return outcome{result: result, notice: rec.notice, redirect: rec.path}, err
}

// logout drops every value held for the session, the bearer token included.
func (s service) logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || s.sessions == nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}

func (s service) tokens(sessionID string) submit.TokenStore {
	if s.sessions == nil {
		return nil
	}
	return storage.Scope(s.sessions, sessionID)
}

// recorder collects the controller's navigation and notification requests
// so the handler can turn them into a redirect and a flash notice.
type recorder struct {
	path   string
	notice *submit.Notice
}

func (r *recorder) GoTo(path string) {
	r.path = path
}

func (r *recorder) Notify(n submit.Notice) {
	r.notice = &n
}

var errGatewayUnavailable = errors.New("account backend is not configured")

// unavailableGateway fails every call the way an unreachable backend does.
type unavailableGateway struct{}

func (unavailableGateway) Login(context.Context, apiclient.LoginRequest) (apiclient.LoginResponse, error) {
	return apiclient.LoginResponse{}, errGatewayUnavailable
}

func (unavailableGateway) Signup(context.Context, apiclient.SignupRequest) (apiclient.SignupResponse, error) {
	return apiclient.SignupResponse{}, errGatewayUnavailable
}
