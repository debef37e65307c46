package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/louisbranch/earlypay/internal/apiclient"
	"github.com/louisbranch/earlypay/internal/authflow/form"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

// TokenKey is the session storage key holding the bearer token.
const TokenKey = "jwt_bearer_token"

// Gateway is the backend the controller submits to.
type Gateway interface {
	Login(context.Context, apiclient.LoginRequest) (apiclient.LoginResponse, error)
	Signup(context.Context, apiclient.SignupRequest) (apiclient.SignupResponse, error)
}

// TokenStore is session-scoped key/value storage. Get returns "" for a
// missing key.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Navigator moves the user to another page.
type Navigator interface {
	GoTo(path string)
}

// Notifier shows a transient message.
type Notifier interface {
	Notify(Notice)
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Gateway   Gateway
	Tokens    TokenStore
	Navigator Navigator
	Notifier  Notifier
}

// Result describes the outcome of one Submit call.
type Result struct {
	State State
	// Errors is set when validation rejected the attempt.
	Errors form.Errors
	// Message is the backend message on success or failure.
	Message string
}

// Controller submits one form instance.
type Controller struct {
	flow        Flow
	deps        Deps
	successPath string

	mu    sync.Mutex
	state State
}

// NewLogin returns a controller for the login form.
func NewLogin(deps Deps) *Controller {
	return &Controller{flow: FlowLogin, deps: deps, successPath: routepath.Profile}
}

// NewSignup returns a controller for the signup form.
func NewSignup(deps Deps) *Controller {
	return &Controller{flow: FlowSignup, deps: deps, successPath: routepath.Login}
}

// Flow reports which form c submits.
func (c *Controller) Flow() Flow {
	return c.flow
}

// State reports the stage of the most recent attempt.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates f and, when it is valid, calls the backend. Validation
// failures return an Idle result with Errors and make no calls. Backend
// failures return a Failed result and leave f untouched. The only error
// returns are ErrInFlight and session storage failures.
func (c *Controller) Submit(ctx context.Context, f *form.Form) (Result, error) {
	if f == nil {
		return Result{}, errors.New("form is required")
	}
	if c.deps.Gateway == nil {
		return Result{}, errors.New("submit gateway is not configured")
	}

	f.MarkSubmitted()
	if errs := f.Validate(); len(errs) > 0 {
		return Result{State: Idle, Errors: errs}, nil
	}

	if err := c.begin(); err != nil {
		return Result{State: Pending}, err
	}

	values := f.Values()
	switch c.flow {
	case FlowLogin:
		return c.login(ctx, values)
	case FlowSignup:
		return c.signup(ctx, values)
	default:
		c.finish(Failed)
		return Result{State: Failed}, fmt.Errorf("unknown flow %q", c.flow)
	}
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Pending {
		return ErrInFlight
	}
	c.state = Pending
	return nil
}

func (c *Controller) finish(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Controller) login(ctx context.Context, values form.Values) (Result, error) {
	resp, err := c.deps.Gateway.Login(ctx, LoginRequest(values))
	if err != nil {
		return c.fail(err), nil
	}
	if c.deps.Tokens != nil {
		if err := c.deps.Tokens.Set(ctx, TokenKey, resp.Token); err != nil {
			c.finish(Failed)
			c.notify(Notice{Level: LevelError, Format: FormatSessionWrite})
			return Result{State: Failed}, fmt.Errorf("store bearer token: %w", err)
		}
	}
	c.finish(Succeeded)
	c.notify(Notice{Level: LevelSuccess, Format: FormatLoginSuccess, Args: []string{resp.Message}})
	c.goTo(c.successPath)
	return Result{State: Succeeded, Message: resp.Message}, nil
}

func (c *Controller) signup(ctx context.Context, values form.Values) (Result, error) {
	resp, err := c.deps.Gateway.Signup(ctx, SignupRequest(values))
	if err != nil {
		return c.fail(err), nil
	}
	c.finish(Succeeded)
	c.notify(Notice{Level: LevelSuccess, Format: FormatSignupSuccess, Args: []string{resp.Message}})
	c.goTo(c.successPath)
	return Result{State: Succeeded, Message: resp.Message}, nil
}

func (c *Controller) fail(err error) Result {
	message := apiclient.Message(err)
	c.finish(Failed)
	c.notify(Notice{Level: LevelError, Format: FormatServerMessage, Args: []string{message}})
	return Result{State: Failed, Message: message}
}

func (c *Controller) notify(n Notice) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(n)
	}
}

func (c *Controller) goTo(path string) {
	if c.deps.Navigator != nil {
		c.deps.Navigator.GoTo(path)
	}
}
