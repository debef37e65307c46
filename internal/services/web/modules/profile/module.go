// Package profile serves the signed-in user's profile page.
package profile

import (
	"net/http"

	module "github.com/louisbranch/earlypay/internal/services/web/module"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

// Module provides the profile route.
type Module struct {
	deps module.Dependencies
}

// New returns a profile module with explicit dependencies.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "profile" }

// Healthy reports whether the profile module has an operational gateway.
func (m Module) Healthy() bool {
	return m.deps.Gateway != nil
}

// Mount wires the profile route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.deps), m.deps))
	return module.Mount{Prefix: routepath.Profile, Handler: mux}, nil
}
