// Package publicauth serves the login and signup flows.
package publicauth

import (
	"net/http"

	module "github.com/louisbranch/earlypay/internal/services/web/module"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

// Module provides the public auth routes.
type Module struct {
	deps module.Dependencies
}

// New returns a publicauth module with explicit dependencies.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "publicauth" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool {
	return m.deps.Gateway != nil
}

// Mount wires the public auth route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.deps), m.deps))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
