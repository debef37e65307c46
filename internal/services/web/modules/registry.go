package modules

import (
	module "github.com/louisbranch/earlypay/internal/services/web/module"
	"github.com/louisbranch/earlypay/internal/services/web/modules/profile"
	"github.com/louisbranch/earlypay/internal/services/web/modules/publicauth"
)

// DefaultModules returns the web modules in mount order. The root mount owns
// every path no other module claims.
func DefaultModules(deps Dependencies) []Module {
	return []Module{
		profile.New(deps),
		publicauth.New(deps),
	}
}

// Healthy reports whether every module that can report health is healthy.
func Healthy(modules []Module) bool {
	for _, m := range modules {
		reporter, ok := m.(module.HealthReporter)
		if ok && !reporter.Healthy() {
			return false
		}
	}
	return true
}
