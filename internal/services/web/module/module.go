// Package module defines the feature contract used by web composition.
package module

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/louisbranch/earlypay/internal/authflow/submit"
	"github.com/louisbranch/earlypay/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/earlypay/internal/services/web/storage"
	"go.uber.org/zap"
)

// Gateway is the account backend used by feature modules.
type Gateway interface {
	submit.Gateway
	User(ctx context.Context, token string) (json.RawMessage, error)
}

// Dependencies carries the shared collaborators handed to every module.
type Dependencies struct {
	Gateway  Gateway
	Sessions storage.SessionStore
	// Guard rejects overlapping submissions for one browser session and form.
	Guard  *submit.Guard
	Policy requestmeta.SchemePolicy
	Logger *zap.Logger
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
