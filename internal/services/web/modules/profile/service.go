package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	authprofile "github.com/louisbranch/earlypay/internal/authflow/profile"
	"github.com/louisbranch/earlypay/internal/authflow/submit"
	module "github.com/louisbranch/earlypay/internal/services/web/module"
	"github.com/louisbranch/earlypay/internal/services/web/storage"
	"go.uber.org/zap"
)

// snapshotKey holds the last fetched user record so view toggles render
// without another backend call. The record is only reused for the token it
// was fetched with.
const snapshotKey = "profile_user_record"

var (
	errNotLoggedIn        = errors.New("no bearer token in session")
	errGatewayUnavailable = errors.New("account backend is not configured")
)

// UserGateway fetches the authenticated user's record.
type UserGateway interface {
	User(ctx context.Context, token string) (json.RawMessage, error)
}

type service struct {
	gateway  UserGateway
	sessions storage.SessionStore
	logger   *zap.Logger
}

func newService(deps module.Dependencies) service {
	var gateway UserGateway = unavailableGateway{}
	if deps.Gateway != nil {
		gateway = deps.Gateway
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return service{gateway: gateway, sessions: deps.Sessions, logger: logger.Named("profile")}
}

// token returns the session's bearer token or errNotLoggedIn.
func (s service) token(ctx context.Context, sessionID string) (string, error) {
	if s.sessions == nil || sessionID == "" {
		return "", errNotLoggedIn
	}
	token, err := storage.Scope(s.sessions, sessionID).Get(ctx, submit.TokenKey)
	if err != nil {
		return "", fmt.Errorf("read bearer token: %w", err)
	}
	if token == "" {
		return "", errNotLoggedIn
	}
	return token, nil
}

// snapshot is the stored user record together with the token it was
// fetched with.
type snapshot struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// load returns the user record. With reuse set, a stored snapshot fetched
// with the same token is used; otherwise the backend is queried and the
// snapshot replaced.
func (s service) load(ctx context.Context, sessionID, token string, reuse bool) (authprofile.Record, error) {
	scoped := storage.Scope(s.sessions, sessionID)
	if reuse {
		if rec, ok := s.cached(ctx, scoped, token); ok {
			return rec, nil
		}
	}
	raw, err := s.gateway.User(ctx, token)
	if err != nil {
		return authprofile.Record{}, err
	}
	rec, err := authprofile.Decode(raw)
	if err != nil {
		return authprofile.Record{}, err
	}
	encoded, err := json.Marshal(snapshot{Token: token, User: raw})
	if err == nil {
		err = scoped.Set(ctx, snapshotKey, string(encoded))
	}
	if err != nil {
		s.logger.Warn("store user snapshot", zap.Error(err))
	}
	return rec, nil
}

func (s service) cached(ctx context.Context, scoped storage.Scoped, token string) (authprofile.Record, bool) {
	raw, err := scoped.Get(ctx, snapshotKey)
	if err != nil || raw == "" {
		return authprofile.Record{}, false
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil || snap.Token != token {
		return authprofile.Record{}, false
	}
	rec, err := authprofile.Decode(snap.User)
	if err != nil {
		return authprofile.Record{}, false
	}
	return rec, true
}

type unavailableGateway struct{}

func (unavailableGateway) User(context.Context, string) (json.RawMessage, error) {
	return nil, errGatewayUnavailable
}
