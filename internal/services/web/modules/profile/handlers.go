package profile

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/earlypay/internal/apiclient"
	authprofile "github.com/louisbranch/earlypay/internal/authflow/profile"
	"github.com/louisbranch/earlypay/internal/authflow/submit"
	module "github.com/louisbranch/earlypay/internal/services/web/module"
	flashnotice "github.com/louisbranch/earlypay/internal/services/web/platform/flash"
	"github.com/louisbranch/earlypay/internal/services/web/platform/httpx"
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

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps, logger: s.logger}
}

// handleProfile renders the user record. HTMX requests are view toggles and
// reuse the record fetched by the last full page load.
func (h handlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := authprofile.ParseView(r.URL.Query().Get(routepath.ProfileViewQueryKey))
	sessionID, _ := sessioncookie.Read(r)

	token, err := h.service.token(ctx, sessionID)
	if errors.Is(err, errNotLoggedIn) {
		flashnotice.Write(w, r, flashnotice.FromSubmit(submit.NoticeNotLoggedIn()), h.deps.Policy)
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps.Policy)
		return
	}

	page := webtemplates.ProfileView{View: view}
	var notice *flashnotice.Notice
	output, err := h.render(r, sessionID, token, view)
	if err != nil {
		h.logger.Warn("fetch user details",
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Bool("unauthorized", apiclient.IsUnauthorized(err)),
			zap.Error(err),
		)
		fetchFailed := flashnotice.FromSubmit(submit.Notice{Level: submit.LevelError, Format: submit.FormatProfileFetchFail})
		notice = &fetchFailed
	} else {
		page.Output = &output
	}

	err = pagerender.WritePage(w, r, h.deps.Policy, pagerender.Page{
		TitleKey: "profile.title",
		Build: func(loc webtemplates.Localizer) templ.Component {
			return webtemplates.ProfilePage(page, loc)
		},
		Notice: notice,
	})
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps.Policy)
	}
}

func (h handlers) render(r *http.Request, sessionID, token string, view authprofile.View) (authprofile.Output, error) {
	rec, err := h.service.load(r.Context(), sessionID, token, httpx.IsHTMXRequest(r))
	if err != nil {
		return authprofile.Output{}, err
	}
	return authprofile.Render(rec, view)
}
