// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/earlypay/internal/services/web/platform/errors"
	"github.com/louisbranch/earlypay/internal/services/web/platform/pagerender"
	"github.com/louisbranch/earlypay/internal/services/web/platform/requestmeta"
	webtemplates "github.com/louisbranch/earlypay/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes the error page for full-page and HTMX requests. Try
// Again points back at the failed page for GET requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	retryURL := "/"
	if r != nil && r.URL != nil && r.Method == http.MethodGet && statusCode != http.StatusNotFound {
		retryURL = r.URL.RequestURI()
	}
	titleKey := "core.error.page_title_server_error"
	if statusCode == http.StatusNotFound {
		titleKey = "core.error.page_title_not_found"
	}
	err := pagerender.WritePage(w, r, policy, pagerender.Page{
		TitleKey:   titleKey,
		StatusCode: statusCode,
		Build: func(loc webtemplates.Localizer) templ.Component {
			return webtemplates.ErrorState(statusCode, retryURL, loc)
		},
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, policy)
		return
	}
	http.Error(w, PublicMessage(nil, err), statusCode)
}

// PanicHandler renders the server error page after a recovered panic.
func PanicHandler(policy requestmeta.SchemePolicy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteAppError(w, r, http.StatusInternalServerError, policy)
	})
}

// NotFoundHandler renders the not found page.
func NotFoundHandler(policy requestmeta.SchemePolicy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteAppError(w, r, http.StatusNotFound, policy)
	})
}
