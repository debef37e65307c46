package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

const (
	errorPageTitleNotFoundKey  = "core.error.page_title_not_found"
	errorPageTitleServerErrKey = "core.error.page_title_server_error"
	errorEyebrowKey            = "core.error.eyebrow"
	errorHeadingNotFoundKey    = "core.error.title_not_found"
	errorHeadingServerErrKey   = "core.error.title_server_error"
	errorMessageKey            = "core.error.message"
	errorTryAgainKey           = "core.error.try_again"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorPageTitleNotFoundKey)
	}
	return T(loc, errorPageTitleServerErrKey)
}

// ErrorState renders the error panel. Try Again reloads retryURL.
func ErrorState(statusCode int, retryURL string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if retryURL == "" {
			retryURL = "/"
		}
		h := newHTMLWriter(ctx, w)
		h.open("section", "id", "app-error-state", "class", "error-state", "data-status", http.StatusText(normalizeErrorStatus(statusCode)))
		h.element("p", T(loc, errorEyebrowKey), "class", "error-eyebrow")
		h.element("h1", errorHeading(statusCode, loc))
		h.element("p", T(loc, errorMessageKey), "class", "error-message")
		h.element("a", T(loc, errorTryAgainKey), "href", retryURL, "class", "button-primary")
		h.close("section")
		return h.err
	})
}

func errorHeading(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorHeadingNotFoundKey)
	}
	return T(loc, errorHeadingServerErrKey)
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
