// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	flashnotice "github.com/louisbranch/earlypay/internal/services/web/platform/flash"
	"github.com/louisbranch/earlypay/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/earlypay/internal/services/web/platform/i18n"
	"github.com/louisbranch/earlypay/internal/services/web/platform/requestmeta"
	webtemplates "github.com/louisbranch/earlypay/internal/services/web/templates"
)

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	// TitleKey is the catalog key of the page title.
	TitleKey   string
	StatusCode int
	// Build renders the page body with the request localizer.
	Build func(loc webtemplates.Localizer) templ.Component
	// Notice, when set, is shown instead of the pending flash cookie.
	Notice *flashnotice.Notice
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage writes a page. HTMX requests receive the body fragment with any
// notice swapped out of band; other requests receive the full layout.
func WritePage(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	loc, lang := webi18n.ResolveLocalizer(w, r)
	var fragment templ.Component = emptyComponent{}
	if page.Build != nil {
		if built := page.Build(loc); built != nil {
			fragment = built
		}
	}
	toast := resolveToast(w, r, policy, loc, page.Notice)
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
		if toast != nil {
			if err := webtemplates.ToastRegion(toast, loc, true).Render(ctx, &buf); err != nil {
				return err
			}
		}
	} else {
		pageContext := webtemplates.PageContext{
			Title: webtemplates.T(loc, page.TitleKey),
			Lang:  lang,
			Loc:   loc,
			Toast: toast,
		}
		if r != nil && r.URL != nil {
			pageContext.CurrentPath = r.URL.Path
			pageContext.CurrentQuery = r.URL.RawQuery
		}
		if err := webtemplates.Layout(pageContext).Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// Toast localizes a notice for display.
func Toast(loc webtemplates.Localizer, notice flashnotice.Notice) *webtemplates.AppToast {
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, arg)
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key, args...))
	if message == "" {
		return nil
	}
	return &webtemplates.AppToast{Kind: string(notice.Kind), Message: message}
}

func resolveToast(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, loc webtemplates.Localizer, override *flashnotice.Notice) *webtemplates.AppToast {
	if override != nil {
		return Toast(loc, *override)
	}
	notice, ok := flashnotice.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	return Toast(loc, notice)
}
