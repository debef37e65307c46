package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

const (
	// MainID is the element HTMX navigation swaps into.
	MainID = "main"
	// ToastRegionID is the element holding the current notice.
	ToastRegionID = "toast-region"

	htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"
)

// Layout renders the full document around the context children.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)
		h := newHTMLWriter(ctx, w)
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", page.Lang)
		h.raw("<head>")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", pageTitle(page))
		h.open("link", "rel", "stylesheet", "href", routepath.StaticPrefix+"app.css")
		h.open("script", "src", htmxScriptURL, "defer", bare)
		h.close("script")
		h.raw("</head>")
		h.open("body", "class", "app", "hx-boost", "false")
		h.open("header", "class", "app-header")
		h.element("span", T(page.Loc, "core.app_name"), "class", "app-brand")
		h.open("nav", "class", "app-languages", "aria-label", T(page.Loc, "core.language"))
		for _, option := range LanguageOptions(page) {
			h.element("a", option.Label, "href", option.URL, "hreflang", option.Tag, when(option.Active, "aria-current"), "true")
		}
		h.close("nav")
		h.close("header")
		h.component(ToastRegion(page.Toast, page.Loc, false))
		h.open("main", "id", MainID, "class", "app-main")
		h.component(children)
		h.close("main")
		h.raw("</body></html>")
		return h.err
	})
}

// ToastRegion renders the notice slot. With oob set the region replaces the
// page's region out of band on an HTMX response.
func ToastRegion(toast *AppToast, loc Localizer, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("div", "id", ToastRegionID, "class", "toast-region", "aria-live", "polite", when(oob, "hx-swap-oob"), "true")
		if toast != nil && toast.Message != "" {
			kind := toastKind(toast.Kind)
			h.open("div", "class", "toast toast-"+kind, "role", "status", "data-kind", kind)
			h.element("p", toast.Message, "class", "toast-message")
			h.element("button", T(loc, "core.toast.dismiss"), "type", "button", "class", "toast-dismiss",
				"onclick", "this.closest('.toast').remove()")
			h.close("div")
		}
		h.close("div")
		return h.err
	})
}
