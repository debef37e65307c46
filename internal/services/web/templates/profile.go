package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/earlypay/internal/authflow/profile"
	"github.com/louisbranch/earlypay/internal/services/web/routepath"
)

// ProfileCardID is the HTMX swap target of the view toggle.
const ProfileCardID = "profile-card"

// ProfileView is the profile page state. Output is nil when the record could
// not be loaded.
type ProfileView struct {
	View   profile.View
	Output *profile.Output
}

// ProfilePage renders the profile header, view toggle and card.
func ProfilePage(v ProfileView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("section", "class", "profile-page")
		h.open("div", "class", "profile-header")
		h.element("h1", T(loc, "profile.heading"))
		h.profileToggle(v.View, loc)
		h.open("form", "method", "post", "action", routepath.Logout, "class", "profile-logout")
		h.element("button", T(loc, "profile.logout"), "type", "submit", "class", "text-button")
		h.close("form")
		h.close("div")
		h.component(ProfileCard(v, loc))
		h.close("section")
		return h.err
	})
}

// ProfileCard renders the record in the selected view.
func ProfileCard(v ProfileView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("div", "id", ProfileCardID, "class", "profile-card", "data-view", v.View.String())
		switch {
		case v.Output == nil:
		case v.Output.Human != nil:
			h.humanProfile(*v.Output.Human, loc)
		default:
			h.element("pre", v.Output.Raw, "class", "profile-json")
		}
		h.close("div")
		return h.err
	})
}

func (h *htmlWriter) profileToggle(view profile.View, loc Localizer) {
	next := view.Toggle()
	href := routepath.ProfileView(next.String())
	h.open("a",
		"href", href,
		"class", "view-toggle",
		"role", "switch",
		"aria-checked", boolString(view == profile.ViewJSON),
		"hx-get", href,
		"hx-target", "#"+MainID,
		"hx-push-url", "true",
	)
	h.element("span", "", "class", "view-toggle-track", "aria-hidden", "true")
	h.element("span", T(loc, view.Label()), "class", "view-toggle-label")
	h.close("a")
}

func (h *htmlWriter) humanProfile(human profile.Human, loc Localizer) {
	h.open("div", "class", "profile-section")
	h.element("h2", human.FullName)
	h.labelled(T(loc, "profile.email"), human.Email)
	if human.Phone != "" {
		h.labelled(T(loc, "profile.phone"), human.Phone)
	}
	h.close("div")
	h.raw(`<hr class="form-divider">`)

	h.open("div", "class", "profile-section")
	h.element("h3", T(loc, "profile.company_heading"))
	for _, field := range human.Company {
		h.labelled(T(loc, field.Label), field.Value)
	}
	h.close("div")
	h.raw(`<hr class="form-divider">`)

	h.open("div", "class", "profile-section")
	h.element("h3", T(loc, "profile.members_heading"))
	h.open("ul", "class", "profile-members")
	for _, member := range human.Members {
		h.open("li", "data-member-id", member.ID)
		h.element("span", member.FullName+":", "class", "member-name")
		h.element("span", member.Email, "class", "member-email")
		h.close("li")
	}
	h.close("ul")
	h.close("div")
}

func (h *htmlWriter) labelled(label, value string) {
	h.open("p", "class", "profile-field")
	h.element("span", label+":", "class", "profile-field-label")
	h.raw(" ")
	h.text(value)
	h.close("p")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
