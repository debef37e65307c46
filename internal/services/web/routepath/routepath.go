// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root           = "/"
	Login          = "/login"
	LoginValidate  = "/login/validate"
	Signup         = "/signup"
	SignupValidate = "/signup/validate"
	Profile        = "/myprofile"
	Logout         = "/logout"
	Health         = "/up"
	StaticPrefix   = "/static/"
)

// ProfileViewQueryKey selects the profile rendering.
const ProfileViewQueryKey = "view"

// ProfileView returns the profile route for a named view. An empty view is the
// default rendering.
func ProfileView(view string) string {
	view = strings.TrimSpace(view)
	if view == "" {
		return Profile
	}
	return Profile + "?" + ProfileViewQueryKey + "=" + url.QueryEscape(view)
}
