package templates

import (
	"strings"

	webi18n "github.com/louisbranch/earlypay/internal/services/web/platform/i18n"
	"golang.org/x/text/language"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title        string
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Toast        *AppToast
}

// AppToast is a one-time notice rendered at the top of the page.
type AppToast struct {
	Kind    string
	Message string
}

// LanguageOption represents a supported language option in the UI.
type LanguageOption = webi18n.LanguageOption

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	return webi18n.BuildLanguageOptions(page.Lang, page.CurrentPath, page.CurrentQuery, func(tag language.Tag) string {
		return T(page.Loc, webi18n.LanguageKeyLabel(tag))
	})
}

func pageTitle(page PageContext) string {
	appName := T(page.Loc, "core.app_name")
	title := strings.TrimSpace(page.Title)
	if title == "" {
		return appName
	}
	return title + " | " + appName
}

func toastKind(kind string) string {
	switch kind {
	case "success", "warning", "error":
		return kind
	default:
		return "info"
	}
}
