package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	flashnotice "github.com/louisbranch/earlypay/internal/services/web/platform/flash"
	"github.com/louisbranch/earlypay/internal/services/web/platform/requestmeta"
	webtemplates "github.com/louisbranch/earlypay/internal/services/web/templates"
)

func textComponent(body string) func(webtemplates.Localizer) templ.Component {
	return func(webtemplates.Localizer) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, body)
			return err
		})
	}
}

func TestWritePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/myprofile", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, requestmeta.SchemePolicy{}, Page{
		TitleKey:   "profile.title",
		StatusCode: http.StatusCreated,
		Build:      textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing fragment marker: %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<!doctype html") || strings.Contains(body, "toast-region") {
		t.Fatalf("expected bare htmx fragment, got %q", body)
	}
}

func TestWritePageRendersFullPageWithLayout(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/myprofile", nil)
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, requestmeta.SchemePolicy{}, Page{
		TitleKey: "profile.title",
		Build:    textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("cache-control = %q, want no-store", got)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<!DOCTYPE html>", "<title>User Profile | Early Pay</title>", `id="fragment-root"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestWritePageConsumesFlashNotice(t *testing.T) {
	t.Parallel()

	seed := httptest.NewRecorder()
	flashnotice.Write(seed, httptest.NewRequest(http.MethodPost, "/login", nil), flashnotice.Notice{
		Kind: flashnotice.KindSuccess,
		Key:  "Success! %s",
		Args: []string{"Welcome back"},
	}, requestmeta.SchemePolicy{})

	req := httptest.NewRequest(http.MethodGet, "/myprofile", nil)
	for _, cookie := range seed.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	if err := WritePage(rr, req, requestmeta.SchemePolicy{}, Page{Build: textComponent("<p>ok</p>")}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Success! Welcome back") || !strings.Contains(body, "toast-success") {
		t.Fatalf("body missing flash toast: %q", body)
	}
	cleared := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flashnotice.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected flash cookie to be cleared")
	}
}

func TestWritePageHTMXNoticeSwapsOutOfBand(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	notice := flashnotice.Notice{Kind: flashnotice.KindError, Key: "%s", Args: []string{"Invalid credentials"}}
	if err := WritePage(rr, req, requestmeta.SchemePolicy{}, Page{Build: textComponent("<form></form>"), Notice: &notice}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<form></form>", `hx-swap-oob="true"`, "Invalid credentials"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestWritePageNilWriter(t *testing.T) {
	t.Parallel()

	if err := WritePage(nil, nil, requestmeta.SchemePolicy{}, Page{}); err != nil {
		t.Fatalf("WritePage(nil) error = %v", err)
	}
}
