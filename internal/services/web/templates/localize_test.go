package templates

import (
	"testing"

	"github.com/louisbranch/earlypay/internal/authflow/form"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestTWithoutLocalizerUsesBaseCatalog(t *testing.T) {
	t.Parallel()

	if got := T(nil, "core.error.try_again"); got != "Try Again" {
		t.Fatalf("T(nil, core.error.try_again) = %q, want %q", got, "Try Again")
	}
}

func TestTWithoutLocalizerKeepsUncataloguedText(t *testing.T) {
	t.Parallel()

	if got := T(nil, form.MsgEmailInvalid); got != form.MsgEmailInvalid {
		t.Fatalf("T(nil, validator message) = %q, want %q", got, form.MsgEmailInvalid)
	}
	if got := T(nil, "Welcome back, %s", "Jane"); got != "Welcome back, Jane" {
		t.Fatalf("T(nil, format) = %q, want formatted text", got)
	}
	if got := T(nil, 42); got != "" {
		t.Fatalf("T(nil, 42) = %q, want empty", got)
	}
}

func TestTUsesRequestLocalizer(t *testing.T) {
	t.Parallel()

	loc := message.NewPrinter(language.CanadianFrench)
	if got := T(loc, "core.error.try_again"); got != "Réessayer" {
		t.Fatalf("T(fr-CA, core.error.try_again) = %q, want %q", got, "Réessayer")
	}
}
