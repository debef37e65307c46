package templates

import (
	"fmt"

	"github.com/louisbranch/earlypay/internal/platform/i18n/catalog"
	"golang.org/x/text/message"
)

// Localizer translates page copy keys, validator messages and notice
// formats. *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T translates key with loc. Without a localizer the base-locale catalog
// entry is used, and a key missing from the catalog is formatted as-is so
// validator sentences and backend messages still read correctly.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	format, ok := key.(string)
	if !ok {
		return ""
	}
	if text, found := catalog.Default().Message(catalog.BaseLocale, format); found {
		format = text
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
