// Package translate renders user-facing messages for the locale of the host.
package translate

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DEFAULT_LOCALE = "en-US"

var (
	mutex   sync.RWMutex
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("lvm: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the message printer best matching the given BCP 47
// tags. With no usable tags the printer falls back to en-US.
func SetLanguage(tags ...string) {
	if len(tags) == 0 {
		tags = []string{DEFAULT_LOCALE}
	}

	tag := message.MatchLanguage(tags...)
	if tag == language.Und {
		tag = language.MustParse(DEFAULT_LOCALE)
	}

	mutex.Lock()
	printer = message.NewPrinter(tag)
	mutex.Unlock()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	mutex.RLock()
	defer mutex.RUnlock()

	return printer.Sprintf(key, args...)
}

// Fprintf writes a translated en-US Printf() format to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return fmt.Fprint(w, From(key, args...))
}
