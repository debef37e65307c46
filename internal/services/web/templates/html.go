package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes `<tag attr="value"...>`. attrs are name/value pairs; a pair
// with an empty name is skipped and a value of "\x00" writes a bare
// attribute.
func (h *htmlWriter) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if name == "" {
			continue
		}
		if value == bare {
			h.raw(" " + name)
			continue
		}
		h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

// element writes a whole element with escaped text content.
func (h *htmlWriter) element(tag, content string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(content)
	h.close(tag)
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

const bare = "\x00"

// when returns name if on is true and "" otherwise, for optional attributes.
func when(on bool, name string) string {
	if !on {
		return ""
	}
	return name
}
