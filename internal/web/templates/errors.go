package templates

import (
	"context"

	"github.com/a-h/templ"
)

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="alert alert-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(` <span>`)
			h.text(action)
			h.raw(`</span>`)
		}
		if code != "" {
			h.raw(` <small class="code">Code: `)
			h.text(code)
			h.raw(`</small>`)
		}
		h.raw(`</div>`)
	})
}

// ErrorPage is a full page around ErrorAlert, with the upload form so the
// user can try again right away.
func ErrorPage(message, action, code string) templ.Component {
	return Layout("Error", "", component(func(ctx context.Context, h *html) {
		h.child(ctx, ErrorAlert(message, action, code))
		h.child(ctx, UploadForm())
		h.raw(`<p><a href="/">Back to the report</a></p>`)
	}))
}
