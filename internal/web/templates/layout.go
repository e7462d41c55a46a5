package templates

import (
	"context"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/a-h/templ"
)

// AppTitle is the heading shown on every page.
const AppTitle = "Aircraft Inventory Report"

type navItem struct {
	view core.View
	href string
}

var navItems = []navItem{
	{core.ViewFull, "/"},
	{core.ViewImperfect, "/imperfect"},
	{core.ViewAircraft, "/aircraft"},
}

// Layout wraps body in the page shell with the view navigation. active
// highlights the current view; pass "" for pages outside the three views.
func Layout(title string, active core.View, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title + " | " + AppTitle)
		h.raw(`</title><link rel="stylesheet" href="/static/app.css"></head><body>`)

		h.raw(`<header class="site-header"><h1>`)
		h.text(AppTitle)
		h.raw(`</h1><nav class="views">`)
		for _, item := range navItems {
			h.raw(`<a`)
			h.attr("href", item.href)
			if item.view == active {
				h.attr("class", "active")
				h.attr("aria-current", "page")
			}
			h.raw(`>`)
			h.text(item.view.Title())
			h.raw(`</a>`)
		}
		h.raw(`</nav></header><main>`)
		h.child(ctx, body)
		h.raw(`</main></body></html>`)
	})
}
