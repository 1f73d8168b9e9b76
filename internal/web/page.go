package web

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/five82/marquee/internal/catalog"
)

const (
	pageTitle         = "🎬 Movie Recommendations"
	searchPlaceholder = "Search movies..."
	emptyText         = "No movies found."
	failedText        = "Couldn't load movies"
	loadingText       = "Loading movies..."
	htmxSource        = "https://unpkg.com/htmx.org@2.0.4"
)

// pageCSS lays the grid out at 1, 2, 3 and 4 columns as the viewport grows.
const pageCSS = `
body { font-family: system-ui, sans-serif; background: #111827; color: #f3f4f6; margin: 0; }
main { padding: 1.5rem; }
h1 { font-size: 1.875rem; margin: 0 0 1rem; }
.filters { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
.filters input, .filters select { padding: 0.5rem; border-radius: 0.5rem; border: 0; color: #111827; }
.filters input { width: 100%; max-width: 28rem; }
.grid { display: grid; gap: 1.5rem; grid-template-columns: repeat(1, minmax(0, 1fr)); }
@media (min-width: 640px) { .grid { grid-template-columns: repeat(2, minmax(0, 1fr)); } }
@media (min-width: 768px) { .grid { grid-template-columns: repeat(3, minmax(0, 1fr)); } }
@media (min-width: 1024px) { .grid { grid-template-columns: repeat(4, minmax(0, 1fr)); } }
.card { background: #1f2937; border-radius: 0.75rem; overflow: hidden; }
.card img { width: 100%; height: 24rem; object-fit: cover; }
.card h2 { font-size: 1.125rem; font-weight: 600; margin: 0.75rem 1rem 0.25rem; }
.card p { font-size: 0.875rem; color: #9ca3af; margin: 0 1rem 0.75rem; }
.notice { color: #f87171; font-weight: 600; }
.empty { grid-column: 1 / -1; text-align: center; color: #9ca3af; }
`

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	filter, _ := filterFromRequest(r)
	view := h.store.Snapshot().View(filter)
	h.render(w, pageNode(view))
}

func (h *Handler) grid(w http.ResponseWriter, r *http.Request) {
	filter, _ := filterFromRequest(r)
	view := h.store.Snapshot().View(filter)
	h.render(w, gridContent(view))
}

func (h *Handler) render(w http.ResponseWriter, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := node.Render(w); err != nil {
		h.logger.Warn("render failed", zap.Error(err))
	}
}

func pageNode(view catalog.ViewState) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text("Movie Recommendations")),
				html.StyleEl(g.Raw(pageCSS)),
				html.Script(html.Src(htmxSource)),
			),
			html.Body(
				html.Main(
					html.H1(g.Text(pageTitle)),
					filtersForm(view.Filter),
					html.Div(
						html.ID("grid"),
						html.Class("grid"),
						gridContent(view),
					),
				),
			),
		),
	)
}

// filtersForm swaps only the grid on every keystroke or selection change.
func filtersForm(filter catalog.Filter) g.Node {
	return html.Form(
		html.ID("filters"),
		html.Class("filters"),
		html.Action("/"),
		html.Method("get"),
		hx.Get("/grid"),
		hx.Trigger("keyup changed delay:150ms from:input, change"),
		hx.Target("#grid"),
		hx.Swap("innerHTML"),
		html.Input(
			html.Type("search"),
			html.Name("q"),
			html.Placeholder(searchPlaceholder),
			html.Value(filter.Search),
			g.Attr("autocomplete", "off"),
		),
		html.Select(
			html.Name("genre"),
			g.Map(catalog.Genres(), func(genre catalog.Genre) g.Node {
				return html.Option(
					html.Value(genre.String()),
					g.If(genre == filter.Genre, html.Selected()),
					g.Text(genre.String()),
				)
			}),
		),
	)
}

// gridContent renders the cards, or the single placeholder element when no
// record is visible.
func gridContent(view catalog.ViewState) g.Node {
	if view.Status == catalog.StatusLoading {
		return html.P(
			html.Class("empty loading"),
			hx.Get("/grid"),
			hx.Trigger("load delay:500ms"),
			hx.Target("#grid"),
			hx.Include("#filters"),
			g.Text(loadingText),
		)
	}

	var nodes g.Group
	if view.Failed() {
		nodes = append(nodes, html.P(html.Class("empty notice"), g.Text(failedText)))
	}
	visible := view.Visible()
	if len(visible) == 0 {
		return append(nodes, html.P(html.Class("empty"), g.Text(emptyText)))
	}
	return append(nodes, g.Map(visible, movieCard))
}

func movieCard(movie catalog.Movie) g.Node {
	return html.Div(
		html.Class("card"),
		g.Attr("data-id", strconv.Itoa(movie.ID)),
		html.Img(
			html.Src(movie.PosterURL),
			html.Alt(movie.Title),
			g.Attr("loading", "lazy"),
		),
		html.H2(g.Text(movie.Title)),
		html.P(html.Class("year"), g.Text(movie.Year)),
		g.If(len(movie.Genres) > 0,
			html.P(html.Class("genres"), g.Text(movie.GenreLabel())),
		),
	)
}
