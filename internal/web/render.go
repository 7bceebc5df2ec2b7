// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrUnknownPage is returned by Render for a page that was never parsed.
var ErrUnknownPage = errors.New("unknown page")

var pageFiles = map[Page]string{
	PageIndex:     "templates/index.html",
	PageSpeed:     "templates/speed.html",
	PageRecommend: "templates/recommend.html",
	PageBroadband: "templates/broadband.html",
	PageAbout:     "templates/about.html",
}

// Renderer executes the embedded page templates. It is safe for concurrent use.
type Renderer struct {
	pages map[Page]*template.Template
}

// New parses the layout and every page template.
func New() (*Renderer, error) {
	base, err := template.New("layout").
		Funcs(template.FuncMap{"cell": cell}).
		ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[Page]*template.Template, len(pageFiles))
	for page, file := range pageFiles {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", page, err)
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[page] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render writes page with data to w.
func (r *Renderer) Render(w io.Writer, page Page, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// cell formats a catalog value for a table cell. Missing values render empty.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return cell(float64(x))
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
