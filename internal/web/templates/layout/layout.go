// Package layout holds the page shell shared by every HTML view.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PageData holds data common to all pages
type PageData struct {
	Title string
}

// Base wraps body in the document shell
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(data.Title) + ` | Player Registry</title>` +
			`<style>` + styles + `</style></head><body>` +
			`<header><nav><a href="/ui/players">Players</a> <a href="/players">JSON</a></nav></header><main>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

const styles = `body{font-family:sans-serif;margin:2rem}` +
	`table{border-collapse:collapse}td,th{padding:.25rem .75rem;border-bottom:1px solid #ddd}` +
	`.error{color:#b00}.banned{color:#999;text-decoration:line-through}` +
	`form#filters{display:flex;flex-wrap:wrap;gap:.5rem;margin-bottom:1rem}`
