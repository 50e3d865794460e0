package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const pageStyles = `
body { font-family: system-ui, -apple-system, sans-serif; margin: 0; color: #111; }
main { max-width: 64rem; margin: 0 auto; padding: 1.5rem; }
h1 { font-size: 1.5rem; margin-bottom: .5rem; }
.lead { font-size: .875rem; color: #4b5563; margin-bottom: 1.5rem; }
form { display: grid; gap: 1rem; margin-bottom: 2rem; }
label { display: grid; gap: .5rem; font-size: .875rem; font-weight: 500; }
textarea { border: 1px solid #d1d5db; border-radius: .25rem; padding: .75rem; font: inherit; }
textarea[name=itemNotes] { min-height: 140px; }
textarea[name=imageUrls] { min-height: 80px; }
button { padding: .5rem 1rem; border: 0; border-radius: .25rem; background: #000; color: #fff; font-size: .875rem; width: fit-content; cursor: pointer; }
button[disabled] { opacity: .6; cursor: progress; }
form .busy, form.htmx-request .idle { display: none; }
form.htmx-request .busy { display: inline; }
.error { color: #dc2626; margin-bottom: 1.5rem; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(22rem, 1fr)); gap: 1.5rem; }
.block { padding: 1.25rem; border: 1px solid #e5e7eb; border-radius: 1rem; box-shadow: 0 1px 2px rgba(0,0,0,.05); }
.block h2 { font-size: 1.25rem; margin: 0 0 .75rem; }
.pricing { font-size: .875rem; font-style: italic; margin-bottom: .75rem; }
.label { font-size: .75rem; text-transform: uppercase; letter-spacing: .05em; color: #6b7280; }
pre { white-space: pre-wrap; font-size: .875rem; background: #f9fafb; padding: .75rem; border-radius: .25rem; margin: .25rem 0 1rem; font-family: inherit; }
footer { font-size: .75rem; color: #6b7280; margin-top: 2.5rem; }
`

const homeBody = `
<main>
  <h1>Reselling Listing Generator</h1>
  <p class="lead">Paste quick notes + optional image URLs (one per line). Get platform-ready listings.</p>

  <form hx-post="/htmx/generate" hx-target="#results" hx-swap="innerHTML" hx-disabled-elt="find button">
    <label>
      <span>Item notes</span>
      <textarea name="itemNotes" placeholder="Brand, size, era, materials, condition (include flaws), measurements, anything special..."></textarea>
    </label>

    <label>
      <span>Image URLs (optional, one per line)</span>
      <textarea name="imageUrls" placeholder="https://...jpg&#10;https://...jpg"></textarea>
    </label>

    <button type="submit"><span class="idle">Generate Listings</span><span class="busy">Generating...</span></button>
  </form>

  <div id="results"></div>

  <footer>Titles target ~80 chars, no emojis. Copy blocks are double-spaced between sections.</footer>
</main>
`

// Home renders the listing generator page
func Home() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>Reselling Listing Generator</title>`,
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`,
			`<style>`, pageStyles, `</style></head><body>`,
			homeBody,
			`</body></html>`,
		)
	})
}

// write emits each part in order and stops at the first error
func write(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}
