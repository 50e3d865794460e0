package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/Conceptual-Machines/relist-api/internal/models"
	"github.com/a-h/templ"
)

// PricingLine formats the pricing triple shown above each platform block
func PricingLine(p *models.Pricing) string {
	if p == nil {
		return ""
	}
	return "Price: $" + formatPrice(p.Price) +
		" | List High: $" + formatPrice(p.ListHigh) +
		" | Accept Offers Down To: $" + formatPrice(p.MinAccept)
}

// formatPrice prints the shortest decimal form (45, 49.99)
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Listings renders one block per platform in display order
func Listings(result *models.GenerationResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<div class="grid">`); err != nil {
			return err
		}
		for _, platform := range models.AllPlatforms {
			listing := result.Platforms.Get(platform)
			if listing == nil {
				continue
			}
			if err := PlatformBlock(platform.Label(), listing).Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// PlatformBlock renders a single platform's listing with its copy button
func PlatformBlock(name string, listing *models.PlatformListing) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		sections := [][2]string{
			{"SEO-Optimized Title", listing.Title},
			{"Intro Paragraph", listing.Intro},
			{"Details", listing.Details},
			{"Trending Style Tags & Categories", listing.TagsLine()},
			{"Hashtags", listing.HashtagsLine()},
		}

		if err := write(w,
			`<div class="block"><h2>`, templ.EscapeString(name), `</h2>`,
			`<p class="pricing">`, templ.EscapeString(PricingLine(listing.Pricing)), `</p>`,
		); err != nil {
			return err
		}

		for _, section := range sections {
			if err := write(w,
				`<div><div class="label">`, templ.EscapeString(section[0]), `</div>`,
				`<pre>`, templ.EscapeString(section[1]), `</pre></div>`,
			); err != nil {
				return err
			}
		}

		return write(w,
			`<button type="button" onclick="navigator.clipboard.writeText(this.nextElementSibling.value)">Copy This Platform</button>`,
			`<textarea hidden readonly>`, templ.EscapeString(listing.ClipboardText()), `</textarea>`,
			`</div>`,
		)
	})
}

// ErrorMessage renders a failed generation
func ErrorMessage(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w, `<div class="error">`, templ.EscapeString(message), `</div>`)
	})
}
