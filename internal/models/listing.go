package models

import (
	"fmt"
	"strings"
)

// Platform identifies one of the supported resale marketplaces
type Platform string

const (
	PlatformDepop    Platform = "depop"
	PlatformEbay     Platform = "ebay"
	PlatformPoshmark Platform = "poshmark"
	PlatformMercari  Platform = "mercari"
)

// AllPlatforms is the closed set of platforms, in render order
var AllPlatforms = []Platform{PlatformDepop, PlatformEbay, PlatformPoshmark, PlatformMercari}

var platformLabels = map[Platform]string{
	PlatformDepop:    "Depop",
	PlatformEbay:     "eBay",
	PlatformPoshmark: "Poshmark",
	PlatformMercari:  "Mercari",
}

// Label returns the marketplace display name
func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return string(p)
}

// GenerationRequest is the inbound request body for listing generation
type GenerationRequest struct {
	ItemNotes string   `json:"itemNotes"`
	ImageURLs []string `json:"imageUrls"`
}

// Pricing holds the suggested USD prices for one platform
type Pricing struct {
	Price     float64 `json:"price"`
	ListHigh  float64 `json:"listHigh"`
	MinAccept float64 `json:"minAccept"`
}

// PlatformListing is the generated copy for a single marketplace
type PlatformListing struct {
	Title    string   `json:"title"`
	Intro    string   `json:"intro"`
	Details  string   `json:"details"`
	Tags     []string `json:"tags"`
	Hashtags []string `json:"hashtags"`
	Pricing  *Pricing `json:"pricing"`
}

// Platforms holds one listing per supported marketplace
type Platforms struct {
	Depop    *PlatformListing `json:"depop"`
	Ebay     *PlatformListing `json:"ebay"`
	Poshmark *PlatformListing `json:"poshmark"`
	Mercari  *PlatformListing `json:"mercari"`
}

// Get returns the listing for a platform, or nil when absent
func (p *Platforms) Get(platform Platform) *PlatformListing {
	switch platform {
	case PlatformDepop:
		return p.Depop
	case PlatformEbay:
		return p.Ebay
	case PlatformPoshmark:
		return p.Poshmark
	case PlatformMercari:
		return p.Mercari
	default:
		return nil
	}
}

// GenerationResult is the successful response: listings for all four platforms
type GenerationResult struct {
	Platforms Platforms `json:"platforms"`
}

// ErrorResult is returned instead of a GenerationResult on any failure
type ErrorResult struct {
	Error string `json:"error"`
}

// Validate checks that every platform is present with all required fields.
// Partial results are not a valid state.
func (r *GenerationResult) Validate() error {
	var missing []string
	for _, platform := range AllPlatforms {
		listing := r.Platforms.Get(platform)
		if listing == nil {
			missing = append(missing, string(platform))
			continue
		}
		if err := listing.Validate(); err != nil {
			return fmt.Errorf("platform %s: %w", platform, err)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing platforms: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks the fields that cannot be defaulted silently
func (l *PlatformListing) Validate() error {
	switch {
	case l.Tags == nil:
		return fmt.Errorf("missing tags")
	case l.Hashtags == nil:
		return fmt.Errorf("missing hashtags")
	case l.Pricing == nil:
		return fmt.Errorf("missing pricing")
	}
	return nil
}

// ClipboardText renders the listing as a single paste-ready block
func (l *PlatformListing) ClipboardText() string {
	return strings.Join([]string{
		l.Title,
		"",
		l.Intro,
		"",
		l.Details,
		"",
		"Trending Style Tags & Categories:",
		l.TagsLine(),
		"",
		"Hashtags:",
		l.HashtagsLine(),
	}, "\n")
}

// TagsLine joins the tags for display
func (l *PlatformListing) TagsLine() string {
	return strings.Join(l.Tags, ", ")
}

// HashtagsLine joins the hashtags for display
func (l *PlatformListing) HashtagsLine() string {
	return strings.Join(l.Hashtags, " ")
}
