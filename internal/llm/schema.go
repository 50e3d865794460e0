package llm

// ListingSchemaName is the schema name sent with strict structured output requests
const ListingSchemaName = "platform_listings"

// PlatformKeys are the required keys under "platforms"
var PlatformKeys = []string{"depop", "ebay", "poshmark", "mercari"}

// GetListingOutputSchema returns the JSON schema for the four-platform listing output.
// With strict set, every object forbids additional properties, which OpenAI
// requires for strict structured output. Validation of received documents uses
// the non-strict variant so that extra keys from the model are tolerated.
func GetListingOutputSchema(strict bool) map[string]any {
	platformProps := make(map[string]any, len(PlatformKeys))
	for _, key := range PlatformKeys {
		platformProps[key] = platformListingSchema(strict)
	}

	return object(map[string]any{
		"platforms": object(platformProps, PlatformKeys, strict),
	}, []string{"platforms"}, strict)
}

func platformListingSchema(strict bool) map[string]any {
	stringArray := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}

	pricing := object(map[string]any{
		"price":     map[string]any{"type": "number"},
		"listHigh":  map[string]any{"type": "number"},
		"minAccept": map[string]any{"type": "number"},
	}, []string{"price", "listHigh", "minAccept"}, strict)

	return object(map[string]any{
		"title":    map[string]any{"type": "string"},
		"intro":    map[string]any{"type": "string"},
		"details":  map[string]any{"type": "string"},
		"tags":     stringArray,
		"hashtags": stringArray,
		"pricing":  pricing,
	}, []string{"title", "intro", "details", "tags", "hashtags", "pricing"}, strict)
}

func object(properties map[string]any, required []string, strict bool) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
	if strict {
		schema["additionalProperties"] = false
	}
	return schema
}
