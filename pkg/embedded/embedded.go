package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/prompts/system_prompt.txt
var SystemPromptTxt []byte

//go:embed data/prompts/listing_preamble.txt
var ListingPreambleTxt []byte

//go:embed data/prompts/listing_requirements.txt
var ListingRequirementsTxt []byte

//go:embed data/prompts/output_shape.txt
var OutputShapeTxt []byte
