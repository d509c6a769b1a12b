package llm

import "encoding/json"

// Field names the model is asked to fill in.
const (
	FieldDishTitles   = "dish titles"
	FieldIngredients  = "ingredients"
	FieldImagePrompts = "image prompts"
	FieldPrices       = "prices"
)

// Generation is the parsed reply for one menu category. The four lists are
// expected to line up by index, but nothing here enforces it.
type Generation struct {
	Category     string
	DishTitles   []string
	Ingredients  [][]string
	ImagePrompts []string

	// Prices are kept as the raw JSON values (string or number).
	Prices []json.RawMessage
}
