package llm

import (
	"fmt"
	"strings"
)

// PromptOptions shape the dish descriptions in the schema.
type PromptOptions struct {
	Theme              string
	DishesPerCategory  int
	IngredientsPerDish int
}

type schemaField struct {
	Name        string
	Description string
}

func (o PromptOptions) schema() []schemaField {
	dishes := fmt.Sprintf("List of %d dishes", o.DishesPerCategory)
	if o.Theme != "" {
		dishes += " that are made out of " + o.Theme
	}

	return []schemaField{
		{FieldDishTitles, dishes},
		{FieldIngredients, fmt.Sprintf("List of %d main ingredients for each dish, one list per dish", o.IngredientsPerDish)},
		{FieldImagePrompts, "List of prompts for image generating model for dishes, one per dish"},
		{FieldPrices, "List of dish prices in US dollars, one per dish"},
	}
}

// FormatInstructions describes the fenced JSON object the model must return.
func (o PromptOptions) FormatInstructions() string {
	var b strings.Builder

	b.WriteString("The output should be a markdown code snippet formatted in the following schema, ")
	b.WriteString("including the leading and trailing \"```json\" and \"```\":\n\n")
	b.WriteString("```json\n{\n")
	for _, f := range o.schema() {
		fmt.Fprintf(&b, "\t%q: list  // %s\n", f.Name, f.Description)
	}
	b.WriteString("}\n```")

	return b.String()
}

// BuildMenuPrompt asks for the dishes of one menu category.
func BuildMenuPrompt(category string, opts PromptOptions) string {
	return fmt.Sprintf(
		"Give me information about the following dishes that we could put on a %s menu\n%s",
		category,
		opts.FormatInstructions(),
	)
}
