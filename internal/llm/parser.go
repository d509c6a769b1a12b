package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseGeneration decodes a model reply into a Generation. Any deviation from
// the schema is a *GenerationParseError.
func ParseGeneration(category, reply string) (*Generation, error) {
	fail := func(err error) error {
		return &GenerationParseError{Category: category, Raw: reply, Err: err}
	}

	body := extractJSON(reply)
	if body == "" || !gjson.Valid(body) {
		return nil, fail(errors.New("reply contains no valid JSON object"))
	}

	root := gjson.Parse(body)
	if !root.IsObject() {
		return nil, fail(errors.New("reply is not a JSON object"))
	}
	fields := root.Map()

	gen := &Generation{Category: category}

	titles, err := listField(fields, FieldDishTitles)
	if err != nil {
		return nil, fail(err)
	}
	for _, t := range titles {
		gen.DishTitles = append(gen.DishTitles, t.String())
	}

	ingredients, err := listField(fields, FieldIngredients)
	if err != nil {
		return nil, fail(err)
	}
	for _, entry := range ingredients {
		gen.Ingredients = append(gen.Ingredients, ingredientList(entry))
	}

	prompts, err := listField(fields, FieldImagePrompts)
	if err != nil {
		return nil, fail(err)
	}
	for _, p := range prompts {
		gen.ImagePrompts = append(gen.ImagePrompts, p.String())
	}

	prices, err := listField(fields, FieldPrices)
	if err != nil {
		return nil, fail(err)
	}
	for _, p := range prices {
		if p.Type != gjson.String && p.Type != gjson.Number {
			return nil, fail(fmt.Errorf("price %s is neither string nor number", p.Raw))
		}
		gen.Prices = append(gen.Prices, json.RawMessage(p.Raw))
	}

	return gen, nil
}

func listField(fields map[string]gjson.Result, name string) ([]gjson.Result, error) {
	v, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("missing field %q", name)
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("field %q is not a list", name)
	}
	return v.Array(), nil
}

// ingredientList accepts either a list of names or a single string.
func ingredientList(v gjson.Result) []string {
	if !v.IsArray() {
		return []string{v.String()}
	}
	var out []string
	for _, item := range v.Array() {
		out = append(out, item.String())
	}
	return out
}

// extractJSON pulls the object out of a ```json fence, or failing that the
// outermost braces.
func extractJSON(text string) string {
	if start := strings.Index(text, "```"); start != -1 {
		rest := strings.TrimPrefix(text[start+3:], "json")
		if end := strings.Index(rest, "```"); end != -1 {
			text = rest[:end]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return text[start : end+1]
}
