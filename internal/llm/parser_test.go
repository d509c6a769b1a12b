package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fencedReply = "Sure! Here you go:\n```json\n" + `{
	"dish titles": ["Potato Skins", "Patatas Bravas"],
	"ingredients": [["potato", "cheese", "bacon"], "potato, paprika, aioli"],
	"image prompts": ["crispy potato skins on a slate", "patatas bravas in a clay dish"],
	"prices": ["$7.99", 8.5]
}` + "\n```"

func TestParseGeneration_FencedReply(t *testing.T) {
	gen, err := ParseGeneration("starters", fencedReply)
	require.NoError(t, err)

	assert.Equal(t, "starters", gen.Category)
	assert.Equal(t, []string{"Potato Skins", "Patatas Bravas"}, gen.DishTitles)
	assert.Equal(t, [][]string{
		{"potato", "cheese", "bacon"},
		{"potato, paprika, aioli"},
	}, gen.Ingredients)
	assert.Equal(t, []string{"crispy potato skins on a slate", "patatas bravas in a clay dish"}, gen.ImagePrompts)
	assert.Equal(t, []json.RawMessage{json.RawMessage(`"$7.99"`), json.RawMessage(`8.5`)}, gen.Prices)
}

func TestParseGeneration_BareObject(t *testing.T) {
	reply := `{"dish titles": ["Hash Browns"], "ingredients": [["potato"]], "image prompts": ["hash browns"], "prices": [4]}`

	gen, err := ParseGeneration("breakfast", reply)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hash Browns"}, gen.DishTitles)
}

func TestParseGeneration_Failures(t *testing.T) {
	cases := map[string]string{
		"no json":        "I cannot help with that.",
		"broken json":    "```json\n{\"dish titles\": [\n```",
		"missing field":  `{"dish titles": [], "ingredients": [], "image prompts": []}`,
		"field not list": `{"dish titles": "Fries", "ingredients": [], "image prompts": [], "prices": []}`,
		"bad price":      `{"dish titles": ["a"], "ingredients": [["b"]], "image prompts": ["c"], "prices": [{"usd": 3}]}`,
	}

	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			gen, err := ParseGeneration("lunch", reply)
			require.Error(t, err)
			assert.Nil(t, gen)

			var perr *GenerationParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "lunch", perr.Category)
			assert.Equal(t, reply, perr.Raw)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("noise {\"a\":1} trailing"))
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "", extractJSON("no braces"))
	assert.Equal(t, "", extractJSON("} backwards {"))
}
