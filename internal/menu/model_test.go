package menu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_JSON(t *testing.T) {
	cases := map[string]Price{
		`"$12.99"`: StringPrice("$12.99"),
		`12.99`:    NumberPrice(12.99),
		`7`:        {Value: "7", Numeric: true},
	}

	for raw, want := range cases {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
		assert.Equal(t, want, p)

		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, raw, string(out))
	}
}

func TestPrice_RejectsOtherKinds(t *testing.T) {
	var p Price
	assert.Error(t, json.Unmarshal([]byte(`{"usd": 1}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`true`), &p))
}

func TestDocument_RoundTrip(t *testing.T) {
	in := `{
		"foo": "bar",
		"count": 2,
		"menu": {
			"menu-starters": {
				"name": "Starters",
				"data": [{"dish": "Skins", "ingredients": "potato, cheese", "img": "img/menu/starters-0.png", "price": 8}]
			}
		}
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(in), &doc))

	assert.True(t, doc.HasMenu())
	assert.Equal(t, map[string]any{"foo": "bar", "count": float64(2)}, doc.Extra)
	assert.Equal(t, NumberPrice(8), doc.Menu["menu-starters"].Data[0].Price)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	var again Document
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, doc, again)
}

func TestDocument_WithoutMenu(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"foo": "bar"}`), &doc))

	assert.False(t, doc.HasMenu())
	assert.Nil(t, doc.Menu)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"foo": "bar"}`, string(out))

	var nilDoc *Document
	assert.False(t, nilDoc.HasMenu())
}

func TestDecodeDocument_BadMenuKeepsOtherKeys(t *testing.T) {
	for name, menu := range map[string]string{
		"bool price":  `{"menu-lunch": {"name": "Lunch", "data": [{"dish": "x", "price": true}]}}`,
		"string data": `{"menu-lunch": {"name": "Lunch", "data": "x"}}`,
		"number name": `{"menu-lunch": {"name": 5, "data": []}}`,
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(`{"foo": "bar", "visits": 3, "menu": ` + menu + `}`))

			require.ErrorIs(t, err, ErrMenuUndecodable)
			require.NotNil(t, doc)
			assert.Nil(t, doc.Menu)
			assert.False(t, doc.HasMenu())
			assert.Equal(t, map[string]any{"foo": "bar", "visits": float64(3)}, doc.Extra)
		})
	}
}

func TestDecodeDocument_NotAnObject(t *testing.T) {
	doc, err := DecodeDocument([]byte(`[1, 2]`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMenuUndecodable)
	assert.Nil(t, doc)
}

func TestDocument_NormalizeEmptyExtra(t *testing.T) {
	doc := Document{Menu: Menu{}, Extra: map[string]any{}}
	doc.Normalize()

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	loaded, err := DecodeDocument(out)
	require.NoError(t, err)
	assert.Equal(t, &doc, loaded)
}

func TestDocument_RejectsNonObject(t *testing.T) {
	var doc Document
	assert.Error(t, json.Unmarshal([]byte(`[]`), &doc))
	assert.Error(t, json.Unmarshal([]byte(`null`), &doc))
}

func TestMenu_Sections(t *testing.T) {
	m := Menu{
		"menu-dinner":   {Name: "Dinner"},
		"menu-zzz":      {Name: "Zzz"},
		"menu-starters": {Name: "Starters"},
		"menu-aaa":      {Name: "Aaa"},
		"menu-lunch":    {Name: "Lunch"},
	}

	var keys []string
	for _, s := range m.Sections() {
		keys = append(keys, s.Key)
	}

	assert.Equal(t, []string{"menu-starters", "menu-lunch", "menu-dinner", "menu-aaa", "menu-zzz"}, keys)
}
