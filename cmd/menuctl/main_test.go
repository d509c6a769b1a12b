package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"menugen/internal/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	menu menu.Menu
	err  error
}

func (f fakeProvider) Menu(context.Context) (menu.Menu, error) {
	return f.menu, f.err
}

type fakeStore struct {
	doc *menu.Document
	ok  bool
}

func (f fakeStore) Load(context.Context) (*menu.Document, bool) { return f.doc, f.ok }
func (f fakeStore) Save(context.Context, *menu.Document) error  { return nil }

func sampleMenu() menu.Menu {
	return menu.Menu{
		"menu-starters": {Name: "Starters", Data: []menu.Dish{
			{Dish: "Potato Soup", Price: menu.StringPrice("$6")},
			{Dish: "Hash Browns", Price: menu.NumberPrice(4.5)},
		}},
		"menu-dinner": {Name: "Dinner", Data: []menu.Dish{
			{Dish: "Gratin", Price: menu.StringPrice("$14")},
		}},
	}
}

func TestGenerate_PrintsSummary(t *testing.T) {
	var out bytes.Buffer

	err := generate(context.Background(), fakeProvider{menu: sampleMenu()}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Starters")
	assert.Contains(t, out.String(), "2 dishes")
	assert.Contains(t, out.String(), "3 dishes in 2 categories")
}

func TestGenerate_CacheWriteFailureStillPrints(t *testing.T) {
	var out bytes.Buffer
	cacheErr := &menu.CacheWriteError{Err: errors.New("disk full")}

	err := generate(context.Background(), fakeProvider{menu: sampleMenu(), err: cacheErr}, &out)

	assert.ErrorIs(t, err, cacheErr)
	assert.Contains(t, out.String(), "3 dishes in 2 categories")
}

func TestGenerate_PipelineFailure(t *testing.T) {
	var out bytes.Buffer

	err := generate(context.Background(), fakeProvider{err: errors.New("llm down")}, &out)

	assert.EqualError(t, err, "llm down")
	assert.Empty(t, out.String())
}

func TestShow(t *testing.T) {
	var out bytes.Buffer
	doc := &menu.Document{
		Menu:  sampleMenu(),
		Extra: map[string]any{"owner": "kitchen"},
	}

	err := show(context.Background(), fakeStore{doc: doc, ok: true}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `    "menu-starters": {`)
	assert.Contains(t, out.String(), `"owner": "kitchen"`)
	assert.Contains(t, out.String(), `"price": 4.5`)
}

func TestShow_NoCache(t *testing.T) {
	var out bytes.Buffer

	err := show(context.Background(), fakeStore{}, &out)

	assert.ErrorIs(t, err, errNoCache)
	assert.Empty(t, out.String())
}

func TestShow_DocumentWithoutMenu(t *testing.T) {
	var out bytes.Buffer
	doc := &menu.Document{Extra: map[string]any{"foo": "bar"}}

	err := show(context.Background(), fakeStore{doc: doc, ok: true}, &out)

	assert.ErrorIs(t, err, errNoCache)
}
