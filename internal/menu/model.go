package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// menuKey is the top-level document key holding the generated menu.
const menuKey = "menu"

// Categories are generated in this order and rendered in this order.
var Categories = []string{
	"starters",
	"breakfast",
	"lunch",
	"dinner",
}

// Key returns the menu map key for a category, e.g. "menu-lunch".
func Key(category string) string {
	return "menu-" + category
}

// Menu maps a category key to its section.
type Menu map[string]Category

type Category struct {
	Name string `json:"name"`
	Data []Dish `json:"data"`
}

type Dish struct {
	Dish        string `json:"dish"`
	Ingredients string `json:"ingredients"`
	Img         string `json:"img"`
	Price       Price  `json:"price"`
}

// Section is a category paired with its key, for ordered rendering.
type Section struct {
	Key string
	Category
}

// Sections returns the known categories first in generation order,
// then any other keys sorted.
func (m Menu) Sections() []Section {
	out := make([]Section, 0, len(m))
	seen := make(map[string]bool, len(m))

	for _, c := range Categories {
		k := Key(c)
		if cat, ok := m[k]; ok {
			out = append(out, Section{Key: k, Category: cat})
			seen[k] = true
		}
	}

	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, Section{Key: k, Category: m[k]})
	}

	return out
}

// --------------------------------------------------
// Price
// --------------------------------------------------

// Price keeps the upstream value as-is: either a JSON string or a JSON number.
type Price struct {
	Value   string
	Numeric bool
}

func StringPrice(s string) Price {
	return Price{Value: s}
}

func NumberPrice(f float64) Price {
	return Price{Value: strconv.FormatFloat(f, 'f', -1, 64), Numeric: true}
}

func (p Price) String() string {
	return p.Value
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.Numeric {
		return []byte(p.Value), nil
	}
	return json.Marshal(p.Value)
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price{Value: s}
		return nil
	}

	if bytes.Equal(b, []byte("null")) {
		*p = Price{}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a string or number: %w", err)
	}
	*p = Price{Value: n.String(), Numeric: true}
	return nil
}

// --------------------------------------------------
// Document
// --------------------------------------------------

// Document is the persisted cache document. Keys other than "menu"
// are kept in Extra and written back untouched.
type Document struct {
	Menu  Menu
	Extra map[string]any
}

// HasMenu reports whether the document already carries a generated menu.
func (d *Document) HasMenu() bool {
	return d != nil && len(d.Menu) > 0
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+1)
	for k, v := range d.Extra {
		out[k] = v
	}
	if d.Menu != nil {
		out[menuKey] = d.Menu
	}
	return json.Marshal(out)
}

// Normalize puts the document in the form it takes after decoding, so a
// saved document and its reloaded copy compare equal.
func (d *Document) Normalize() {
	if len(d.Extra) == 0 {
		d.Extra = nil
	}
}

// DecodeDocument parses a stored document. When only the menu subtree is
// malformed it returns the document with a nil Menu and the remaining keys,
// together with an error wrapping ErrMenuUndecodable.
func DecodeDocument(b []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		if errors.Is(err, ErrMenuUndecodable) {
			return &doc, err
		}
		return nil, err
	}
	return &doc, nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("document must be a JSON object")
	}

	doc := Document{}
	var menuErr error

	for k, v := range raw {
		if k == menuKey {
			var m Menu
			if err := json.Unmarshal(v, &m); err != nil {
				menuErr = fmt.Errorf("%w: %v", ErrMenuUndecodable, err)
				continue
			}
			doc.Menu = m
			continue
		}

		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("decode %q: %w", k, err)
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]any)
		}
		doc.Extra[k] = val
	}

	*d = doc
	return menuErr
}
