package menu

import "errors"

// ErrCountMismatch marks a category whose generated titles and ingredient
// lists differ in length. The category is left out of the menu.
var ErrCountMismatch = errors.New("dish titles and ingredients differ in length")

// ErrMenuUndecodable marks a cache document whose "menu" value has the wrong
// shape. The other top-level keys were still read.
var ErrMenuUndecodable = errors.New("cached menu has an unexpected shape")

// CacheWriteError is returned alongside a fully built menu when it could not
// be persisted. Callers may still render the menu.
type CacheWriteError struct {
	Err error
}

func (e *CacheWriteError) Error() string {
	return "save menu cache: " + e.Err.Error()
}

func (e *CacheWriteError) Unwrap() error {
	return e.Err
}
