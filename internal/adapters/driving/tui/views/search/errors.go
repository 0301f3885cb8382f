package search

import "errors"

// ErrNoSearchService is returned when the view has no search service wired.
var ErrNoSearchService = errors.New("search view: no search service configured")
