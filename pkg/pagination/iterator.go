package pagination

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// MaxPageSize is the largest page the server will return regardless of the
// requested count.
const MaxPageSize = 200

// Page is one server response to a listing endpoint: a bounded batch of
// items, an optional continuation pointer and an optional reported total.
// A page without Next is terminal.
type Page struct {
	List  []json.RawMessage `json:"list"`
	Next  string            `json:"next,omitempty"`
	Count int               `json:"count,omitempty"`
}

// PageFetcher fetches a single page from an absolute URL. Implemented by the
// client; the iterator depends on nothing else.
type PageFetcher interface {
	FetchPage(ctx context.Context, target string, params url.Values) (*Page, error)
}

// Iterator lazily walks a paginated listing. Each page fetch is deferred
// until its items are about to be consumed, so a caller that stops early
// avoids unnecessary requests. Consuming the iterator advances network
// state; re-iterating requires a fresh iterator.
type Iterator struct {
	fetcher   PageFetcher
	target    string
	params    url.Values
	requested int

	// remaining is recomputed after every fetch as requested minus the size
	// of the page just fetched. This mirrors the upstream API contract the
	// listing endpoints were built against; it is not a running total of
	// items yielded.
	remaining  int
	items      []json.RawMessage
	pos        int
	yieldLimit int
	next       string
	started    bool
	done       bool
	err        error
}

// New creates an iterator over at most requested items, starting at target
// with the given initial query parameters.
func New(fetcher PageFetcher, target string, params url.Values, requested int) *Iterator {
	return &Iterator{
		fetcher:   fetcher,
		target:    target,
		params:    params,
		requested: requested,
		remaining: requested,
	}
}

// Next returns the next item. It returns (nil, false, nil) once the
// iterator is exhausted. A failed page fetch surfaces its error here,
// mid-iteration; items already returned remain valid.
func (it *Iterator) Next(ctx context.Context) (json.RawMessage, bool, error) {
	for {
		if it.err != nil {
			return nil, false, it.err
		}
		if it.done {
			return nil, false, nil
		}

		if !it.started {
			it.started = true
			if it.requested <= 0 {
				it.done = true
				return nil, false, nil
			}
			params := url.Values{}
			for key, values := range it.params {
				params[key] = values
			}
			params.Set("count", strconv.Itoa(capCount(it.requested)))
			if err := it.fetch(ctx, it.target, params); err != nil {
				return nil, false, err
			}
			continue
		}

		if it.pos < it.yieldLimit {
			item := it.items[it.pos]
			it.pos++
			return item, true, nil
		}

		// Current page is consumed.
		if it.remaining <= 0 || it.next == "" {
			it.done = true
			return nil, false, nil
		}

		params := url.Values{}
		params.Set("count", strconv.Itoa(capCount(it.remaining)))
		if err := it.fetch(ctx, it.next, params); err != nil {
			return nil, false, err
		}
	}
}

// capCount clamps a requested count to the server's page size limit.
func capCount(count int) int {
	if count > MaxPageSize {
		return MaxPageSize
	}
	return count
}

// fetch loads a page and resets the cursor state for it.
func (it *Iterator) fetch(ctx context.Context, target string, params url.Values) error {
	page, err := it.fetcher.FetchPage(ctx, target, params)
	if err != nil {
		it.err = err
		return err
	}

	it.items = page.List
	it.pos = 0
	it.yieldLimit = len(page.List)
	if it.yieldLimit > it.remaining {
		it.yieldLimit = it.remaining
	}
	it.remaining = it.requested - len(page.List)
	it.next = page.Next

	log.Debug().
		Str("target", target).
		Int("items", len(page.List)).
		Int("remaining", it.remaining).
		Bool("has_next", page.Next != "").
		Msg("Fetched listing page")

	return nil
}

// Collect drains the iterator into a slice.
func (it *Iterator) Collect(ctx context.Context) ([]json.RawMessage, error) {
	var items []json.RawMessage
	for {
		item, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}
