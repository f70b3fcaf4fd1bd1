// Package normalize reconciles the inconsistent payload shapes the Devigo
// backend returns into canonical forms. List endpoints variously return a
// bare array, a DRF-style {results, count} envelope, an ad-hoc keyed
// envelope, or a single object; image references arrive as full URLs or as
// bare CDN identifiers; the technologies field arrives as an array or a map.
//
// All functions here are pure and never fail on malformed shapes: an
// unrecognizable list payload degrades to an empty result so every screen
// can render an empty list instead of crashing.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ListResult is the canonical shape of a list response: the items in server
// order plus the total count for pagination.
type ListResult struct {
	Data  []json.RawMessage // Items exactly as the server ordered them
	Count int               // Total count; falls back to len(Data) when the server omits it
}

// Envelope keys probed, in priority order, when a list payload is an object.
var envelopeKeys = []string{"results", "projects", "data"}

// List normalizes a raw list payload into a ListResult. The accepted shapes
// are tried in order, first match wins:
//
//  1. A bare JSON array.
//  2. An object with an array-valued "results" property (DRF pagination),
//     taking "count" when present.
//  3. An object with another recognized array-valued property ("projects",
//     "data"), or failing that the first array-valued property in sorted
//     key order.
//  4. A single record-like object (has an "id") - a one-element result.
//  5. Anything else - an empty result.
//
// List never returns an error: shape mismatches degrade to an empty, valid
// result. The server-supplied count is trusted as-is and never reconciled
// against len(Data).
func List(raw json.RawMessage) ListResult {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return emptyList()
	}

	// Shape 1: bare array.
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			if items == nil {
				items = []json.RawMessage{}
			}
			return ListResult{Data: items, Count: len(items)}
		}
		return emptyList()
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return emptyList()
	}

	count, hasCount := envelopeCount(envelope)

	// Shapes 2 and 3: recognized envelope keys in priority order.
	for _, key := range envelopeKeys {
		if items, ok := arrayValue(envelope, key); ok {
			return listWithCount(items, count, hasCount)
		}
	}

	// Shape 3 fallback: the first array-valued property. Sorted key order
	// keeps the choice deterministic when several arrays are present.
	keys := make([]string, 0, len(envelope))
	for key := range envelope {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key == "count" {
			continue
		}
		if items, ok := arrayValue(envelope, key); ok {
			return listWithCount(items, count, hasCount)
		}
	}

	// Shape 4: a single record-like object.
	if _, ok := envelope["id"]; ok {
		return ListResult{Data: []json.RawMessage{raw}, Count: 1}
	}

	// Shape 5: nothing recognizable.
	return emptyList()
}

// ListAs normalizes a raw list payload and decodes each item into T.
// Shape mismatches still degrade to an empty result; an item that fails to
// decode into T is a real contract violation and is returned as an error.
func ListAs[T any](raw json.RawMessage) ([]T, int, error) {
	result := List(raw)

	items := make([]T, 0, len(result.Data))
	for i, data := range result.Data {
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, 0, fmt.Errorf("decode list item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, result.Count, nil
}

func emptyList() ListResult {
	return ListResult{Data: []json.RawMessage{}, Count: 0}
}

func listWithCount(items []json.RawMessage, count int, hasCount bool) ListResult {
	if !hasCount {
		count = len(items)
	}
	return ListResult{Data: items, Count: count}
}

// envelopeCount extracts an integer "count" property when present and valid.
func envelopeCount(envelope map[string]json.RawMessage) (int, bool) {
	raw, ok := envelope["count"]
	if !ok {
		return 0, false
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil || count < 0 {
		return 0, false
	}
	return count, true
}

// arrayValue returns the decoded array under key, or ok=false when the key
// is absent or not array-valued.
func arrayValue(envelope map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	raw, ok := envelope[key]
	if !ok {
		return nil, false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, true
}
