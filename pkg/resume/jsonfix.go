package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var ErrNoJSON = errors.New("no json object in model output")

// DecodeLooseJSON parses model output that is meant to be JSON. Prose before
// the object is dropped; fences, quotes, commas, unquoted keys and a truncated
// tail are left to jsonrepair.
//
// Text after the object is ambiguous: "Hope it helps." is prose, while
// `, "c": [1` is a truncated field. Both readings are repaired and the object
// with more fields wins.
func DecodeLooseJSON(raw string) (any, error) {
	i := strings.IndexAny(raw, "{[")
	if i < 0 {
		return nil, ErrNoJSON
	}
	s := strings.TrimSpace(raw[i:])

	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v, nil
	}

	var (
		best    any
		bestLen = -1
		lastErr error
	)
	for _, cand := range []string{s, cutTail(s)} {
		got, err := repair(cand)
		if err != nil {
			lastErr = err
			continue
		}
		n := 0
		if m, ok := got.(map[string]any); ok {
			n = len(m) + 1
		}
		if n > bestLen {
			best, bestLen = got, n
		}
	}
	if bestLen < 0 {
		return nil, lastErr
	}
	return best, nil
}

func repair(s string) (any, error) {
	fixed, err := jsonrepair.Repair(s)
	if err != nil {
		return nil, fmt.Errorf("repair model json: %w", err)
	}
	var v any
	if err := json.Unmarshal([]byte(fixed), &v); err != nil {
		return nil, fmt.Errorf("decode model json: %w", err)
	}
	return v, nil
}

// cutTail keeps s up to its last closing brace or bracket.
func cutTail(s string) string {
	if j := strings.LastIndexAny(s, "}]"); j >= 0 {
		return s[:j+1]
	}
	return s
}
