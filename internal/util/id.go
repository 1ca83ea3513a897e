// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultShortIDLength is the number of id characters shown in listings.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID returns the first n characters of id.
// If n is 0 or negative, DefaultShortIDLength is used.
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// ResolveTaskID resolves a task ID or unique prefix against known ids.
//
// Resolution rules:
//  1. An exact match wins even if it is also a prefix of other ids.
//  2. If idOrPrefix prefixes exactly one id, return that id.
//  3. If several ids match, return ErrAmbiguousID with candidates.
//  4. If nothing matches, return ErrNotFound.
func ResolveTaskID(ids []string, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	var candidates []string
	for _, id := range ids {
		if id == idOrPrefix {
			return id, nil
		}
		if strings.HasPrefix(id, idOrPrefix) {
			candidates = append(candidates, id)
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("task with prefix %q: %w", idOrPrefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d tasks: %v",
			ErrAmbiguousID, idOrPrefix, len(candidates), shown)
	}
}
