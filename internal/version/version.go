// Package version parses, validates, and orders release version tags.
// A tag is the marker 'v' followed by one or more dot-separated non-negative
// integers (v1, v1.2, v1.2.19). Tags double as folder names under
// changelogs/released/, so validation here gates what the rest of the tool
// treats as a release.
package version

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Marker is the single character every version tag starts with.
const Marker = "v"

// Placeholder is the default tag used when no version argument is given.
// It always fails Check, so a bare invocation exits with a format error
// instead of silently cutting a release.
const Placeholder = Marker

// Check validates a version tag. It returns nil for tags of the form
// v<int>(.<int>)* and a descriptive error otherwise.
func Check(tag string) error {
	if !strings.HasPrefix(tag, Marker) {
		return fmt.Errorf("version must start with %q, like v1.2.19", Marker)
	}
	if len(tag) == len(Marker) {
		return fmt.Errorf("version needs a number after %q, like v1.2.19", Marker)
	}
	for _, part := range strings.Split(tag[len(Marker):], ".") {
		if _, err := strconv.ParseUint(part, 10, strconv.IntSize-1); err != nil {
			return fmt.Errorf("version can contain only numbers divided by dots, like v1.2.19")
		}
	}
	return nil
}

// SortKey strips the marker and parses the remaining dot-separated
// components as integers. The key orders tags numerically component by
// component, so v1.10.0 sorts above v1.9.0 despite string order.
func SortKey(tag string) ([]int, error) {
	if err := Check(tag); err != nil {
		return nil, err
	}
	parts := strings.Split(tag[len(Marker):], ".")
	key := make([]int, len(parts))
	for i, part := range parts {
		// Bit size keeps components within int on every platform, so the
		// int conversion below never truncates.
		n, err := strconv.ParseUint(part, 10, strconv.IntSize-1)
		if err != nil {
			return nil, fmt.Errorf("parsing version component %q: %w", part, err)
		}
		key[i] = int(n)
	}
	return key, nil
}

// Compare orders two sort keys lexicographically, most-significant component
// first. Keys of different lengths compare as tuples: when one is a prefix of
// the other, the shorter key sorts lower (v1.2 < v1.2.0). Missing trailing
// components are absent, not zero.
func Compare(a, b []int) int {
	return slices.Compare(a, b)
}

// SortDescending sorts validated version tags in place, newest first.
// Tags that fail to parse sort last; callers are expected to have filtered
// them out already via Check.
func SortDescending(tags []string) {
	keys := make(map[string][]int, len(tags))
	for _, tag := range tags {
		key, err := SortKey(tag)
		if err != nil {
			continue
		}
		keys[tag] = key
	}
	sort.SliceStable(tags, func(i, j int) bool {
		ki, oki := keys[tags[i]]
		kj, okj := keys[tags[j]]
		if !oki || !okj {
			return oki
		}
		return Compare(ki, kj) > 0
	})
}

// Number returns the tag with the leading marker stripped, for display in
// changelog headings ("## Version 1.2.0 ...").
func Number(tag string) string {
	return strings.TrimPrefix(tag, Marker)
}
