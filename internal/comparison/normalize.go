// Package comparison merges product listings from several delivery platforms
// into ranked, filterable and paginated comparison groups.
//
// Everything in this package is pure and request scoped. It holds no state
// between calls and is safe for concurrent use.
package comparison

import "strings"

// NormalizeProductName lowercases name and collapses whitespace runs into a
// single space, so "  Big   Burger" and "big burger" compare equal.
func NormalizeProductName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// NormalizeRestaurantName trims and lowercases name. Inner whitespace is kept.
func NormalizeRestaurantName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
