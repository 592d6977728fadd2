// Package sliceutil provides generic slice helpers.
package sliceutil

// Deduplicate removes duplicate items from a slice while preserving order.
// Only the first item for each key is kept.
//
// Example:
//
//	names := []string{"Lower", "ascii", "lower"}
//	unique := sliceutil.Deduplicate(names, strings.ToLower)
//	// Result: ["Lower", "ascii"]
func Deduplicate[T any, K comparable](items []T, keyFunc func(T) K) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[K]struct{}, len(items))
	result := make([]T, 0, len(items))

	for _, item := range items {
		key := keyFunc(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}

	return result
}
