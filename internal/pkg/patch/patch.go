package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalescePositive treats zero and negative values as absent.
func CoalescePositive[T ~int | ~int32 | ~int64 | ~float64](ptr *T, fallback T) T {
	if ptr != nil && *ptr > 0 {
		return *ptr
	}
	return fallback
}
