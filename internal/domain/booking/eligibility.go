package booking

import (
	"slices"
)

// IsSlotSelectable decides whether candidateID may be part of the selection.
// A nil rule has not been fetched yet and allows everything.
func IsSlotSelectable(candidateID int64, selected []int64, rule *BookingRule) bool {
	if rule == nil {
		return true
	}
	if !rule.CanBook {
		return false
	}
	if slices.Contains(selected, candidateID) {
		return true
	}
	if len(selected) >= rule.MaxSelectable() {
		return false
	}

	candidate := make([]int64, 0, len(selected)+1)
	candidate = append(candidate, selected...)
	candidate = append(candidate, candidateID)
	return LongestConsecutiveRun(candidate) <= rule.MaxConcurrent()
}

// LongestConsecutiveRun returns the length of the longest run of consecutive
// integers in ids. Order and duplicates do not matter.
func LongestConsecutiveRun(ids []int64) int {
	if len(ids) == 0 {
		return 0
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// AllowsSelection reports whether an existing selection is still legal under rule.
func AllowsSelection(selected []int64, rule *BookingRule) bool {
	if rule == nil || len(selected) == 0 {
		return true
	}
	if !rule.CanBook {
		return false
	}
	if len(selected) > rule.MaxSelectable() {
		return false
	}
	return LongestConsecutiveRun(selected) <= rule.MaxConcurrent()
}
