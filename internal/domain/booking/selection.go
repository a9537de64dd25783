package booking

import "slices"

type SelectionState struct {
	SelectedSlotIDs []int64
	UserType        UserType
	NumberOfGuests  int
	DiscountPercent float64
}

func (s *SelectionState) IsSelected(id int64) bool {
	return slices.Contains(s.SelectedSlotIDs, id)
}

// Toggle removes id when selected; deselection is never gated. Otherwise id is
// appended only when the rule allows it. Returns whether the state changed.
func (s *SelectionState) Toggle(id int64, rule *BookingRule) bool {
	if i := slices.Index(s.SelectedSlotIDs, id); i >= 0 {
		s.SelectedSlotIDs = slices.Delete(s.SelectedSlotIDs, i, i+1)
		return true
	}
	if !IsSlotSelectable(id, s.SelectedSlotIDs, rule) {
		return false
	}
	s.SelectedSlotIDs = append(s.SelectedSlotIDs, id)
	return true
}

// Reconcile clears the selection when a newly arrived rule no longer allows it.
func (s *SelectionState) Reconcile(rule *BookingRule) bool {
	if AllowsSelection(s.SelectedSlotIDs, rule) {
		return false
	}
	s.SelectedSlotIDs = nil
	return true
}

// Retain drops selected ids that are not in slots, keeping order.
func (s *SelectionState) Retain(slots []Slot) bool {
	before := len(s.SelectedSlotIDs)
	s.SelectedSlotIDs = slices.DeleteFunc(s.SelectedSlotIDs, func(id int64) bool {
		_, ok := FindSlot(slots, id)
		return !ok
	})
	return len(s.SelectedSlotIDs) != before
}

func (s *SelectionState) Clear() {
	s.SelectedSlotIDs = nil
}
