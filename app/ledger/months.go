package ledger

import "sort"

// NormalizeMonths deduplicates and sorts a requested month set. It returns
// false if the set is empty or any month falls outside 1..12.
func NormalizeMonths(months []int) ([]int, bool) {
	if len(months) == 0 {
		return nil, false
	}
	seen := make(map[int]bool, len(months))
	out := make([]int, 0, len(months))
	for _, m := range months {
		if m < 1 || m > 12 {
			return nil, false
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Ints(out)
	return out, true
}

// DiffMonths returns requested minus blocked, preserving order.
func DiffMonths(requested, blocked []int) []int {
	set := make(map[int]bool, len(blocked))
	for _, m := range blocked {
		set[m] = true
	}
	var out []int
	for _, m := range requested {
		if !set[m] {
			out = append(out, m)
		}
	}
	return out
}
