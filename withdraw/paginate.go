/*
paginate.go - Pure pagination over an ordered list

PURPOSE:
  Computes the visible window of an option list for a given page, plus
  whether previous/next navigation should be enabled. Pure function of
  (items, pageSize, pageIndex); no state, no errors.

CONTRACT:
  pageSize > 0 and pageIndex >= 0 are caller contracts. A pageIndex past
  the end yields an empty window rather than an error - navigation
  boundaries are pre-validated by the gateway's disabled buttons, and the
  workflow clamps page moves, so an empty window indicates a caller bug.

SEE ALSO:
  - workflow.go: Clamps CurrentPage so this is never called out of range
*/
package withdraw

// Page returns the visible window items[pageIndex*pageSize : +pageSize]
// and the enabled state of previous/next navigation.
func Page[T any](items []T, pageSize, pageIndex int) (visible []T, hasPrevious, hasNext bool) {
	start := pageIndex * pageSize
	if start >= len(items) {
		return nil, pageIndex > 0, false
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], pageIndex > 0, end < len(items)
}

// LastPageIndex returns the highest page index that still shows at least
// one item. An empty list has a single (empty) page 0.
func LastPageIndex(itemCount, pageSize int) int {
	if itemCount <= 0 {
		return 0
	}
	return (itemCount - 1) / pageSize
}
