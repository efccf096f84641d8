// Package thunk implements the sorted-array thunk-region detector spec.md
// §6 names as "elf_is_in_thunk_area(addr, thunks) → index-or-negative":
// synthetic linker/loader code stubs that subprograms falling inside them
// should not be materialized as functions (spec.md §4.D.1 step 1).
package thunk

import "golang.org/x/exp/slices"

// Region is one contiguous thunk address range, [Low, High).
type Region struct {
	Low, High uint64
}

// Table is a sorted, non-overlapping set of thunk regions.
type Table struct {
	regions []Region
}

// NewTable builds a Table from an unsorted region slice, sorting by Low.
func NewTable(regions []Region) *Table {
	t := &Table{regions: append([]Region(nil), regions...)}
	slices.SortFunc(t.regions, func(a, b Region) int {
		switch {
		case a.Low < b.Low:
			return -1
		case a.Low > b.Low:
			return 1
		default:
			return 0
		}
	})
	return t
}

// Contains reports whether addr falls inside any declared thunk region,
// returning the region's index or -1, matching elf_is_in_thunk_area's
// index-or-negative contract.
func (t *Table) Contains(addr uint64) int {
	i, found := slices.BinarySearchFunc(t.regions, addr, func(r Region, addr uint64) int {
		switch {
		case r.High <= addr:
			return -1
		case r.Low > addr:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return -1
	}
	return i
}
