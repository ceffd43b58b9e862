/*
 * atoms.go, part of gocryst.
 *
 * Copyright 2023 The gocryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cryst

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// AtomTable stores the atoms of a model column-wise, one entry per atom in
// each column. Fractional coordinates are pointers since they only exist
// once a lattice is known. A table can only be obtained from an
// AtomTableBuilder or by merging two tables, so all columns are guaranteed
// to have the same length; the methods here rely on that and never
// re-check it.
type AtomTable struct {
	symbols    []string
	atomicNums []uint8
	cart       []r3.Vec
	frac       []*r3.Vec
	ids        []uint32
	byID       map[uint32]int
}

// AtomView is a read-only snapshot of one row of an AtomTable.
type AtomView struct {
	Symbol       string
	AtomicNumber uint8
	Cart         r3.Vec
	Frac         *r3.Vec
	ID           uint32
}

// Len returns the number of atoms in the table.
func (T *AtomTable) Len() int {
	return len(T.ids)
}

// Symbols returns the element symbol column.
func (T *AtomTable) Symbols() []string {
	return T.symbols
}

// AtomicNums returns the atomic number column.
func (T *AtomTable) AtomicNums() []uint8 {
	return T.atomicNums
}

// Cart returns the cartesian coordinate column.
func (T *AtomTable) Cart() []r3.Vec {
	return T.cart
}

// Frac returns the fractional coordinate column. Entries are nil when the
// model has no lattice or the coordinates have not been computed yet.
func (T *AtomTable) Frac() []*r3.Vec {
	return T.frac
}

// IDs returns the atom id column.
func (T *AtomTable) IDs() []uint32 {
	return T.ids
}

// View returns a snapshot of the atom at row i.
func (T *AtomTable) View(i int) (AtomView, error) {
	if i < 0 || i >= T.Len() {
		return AtomView{}, &InvalidIndexError{Index: i, Len: T.Len()}
	}
	return AtomView{
		Symbol:       T.symbols[i],
		AtomicNumber: T.atomicNums[i],
		Cart:         T.cart[i],
		Frac:         T.frac[i],
		ID:           T.ids[i],
	}, nil
}

// RowByID returns the row index holding the atom with the given id. The
// source format does not promise dense 1-based ids, so the lookup goes
// through an id-to-row map instead of treating id-1 as an offset. The map
// is built on first use and rebuilt after any reordering.
func (T *AtomTable) RowByID(id uint32) (int, error) {
	if T.byID == nil {
		T.byID = make(map[uint32]int, T.Len())
		for i, v := range T.ids {
			T.byID[v] = i
		}
	}
	row, ok := T.byID[id]
	if !ok {
		return 0, &InvalidIndexError{Index: int(id), Len: T.Len()}
	}
	return row, nil
}

// MaxID returns the largest atom id in the table, or 0 for an empty table.
func (T *AtomTable) MaxID() uint32 {
	var max uint32
	for _, id := range T.ids {
		if id > max {
			max = id
		}
	}
	return max
}

// SetCart replaces the cartesian coordinate of the atom at row i.
func (T *AtomTable) SetCart(i int, v r3.Vec) error {
	if i < 0 || i >= T.Len() {
		return &InvalidIndexError{Index: i, Len: T.Len()}
	}
	T.cart[i] = v
	return nil
}

// SetFrac replaces the fractional coordinate of the atom at row i. A nil
// value marks the coordinate as not computed.
func (T *AtomTable) SetFrac(i int, v *r3.Vec) error {
	if i < 0 || i >= T.Len() {
		return &InvalidIndexError{Index: i, Len: T.Len()}
	}
	T.frac[i] = v
	return nil
}

// SetSymbol replaces the element symbol and atomic number of the atom at
// row i.
func (T *AtomTable) SetSymbol(i int, symbol string, atomicNum uint8) error {
	if i < 0 || i >= T.Len() {
		return &InvalidIndexError{Index: i, Len: T.Len()}
	}
	T.symbols[i] = symbol
	T.atomicNums[i] = atomicNum
	return nil
}

// SetID replaces the atom id of the atom at row i.
func (T *AtomTable) SetID(i int, id uint32) error {
	if i < 0 || i >= T.Len() {
		return &InvalidIndexError{Index: i, Len: T.Len()}
	}
	T.ids[i] = id
	T.byID = nil
	return nil
}

// Copy returns a deep copy of the table.
func (T *AtomTable) Copy() *AtomTable {
	N := &AtomTable{
		symbols:    append([]string{}, T.symbols...),
		atomicNums: append([]uint8{}, T.atomicNums...),
		cart:       append([]r3.Vec{}, T.cart...),
		frac:       make([]*r3.Vec, T.Len()),
		ids:        append([]uint32{}, T.ids...),
	}
	for i, f := range T.frac {
		if f != nil {
			v := *f
			N.frac[i] = &v
		}
	}
	return N
}

// Rotate applies the rotation to every cartesian coordinate in the table.
// Fractional coordinates are left alone; they must be recomputed from the
// rotated lattice afterwards.
func (T *AtomTable) Rotate(rot r3.Rotation) {
	for i := range T.cart {
		T.cart[i] = rot.Rotate(T.cart[i])
	}
}

// Translate displaces every cartesian coordinate in the table by v.
func (T *AtomTable) Translate(v r3.Vec) {
	for i := range T.cart {
		T.cart[i] = r3.Add(T.cart[i], v)
	}
}

// ClearFrac drops all fractional coordinates, marking them not computed.
func (T *AtomTable) ClearFrac() {
	for i := range T.frac {
		T.frac[i] = nil
	}
}

// Concat appends the rows of other to a copy of T and returns the result.
// The ids of other are shifted past T's maximum id so that no id collides.
func (T *AtomTable) Concat(other *AtomTable) *AtomTable {
	shift := T.MaxID()
	N := T.Copy()
	O := other.Copy()
	N.symbols = append(N.symbols, O.symbols...)
	N.atomicNums = append(N.atomicNums, O.atomicNums...)
	N.cart = append(N.cart, O.cart...)
	N.frac = append(N.frac, O.frac...)
	for _, id := range O.ids {
		N.ids = append(N.ids, id+shift)
	}
	N.byID = nil
	return N
}

// swap exchanges rows i and j in every column.
func (T *AtomTable) swap(i, j int) {
	T.symbols[i], T.symbols[j] = T.symbols[j], T.symbols[i]
	T.atomicNums[i], T.atomicNums[j] = T.atomicNums[j], T.atomicNums[i]
	T.cart[i], T.cart[j] = T.cart[j], T.cart[i]
	T.frac[i], T.frac[j] = T.frac[j], T.frac[i]
	T.ids[i], T.ids[j] = T.ids[j], T.ids[i]
}

// byIDOrder sorts an AtomTable by ascending atom id. It satisfies
// sort.Interface.
type byIDOrder struct{ *AtomTable }

func (a byIDOrder) Len() int           { return a.AtomTable.Len() }
func (a byIDOrder) Swap(i, j int)      { a.AtomTable.swap(i, j) }
func (a byIDOrder) Less(i, j int) bool { return a.ids[i] < a.ids[j] }

// byNumberOrder sorts an AtomTable by ascending atomic number, with the
// atom id as tie-breaker so the order is stable across runs.
type byNumberOrder struct{ *AtomTable }

func (a byNumberOrder) Len() int      { return a.AtomTable.Len() }
func (a byNumberOrder) Swap(i, j int) { a.AtomTable.swap(i, j) }
func (a byNumberOrder) Less(i, j int) bool {
	if a.atomicNums[i] != a.atomicNums[j] {
		return a.atomicNums[i] < a.atomicNums[j]
	}
	return a.ids[i] < a.ids[j]
}

// SortByID reorders the table by ascending atom id, the order used by the
// MSI dialect.
func (T *AtomTable) SortByID() {
	sort.Sort(byIDOrder{T})
	T.byID = nil
}

// SortByAtomicNumber reorders the table by ascending atomic number, the
// order used by the CELL dialect.
func (T *AtomTable) SortByAtomicNumber() {
	sort.Sort(byNumberOrder{T})
	T.byID = nil
}
