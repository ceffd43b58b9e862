/*
 * builder.go, part of gocryst.
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

import "gonum.org/v1/gonum/spatial/r3"

// AtomTableBuilder constructs an AtomTable in stages. The atom count is
// fixed at creation; every column is validated against it the moment it is
// supplied, and Build refuses to run until all columns are present. A
// table obtained from Build therefore never has ragged columns.
type AtomTableBuilder struct {
	size       int
	symbols    []string
	atomicNums []uint8
	cart       []r3.Vec
	frac       []*r3.Vec
	ids        []uint32
	supplied   map[string]bool
}

// Column names as reported by MissingColumnError.
const (
	colSymbols    = "symbols"
	colAtomicNums = "atomic_numbers"
	colCart       = "cartesian"
	colFrac       = "fractional"
	colIDs        = "ids"
)

// NewAtomTableBuilder returns a builder for a table of size atoms.
func NewAtomTableBuilder(size int) *AtomTableBuilder {
	return &AtomTableBuilder{size: size, supplied: make(map[string]bool, 5)}
}

func (B *AtomTableBuilder) check(column string, got int) error {
	if got != B.size {
		return &ColumnMismatchError{Column: column, Got: got, Want: B.size}
	}
	return nil
}

// Symbols supplies the element symbol column.
func (B *AtomTableBuilder) Symbols(symbols []string) error {
	if err := B.check(colSymbols, len(symbols)); err != nil {
		return err
	}
	B.symbols = append([]string{}, symbols...)
	B.supplied[colSymbols] = true
	return nil
}

// AtomicNums supplies the atomic number column.
func (B *AtomTableBuilder) AtomicNums(nums []uint8) error {
	if err := B.check(colAtomicNums, len(nums)); err != nil {
		return err
	}
	B.atomicNums = append([]uint8{}, nums...)
	B.supplied[colAtomicNums] = true
	return nil
}

// Cart supplies the cartesian coordinate column.
func (B *AtomTableBuilder) Cart(cart []r3.Vec) error {
	if err := B.check(colCart, len(cart)); err != nil {
		return err
	}
	B.cart = append([]r3.Vec{}, cart...)
	B.supplied[colCart] = true
	return nil
}

// Frac supplies the fractional coordinate column. Nil entries are valid
// and mean "not computed".
func (B *AtomTableBuilder) Frac(frac []*r3.Vec) error {
	if err := B.check(colFrac, len(frac)); err != nil {
		return err
	}
	B.frac = append([]*r3.Vec{}, frac...)
	B.supplied[colFrac] = true
	return nil
}

// EmptyFrac supplies a fractional coordinate column with every entry not
// computed. This is what the MSI parser uses, since fractional coordinates
// only appear during conversion.
func (B *AtomTableBuilder) EmptyFrac() {
	B.frac = make([]*r3.Vec, B.size)
	B.supplied[colFrac] = true
}

// IDs supplies the atom id column.
func (B *AtomTableBuilder) IDs(ids []uint32) error {
	if err := B.check(colIDs, len(ids)); err != nil {
		return err
	}
	B.ids = append([]uint32{}, ids...)
	B.supplied[colIDs] = true
	return nil
}

// Build finalizes the table. It fails with a MissingColumnError naming the
// first column that was never supplied.
func (B *AtomTableBuilder) Build() (*AtomTable, error) {
	for _, col := range []string{colSymbols, colAtomicNums, colCart, colFrac, colIDs} {
		if !B.supplied[col] {
			return nil, &MissingColumnError{Column: col}
		}
	}
	return &AtomTable{
		symbols:    B.symbols,
		atomicNums: B.atomicNums,
		cart:       B.cart,
		frac:       B.frac,
		ids:        B.ids,
	}, nil
}
