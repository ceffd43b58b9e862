/*
 * cryst.go, part of gocryst.
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

// Package cryst provides the in-memory model of a crystal structure read
// from the MSI dialect or destined for the CELL dialect: a structure-of-
// arrays atom table with a staged builder, a periodic lattice basis and
// the geometry needed to derive fractional coordinates and canonical
// orientations from it.
package cryst

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dialect marks which text format a Model belongs to. The dialect selects
// the serialization and the atom ordering that applies.
type Dialect int

const (
	// Msi is the parenthesized Cerius2 data-model dialect.
	Msi Dialect = iota
	// Cell is the %BLOCK-delimited dialect of the simulation code.
	Cell
)

func (d Dialect) String() string {
	if d == Cell {
		return "cell"
	}
	return "msi"
}

// Model aggregates one atom table, an optional lattice basis (nil for a
// non-periodic structure) and the model settings, tagged with the dialect
// they came from.
type Model struct {
	lattice  *LatticeVectors
	atoms    *AtomTable
	settings *Settings
	dialect  Dialect
}

// NewModel assembles a model. A nil settings gets the defaults.
func NewModel(lattice *LatticeVectors, atoms *AtomTable, settings *Settings, dialect Dialect) *Model {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Model{lattice: lattice, atoms: atoms, settings: settings, dialect: dialect}
}

// Lattice returns the lattice basis, or nil for a non-periodic model.
func (M *Model) Lattice() *LatticeVectors {
	return M.lattice
}

// Atoms returns the atom table.
func (M *Model) Atoms() *AtomTable {
	return M.atoms
}

// Settings returns the model settings.
func (M *Model) Settings() *Settings {
	return M.settings
}

// Dialect returns the dialect tag of the model.
func (M *Model) Dialect() Dialect {
	return M.dialect
}

// Copy returns a deep copy of the model.
func (M *Model) Copy() *Model {
	var lat *LatticeVectors
	if M.lattice != nil {
		lat = M.lattice.Copy()
	}
	return &Model{
		lattice:  lat,
		atoms:    M.atoms.Copy(),
		settings: M.settings.Copy(),
		dialect:  M.dialect,
	}
}

// Rotate applies the rotation to every atom position and to the lattice
// basis, if there is one. Fractional coordinates are not touched; callers
// recompute them from the rotated basis.
func (M *Model) Rotate(rot r3.Rotation) {
	M.atoms.Rotate(rot)
	if M.lattice != nil {
		M.lattice.Rotate(rot)
	}
}

// Translate displaces every atom position. The lattice basis is direction
// only, so it does not move.
func (M *Model) Translate(v r3.Vec) {
	M.atoms.Translate(v)
}

// RecomputeFractional re-derives every atom's fractional coordinate from
// the current lattice basis. It must be called after any change to the
// basis; stale fractional coordinates are never reused. On a non-periodic
// model it clears the fractional column instead.
func (M *Model) RecomputeFractional() error {
	if M.lattice == nil {
		M.atoms.ClearFrac()
		return nil
	}
	fracMat, err := M.lattice.FractionalCoordMatrix()
	if err != nil {
		return errDecorate(err, "RecomputeFractional")
	}
	for i, xyz := range M.atoms.Cart() {
		f := mulVec(fracMat, xyz)
		M.atoms.frac[i] = &f
	}
	return nil
}

// Merge concatenates the atom tables of a and b into a new model carrying
// a's lattice, settings and dialect. The ids of b's atoms are shifted past
// a's maximum id so that no id collides.
func Merge(a, b *Model) *Model {
	merged := a.Copy()
	merged.atoms = a.atoms.Concat(b.atoms)
	return merged
}

// ElementSet returns the distinct element symbols present in the model,
// sorted by atomic number. This is the row order of the CELL species
// tables.
func (M *Model) ElementSet() []string {
	type entry struct {
		symbol string
		num    uint8
	}
	seen := make(map[string]uint8)
	for i, s := range M.atoms.Symbols() {
		seen[s] = M.atoms.AtomicNums()[i]
	}
	list := make([]entry, 0, len(seen))
	for s, n := range seen {
		list = append(list, entry{s, n})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].num < list[j].num })
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.symbol
	}
	return out
}
