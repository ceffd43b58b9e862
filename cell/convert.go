/*
 * convert.go, part of gocryst.
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

// Package cell converts models between the MSI and CELL dialects and
// serializes the CELL side: %BLOCK-delimited sections with fractional
// coordinates, k-point sampling and per-species tables.
package cell

import (
	cryst "github.com/gocryst/gocryst"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromMsi converts an MSI model into a CELL model: the whole model is
// rotated so the lattice vector a lies along the x axis (skipped when it
// already does), fractional coordinates are re-derived from the rotated
// basis, and atoms are regrouped by ascending atomic number, the order
// the CELL dialect expects. The input model is not modified.
func FromMsi(m *cryst.Model) (*cryst.Model, error) {
	if m.Lattice() == nil {
		return nil, &cryst.GeometryError{Message: "cannot convert a non-periodic model to cell"}
	}
	c := m.Copy()
	if rot, ok := cryst.AlignmentRotation(c.Lattice().A(), r3.Vec{X: 1}); ok {
		c.Rotate(rot)
	}
	if err := c.RecomputeFractional(); err != nil {
		return nil, err
	}
	c.Atoms().SortByAtomicNumber()
	return cryst.NewModel(c.Lattice(), c.Atoms(), c.Settings(), cryst.Cell), nil
}

// ToMsi converts a CELL model back into an MSI model: the model is
// rotated so the lattice vector b lies along the y axis (skipped when
// already aligned), atoms return to ascending atom-id order, and the
// fractional coordinates are dropped since the MSI dialect stores only
// cartesian positions. The input model is not modified.
func ToMsi(m *cryst.Model) (*cryst.Model, error) {
	if m.Lattice() == nil {
		return nil, &cryst.GeometryError{Message: "cannot convert a non-periodic model to msi"}
	}
	c := m.Copy()
	if rot, ok := cryst.AlignmentRotation(c.Lattice().B(), r3.Vec{Y: 1}); ok {
		c.Rotate(rot)
	}
	c.Atoms().ClearFrac()
	c.Atoms().SortByID()
	return cryst.NewModel(c.Lattice(), c.Atoms(), c.Settings(), cryst.Msi), nil
}
