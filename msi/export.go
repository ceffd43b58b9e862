/*
 * export.go, part of gocryst.
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

package msi

import (
	"fmt"
	"strings"

	cryst "github.com/gocryst/gocryst"
)

// header is the fixed first line of every exported MSI document.
const header = "# MSI CERIUS2 DataModel File Version 4 0\n"

// Export serializes a model as MSI text. Atoms are written in ascending
// atom-id order with 12-decimal coordinates; the item numbers continue
// the scope numbering, where the model itself is item 1. Models without a
// lattice get the bare header and atom list, matching a non-periodic
// document.
func Export(m *cryst.Model) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("(1 Model\n")
	atoms := m.Atoms().Copy()
	atoms.SortByID()
	if lat := m.Lattice(); lat != nil {
		s := m.Settings()
		fmt.Fprintf(&b, "  (A I CRY/DISPLAY (%d %d))\n", s.CryDisplay[0], s.CryDisplay[1])
		fmt.Fprintf(&b, "  (A I PeriodicType %d)\n", s.PeriodicType)
		fmt.Fprintf(&b, "  (A C SpaceGroup \"%s\")\n", s.SpaceGroup)
		a, bb, c := lat.A(), lat.B(), lat.C()
		fmt.Fprintf(&b, "  (A D A3 (%.12f %.12f %.12f))\n", a.X, a.Y, a.Z)
		fmt.Fprintf(&b, "  (A D B3 (%.12f %.12f %.12f))\n", bb.X, bb.Y, bb.Z)
		fmt.Fprintf(&b, "  (A D C3 (%.12f %.12f %.12f))\n", c.X, c.Y, c.Z)
		fmt.Fprintf(&b, "  (A D CRY/TOLERANCE %g)\n", s.CryTolerance)
	}
	for i := 0; i < atoms.Len(); i++ {
		view, _ := atoms.View(i)
		fmt.Fprintf(&b, "  (%d Atom\n", view.ID+1)
		fmt.Fprintf(&b, "    (A C ACL \"%d %s\")\n", view.AtomicNumber, view.Symbol)
		fmt.Fprintf(&b, "    (A C Label \"%s\")\n", view.Symbol)
		fmt.Fprintf(&b, "    (A D XYZ (%.12f %.12f %.12f))\n", view.Cart.X, view.Cart.Y, view.Cart.Z)
		fmt.Fprintf(&b, "    (A I Id %d)\n", view.ID)
		b.WriteString("  )\n")
	}
	b.WriteString(")")
	return b.String()
}
