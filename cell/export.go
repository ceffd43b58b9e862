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

package cell

import (
	"fmt"
	"strings"

	cryst "github.com/gocryst/gocryst"
)

// writeBlock wraps content into a %BLOCK/%ENDBLOCK section.
func writeBlock(name, content string) string {
	return fmt.Sprintf("%%BLOCK %s\n%s%%ENDBLOCK %s\n\n", name, content, name)
}

func latticeCart(m *cryst.Model) string {
	lat := m.Lattice()
	var b strings.Builder
	for _, v := range []struct{ X, Y, Z float64 }{
		{lat.A().X, lat.A().Y, lat.A().Z},
		{lat.B().X, lat.B().Y, lat.B().Z},
		{lat.C().X, lat.C().Y, lat.C().Z},
	} {
		fmt.Fprintf(&b, "%24.18f%24.18f%24.18f\n", v.X, v.Y, v.Z)
	}
	return writeBlock("LATTICE_CART", b.String())
}

// positionsFrac writes the fractional positions, one line per atom, with
// the SPIN annotation for species that carry a nonzero default spin.
func positionsFrac(m *cryst.Model) (string, error) {
	atoms := m.Atoms()
	var b strings.Builder
	for i := 0; i < atoms.Len(); i++ {
		view, err := atoms.View(i)
		if err != nil {
			return "", err
		}
		if view.Frac == nil {
			return "", &cryst.GeometryError{Message: "fractional coordinates not computed for cell export"}
		}
		elm, err := cryst.LookupElement(view.Symbol)
		if err != nil {
			return "", err
		}
		spin := ""
		if elm.Spin > 0 {
			spin = fmt.Sprintf(" SPIN=%14d", elm.Spin)
		}
		fmt.Fprintf(&b, "%3s%20.16f%20.16f%20.16f%s\n", view.Symbol, view.Frac.X, view.Frac.Y, view.Frac.Z, spin)
	}
	return writeBlock("POSITIONS_FRAC", b.String()), nil
}

func kpointsList(m *cryst.Model, name string) string {
	var b strings.Builder
	for _, k := range m.Settings().KPointsList {
		fmt.Fprintf(&b, "%20.16f%20.16f%20.16f%20.16f\n", k.X, k.Y, k.Z, k.Weight)
	}
	return writeBlock(name, b.String())
}

func miscOptions(m *cryst.Model) string {
	s := m.Settings()
	var b strings.Builder
	fmt.Fprintf(&b, "FIX_ALL_CELL : %t\n\nFIX_COM : %t\n", s.FixAllCell, s.FixCOM)
	b.WriteString(writeBlock("IONIC_CONSTRAINTS", ""))
	e := s.ExternalEField
	b.WriteString(writeBlock("EXTERNAL_EFIELD", fmt.Sprintf("%16.10f%16.10f%16.10f\n", e[0], e[1], e[2])))
	p := s.ExternalPressure
	pressure := fmt.Sprintf("%16.10f%16.10f%16.10f\n%32.10f%16.10f\n%48.10f\n", p[0], p[1], p[2], p[3], p[4], p[5])
	b.WriteString(writeBlock("EXTERNAL_PRESSURE", pressure))
	return b.String()
}

func speciesMass(m *cryst.Model) (string, error) {
	var b strings.Builder
	for _, sym := range m.ElementSet() {
		elm, err := cryst.LookupElement(sym)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%8s%17.10f\n", sym, elm.Mass)
	}
	return writeBlock("SPECIES_MASS", b.String()), nil
}

func speciesPot(m *cryst.Model) (string, error) {
	var b strings.Builder
	for _, sym := range m.ElementSet() {
		elm, err := cryst.LookupElement(sym)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%8s  %s\n", sym, elm.Potential)
	}
	return writeBlock("SPECIES_POT", b.String()), nil
}

func speciesLCAO(m *cryst.Model) (string, error) {
	var b strings.Builder
	for _, sym := range m.ElementSet() {
		elm, err := cryst.LookupElement(sym)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%8s%9d\n", sym, elm.LCAO)
	}
	return writeBlock("SPECIES_LCAO_STATES", b.String()), nil
}

// Export serializes a CELL model: lattice, fractional positions, k-point
// list, miscellaneous flags and the per-species mass, potential and LCAO
// tables.
func Export(m *cryst.Model) (string, error) {
	return export(m, false)
}

// ExportBS is the band-structure variant, which carries an extra
// BS_KPOINTS_LIST section ahead of the regular k-point list.
func ExportBS(m *cryst.Model) (string, error) {
	return export(m, true)
}

func export(m *cryst.Model, bandStructure bool) (string, error) {
	if m.Lattice() == nil {
		return "", &cryst.GeometryError{Message: "cell export requires a lattice"}
	}
	positions, err := positionsFrac(m)
	if err != nil {
		return "", err
	}
	mass, err := speciesMass(m)
	if err != nil {
		return "", err
	}
	pot, err := speciesPot(m)
	if err != nil {
		return "", err
	}
	lcao, err := speciesLCAO(m)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(latticeCart(m))
	b.WriteString(positions)
	if bandStructure {
		b.WriteString(kpointsList(m, "BS_KPOINTS_LIST"))
	}
	b.WriteString(kpointsList(m, "KPOINTS_LIST"))
	b.WriteString(miscOptions(m))
	b.WriteString(mass)
	b.WriteString(pot)
	b.WriteString(lcao)
	return b.String(), nil
}
