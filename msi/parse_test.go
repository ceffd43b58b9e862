/*
 * parse_test.go, part of gocryst.
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
	"math"
	"os"
	"strings"
	"testing"
)

func readTestFile(Te *testing.T, name string) string {
	Te.Helper()
	data, err := os.ReadFile("test/" + name)
	if err != nil {
		Te.Fatal(err)
	}
	return string(data)
}

func TestParseFile(Te *testing.T) {
	m, err := Parse(readTestFile(Te, "gdy.msi"))
	if err != nil {
		Te.Fatal(err)
	}
	atoms := m.Atoms()
	if atoms.Len() != 4 {
		Te.Fatalf("got %d atoms, want 4", atoms.Len())
	}
	wantSymbols := []string{"C", "C", "O", "Ti"}
	for i, want := range wantSymbols {
		view, err := atoms.View(i)
		if err != nil {
			Te.Fatal(err)
		}
		if view.Symbol != want {
			Te.Errorf("atom %d symbol = %q, want %q", i, view.Symbol, want)
		}
		if view.Frac != nil {
			Te.Errorf("atom %d has fractional coordinates before any conversion", i)
		}
	}
	lat := m.Lattice()
	if lat == nil {
		Te.Fatal("no lattice read")
	}
	c := lat.C()
	if math.Abs(c.Z-9.999213) > 1e-9 {
		Te.Errorf("C3 z = %v", c.Z)
	}
	s := m.Settings()
	if s.PeriodicType != 100 || s.SpaceGroup != "1 1" || s.CryTolerance != 0.05 {
		Te.Errorf("settings = %d %q %v", s.PeriodicType, s.SpaceGroup, s.CryTolerance)
	}
	Te.Logf("parsed %d atoms, cell volume %v", atoms.Len(), lat.Volume())
}

// Attribute fields may appear before, between or after the atom blocks;
// the result must not depend on that order.
func TestParseOrderIndependence(Te *testing.T) {
	atomBlock := "  (2 Atom\n    (A C ACL \"6 C\")\n    (A D XYZ (1.0 2.0 3.0))\n    (A I Id 1)\n  )\n"
	lattice := "  (A D A3 (10.0 0 0))\n  (A D B3 (0 10.0 0))\n  (A D C3 (0 0 10.0))\n"
	header := "# MSI CERIUS2 DataModel File Version 4 0\n(1 Model\n"
	before := header + lattice + atomBlock + ")\n"
	after := header + atomBlock + lattice + ")\n"

	ma, err := Parse(before)
	if err != nil {
		Te.Fatal(err)
	}
	mb, err := Parse(after)
	if err != nil {
		Te.Fatal(err)
	}
	if ma.Atoms().Len() != 1 || mb.Atoms().Len() != 1 {
		Te.Fatal("atom count differs between orderings")
	}
	la, lb := ma.Lattice(), mb.Lattice()
	if la == nil || lb == nil {
		Te.Fatal("lattice lost in one ordering")
	}
	if la.A() != lb.A() || la.B() != lb.B() || la.C() != lb.C() {
		Te.Error("lattice differs between orderings")
	}
}

func TestParseCRLF(Te *testing.T) {
	unix := readTestFile(Te, "gdy.msi")
	dos := strings.ReplaceAll(unix, "\n", "\r\n")
	m, err := Parse(dos)
	if err != nil {
		Te.Fatal(err)
	}
	if m.Atoms().Len() != 4 {
		Te.Errorf("got %d atoms from CRLF input, want 4", m.Atoms().Len())
	}
}

func TestParseNoLattice(Te *testing.T) {
	text := "# MSI CERIUS2 DataModel File Version 4 0\n(1 Model\n" +
		"  (2 Atom\n    (A C ACL \"1 H\")\n    (A D XYZ (0 0 0))\n    (A I Id 1)\n  )\n)\n"
	m, err := Parse(text)
	if err != nil {
		Te.Fatal(err)
	}
	if m.Lattice() != nil {
		Te.Error("lattice invented for a non-periodic model")
	}
}

func TestParseErrors(Te *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no model scope", "# MSI CERIUS2 DataModel File Version 4 0\n"},
		{"missing terminator", "# header\n(1 Model\n  (A I PeriodicType 100)\n"},
		{"partial lattice", "# h\n(1 Model\n  (A D A3 (1 0 0))\n)\n"},
		{"atom without id", "# h\n(1 Model\n  (2 Atom\n    (A C ACL \"6 C\")\n    (A D XYZ (0 0 0))\n  )\n)\n"},
		{"atom without species", "# h\n(1 Model\n  (2 Atom\n    (A D XYZ (0 0 0))\n    (A I Id 1)\n  )\n)\n"},
	}
	for _, c := range cases {
		if _, err := Parse(c.text); err == nil {
			Te.Errorf("%s: no error", c.name)
		} else {
			Te.Logf("%s: %v", c.name, err)
		}
	}
}

func TestExportRoundTrip(Te *testing.T) {
	m, err := Parse(readTestFile(Te, "gdy.msi"))
	if err != nil {
		Te.Fatal(err)
	}
	text := Export(m)
	if !strings.HasPrefix(text, "# MSI CERIUS2 DataModel File Version 4 0\n(1 Model\n") {
		Te.Fatalf("bad export prefix: %q", text[:50])
	}
	// The model is item 1, so the first atom's item number is its id
	// plus one.
	if !strings.Contains(text, "  (2 Atom\n") {
		Te.Error("first atom item number is not 2")
	}
	back, err := Parse(text)
	if err != nil {
		Te.Fatalf("re-parse of exported text: %v", err)
	}
	if back.Atoms().Len() != m.Atoms().Len() {
		Te.Fatalf("atom count changed: %d -> %d", m.Atoms().Len(), back.Atoms().Len())
	}
	for i := 0; i < m.Atoms().Len(); i++ {
		a, _ := m.Atoms().View(i)
		b, _ := back.Atoms().View(i)
		if a.Symbol != b.Symbol || a.ID != b.ID {
			Te.Errorf("atom %d changed: %v -> %v", i, a, b)
		}
		if math.Abs(a.Cart.X-b.Cart.X) > 1e-9 || math.Abs(a.Cart.Y-b.Cart.Y) > 1e-9 || math.Abs(a.Cart.Z-b.Cart.Z) > 1e-9 {
			Te.Errorf("atom %d moved on round trip", i)
		}
	}
}
