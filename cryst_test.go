/*
 * cryst_test.go, part of gocryst.
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
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func buildTable(Te *testing.T, symbols []string, nums []uint8, cart []r3.Vec, ids []uint32) *AtomTable {
	Te.Helper()
	b := NewAtomTableBuilder(len(ids))
	if err := b.Symbols(symbols); err != nil {
		Te.Fatal(err)
	}
	if err := b.AtomicNums(nums); err != nil {
		Te.Fatal(err)
	}
	if err := b.Cart(cart); err != nil {
		Te.Fatal(err)
	}
	b.EmptyFrac()
	if err := b.IDs(ids); err != nil {
		Te.Fatal(err)
	}
	table, err := b.Build()
	if err != nil {
		Te.Fatal(err)
	}
	return table
}

func TestBuilderColumnMismatch(Te *testing.T) {
	b := NewAtomTableBuilder(2)
	err := b.Symbols([]string{"C"})
	if err == nil {
		Te.Fatal("length mismatch accepted")
	}
	if _, ok := err.(*ColumnMismatchError); !ok {
		Te.Errorf("wrong error type: %T", err)
	}
}

func TestBuilderMissingColumn(Te *testing.T) {
	b := NewAtomTableBuilder(1)
	if err := b.Symbols([]string{"C"}); err != nil {
		Te.Fatal(err)
	}
	_, err := b.Build()
	if err == nil {
		Te.Fatal("incomplete builder built a table")
	}
	if _, ok := err.(*MissingColumnError); !ok {
		Te.Errorf("wrong error type: %T", err)
	}
}

func TestMergeShiftsIDs(Te *testing.T) {
	a := buildTable(Te, []string{"C"}, []uint8{6}, []r3.Vec{{}}, []uint32{1})
	b := buildTable(Te, []string{"O"}, []uint8{8}, []r3.Vec{{X: 1}}, []uint32{1})
	ma := NewModel(nil, a, nil, Msi)
	mb := NewModel(nil, b, nil, Msi)
	merged := Merge(ma, mb)
	ids := merged.Atoms().IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		Te.Errorf("merged ids = %v, want [1 2]", ids)
	}
	// The operands must be left alone.
	if a.IDs()[0] != 1 || b.IDs()[0] != 1 {
		Te.Error("merge mutated an operand")
	}
}

func TestSortByAtomicNumber(Te *testing.T) {
	t := buildTable(Te,
		[]string{"O", "H", "C"},
		[]uint8{8, 1, 6},
		[]r3.Vec{{X: 1}, {X: 2}, {X: 3}},
		[]uint32{1, 2, 3})
	t.SortByAtomicNumber()
	want := []string{"H", "C", "O"}
	for i, s := range t.Symbols() {
		if s != want[i] {
			Te.Errorf("row %d = %q, want %q", i, s, want[i])
		}
	}
	// Coordinates must travel with their rows.
	if t.Cart()[0].X != 2 {
		Te.Error("coordinates did not follow the sort")
	}
	// And the id lookup must see the new order.
	row, err := t.RowByID(1)
	if err != nil || t.Symbols()[row] != "O" {
		Te.Errorf("RowByID after sort: row %d, %v", row, err)
	}
}

func TestCubicFractional(Te *testing.T) {
	lat := NewLatticeVectors(r3.Vec{X: 10}, r3.Vec{Y: 10}, r3.Vec{Z: 10})
	atoms := buildTable(Te, []string{"C"}, []uint8{6}, []r3.Vec{{X: 5, Y: 5, Z: 5}}, []uint32{1})
	m := NewModel(lat, atoms, nil, Msi)
	if err := m.RecomputeFractional(); err != nil {
		Te.Fatal(err)
	}
	f := m.Atoms().Frac()[0]
	if f == nil {
		Te.Fatal("no fractional coordinate computed")
	}
	for _, v := range []float64{f.X, f.Y, f.Z} {
		if !scalar.EqualWithinAbs(v, 0.5, 1e-9) {
			Te.Errorf("fractional = %v, want (0.5 0.5 0.5)", *f)
		}
	}
}

// Fractional coordinates pushed back through the cartesian construction
// matrix must land on the original positions.
func TestFractionalRoundTrip(Te *testing.T) {
	// A hexagonal-ish basis with an off-axis a vector.
	lat := NewLatticeVectors(
		r3.Vec{X: 16.395185930251, Y: -9.465569245},
		r3.Vec{Y: 18.93113849},
		r3.Vec{Z: 9.999213},
	)
	pos := r3.Vec{X: 2.5, Y: 3.5, Z: 1.25}
	fracMat, err := lat.FractionalCoordMatrix()
	if err != nil {
		Te.Fatal(err)
	}
	cartMat, err := lat.CartesianMatrix()
	if err != nil {
		Te.Fatal(err)
	}
	// The construction matrix is expressed in the canonical frame, so
	// the round trip is only exact through the pair of matrices.
	f := mulVec(fracMat, mulVec(cartMat, pos))
	if !scalar.EqualWithinAbs(f.X, pos.X, 1e-8) || !scalar.EqualWithinAbs(f.Y, pos.Y, 1e-8) || !scalar.EqualWithinAbs(f.Z, pos.Z, 1e-8) {
		Te.Errorf("round trip moved %v to %v", pos, f)
	}
}

func TestDegenerateLattice(Te *testing.T) {
	cases := []*LatticeVectors{
		NewLatticeVectors(r3.Vec{}, r3.Vec{Y: 1}, r3.Vec{Z: 1}),
		NewLatticeVectors(r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{Z: 1}),
		NewLatticeVectors(r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{X: 1, Y: 1}),
	}
	for i, lat := range cases {
		if _, err := lat.CartesianMatrix(); err == nil {
			Te.Errorf("degenerate basis %d accepted", i)
		}
	}
}

func TestAlignmentRotation(Te *testing.T) {
	v := r3.Vec{X: 3, Y: 4}
	rot, ok := AlignmentRotation(v, r3.Vec{X: 1})
	if !ok {
		Te.Fatal("no rotation for a misaligned vector")
	}
	got := rot.Rotate(v)
	if math.Abs(got.X-5) > 1e-9 || math.Abs(got.Y) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		Te.Errorf("rotated vector = %v, want (5 0 0)", got)
	}
	// Already aligned: nothing to do.
	if _, ok := AlignmentRotation(r3.Vec{X: 2}, r3.Vec{X: 1}); ok {
		Te.Error("rotation produced for an aligned vector")
	}
}

func TestAlignmentRotationAntiParallel(Te *testing.T) {
	cases := []struct {
		v, target r3.Vec
	}{
		{r3.Vec{X: -10}, r3.Vec{X: 1}},
		{r3.Vec{Y: -3}, r3.Vec{Y: 1}},
		{r3.Vec{X: -1, Y: -1, Z: -1}, r3.Vec{X: 1, Y: 1, Z: 1}},
	}
	for i, c := range cases {
		rot, ok := AlignmentRotation(c.v, c.target)
		if !ok {
			Te.Fatalf("case %d: no rotation for an anti-parallel vector", i)
		}
		got := rot.Rotate(c.v)
		if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
			Te.Fatalf("case %d: rotated vector = %v", i, got)
		}
		want := r3.Scale(r3.Norm(c.v), r3.Unit(c.target))
		if r3.Norm(r3.Sub(got, want)) > 1e-9 {
			Te.Errorf("case %d: rotated vector = %v, want %v", i, got, want)
		}
	}
	if _, ok := AlignmentRotation(r3.Vec{}, r3.Vec{X: 1}); ok {
		Te.Error("rotation produced for a zero vector")
	}
}

func TestRotateIsIsometry(Te *testing.T) {
	atoms := buildTable(Te,
		[]string{"C", "O"}, []uint8{6, 8},
		[]r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -2, Y: 0.5, Z: 1}},
		[]uint32{1, 2})
	lat := NewLatticeVectors(r3.Vec{X: 10}, r3.Vec{Y: 10}, r3.Vec{Z: 10})
	m := NewModel(lat, atoms, nil, Msi)
	before := r3.Norm(r3.Sub(m.Atoms().Cart()[0], m.Atoms().Cart()[1]))
	volBefore := m.Lattice().Volume()

	rot, ok := AlignmentRotation(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{Z: 1})
	if !ok {
		Te.Fatal("no rotation")
	}
	m.Rotate(rot)
	after := r3.Norm(r3.Sub(m.Atoms().Cart()[0], m.Atoms().Cart()[1]))
	if math.Abs(before-after) > 1e-9 {
		Te.Errorf("interatomic distance changed: %v -> %v", before, after)
	}
	if math.Abs(volBefore-m.Lattice().Volume()) > 1e-9 {
		Te.Error("cell volume changed under rotation")
	}
}

func TestElementSet(Te *testing.T) {
	atoms := buildTable(Te,
		[]string{"O", "Ti", "O", "C"},
		[]uint8{8, 22, 8, 6},
		make([]r3.Vec, 4),
		[]uint32{1, 2, 3, 4})
	m := NewModel(nil, atoms, nil, Cell)
	set := m.ElementSet()
	want := []string{"C", "O", "Ti"}
	if len(set) != len(want) {
		Te.Fatalf("element set = %v", set)
	}
	for i := range want {
		if set[i] != want[i] {
			Te.Errorf("element set = %v, want %v", set, want)
		}
	}
}

func TestLookupElement(Te *testing.T) {
	fe, err := LookupElement("Fe")
	if err != nil {
		Te.Fatal(err)
	}
	if fe.Number != 26 || fe.Potential == "" {
		Te.Errorf("Fe = %+v", fe)
	}
	if _, err := LookupElement("Xx"); err == nil {
		Te.Error("unknown element accepted")
	}
}

func TestDefaultSettings(Te *testing.T) {
	s := DefaultSettings()
	if len(s.KPointsList) != 1 || s.KPointsList[0].Weight != 1 {
		Te.Errorf("kpoints = %v", s.KPointsList)
	}
	if s.KPointsGrid != [3]uint8{1, 1, 1} || !s.FixAllCell || s.PeriodicType != 100 {
		Te.Errorf("defaults = %+v", s)
	}
	if s.SpaceGroup != "1 1" || s.CryTolerance != 0.05 {
		Te.Errorf("defaults = %+v", s)
	}
}
