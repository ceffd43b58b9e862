/*
 * cell_test.go, part of gocryst.
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
	"math"
	"os"
	"strings"
	"testing"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/msi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func loadFixture(Te *testing.T) *cryst.Model {
	Te.Helper()
	data, err := os.ReadFile("../msi/test/gdy.msi")
	require.NoError(Te, err)
	m, err := msi.Parse(string(data))
	require.NoError(Te, err)
	return m
}

func TestFromMsi(Te *testing.T) {
	m := loadFixture(Te)
	cm, err := FromMsi(m)
	require.NoError(Te, err)
	assert.Equal(Te, cryst.Cell, cm.Dialect())

	// Lattice vector a must end up on the x axis.
	a := cm.Lattice().A()
	assert.InDelta(Te, 0, a.Y, 1e-9)
	assert.InDelta(Te, 0, a.Z, 1e-9)
	assert.InDelta(Te, r3.Norm(m.Lattice().A()), a.X, 1e-9)

	// Atoms regrouped by ascending atomic number, with fractional
	// coordinates computed.
	nums := cm.Atoms().AtomicNums()
	for i := 1; i < len(nums); i++ {
		assert.LessOrEqual(Te, nums[i-1], nums[i])
	}
	for _, f := range cm.Atoms().Frac() {
		require.NotNil(Te, f)
	}

	// The input model must be untouched.
	assert.Equal(Te, cryst.Msi, m.Dialect())
	assert.Nil(Te, m.Atoms().Frac()[0])
}

// An axis-aligned cubic cell needs no reorientation; the conversion must
// leave the basis bit-identical and still fill in the fractional column.
func TestFromMsiCubicNoRotation(Te *testing.T) {
	text := "# MSI CERIUS2 DataModel File Version 4 0\n(1 Model\n" +
		"  (A D A3 (10.0 0 0))\n  (A D B3 (0 10.0 0))\n  (A D C3 (0 0 10.0))\n" +
		"  (2 Atom\n    (A C ACL \"6 C\")\n    (A D XYZ (5.0 5.0 5.0))\n    (A I Id 1)\n  )\n)\n"
	m, err := msi.Parse(text)
	require.NoError(Te, err)
	cm, err := FromMsi(m)
	require.NoError(Te, err)
	assert.Equal(Te, r3.Vec{X: 10}, cm.Lattice().A())
	assert.Equal(Te, r3.Vec{Y: 10}, cm.Lattice().B())
	assert.Equal(Te, r3.Vec{Z: 10}, cm.Lattice().C())
	f := cm.Atoms().Frac()[0]
	require.NotNil(Te, f)
	assert.InDelta(Te, 0.5, f.X, 1e-9)
	assert.InDelta(Te, 0.5, f.Y, 1e-9)
	assert.InDelta(Te, 0.5, f.Z, 1e-9)
}

// A lattice vector pointing against its target axis is still collinear
// with it; the conversion must flip it onto the axis instead of leaking
// NaNs into the basis and the fractional column.
func TestFromMsiAntiParallelLattice(Te *testing.T) {
	text := "# MSI CERIUS2 DataModel File Version 4 0\n(1 Model\n" +
		"  (A D A3 (-10.0 0 0))\n  (A D B3 (0 10.0 0))\n  (A D C3 (0 0 10.0))\n" +
		"  (2 Atom\n    (A C ACL \"6 C\")\n    (A D XYZ (-5.0 5.0 5.0))\n    (A I Id 1)\n  )\n)\n"
	m, err := msi.Parse(text)
	require.NoError(Te, err)
	cm, err := FromMsi(m)
	require.NoError(Te, err)
	a := cm.Lattice().A()
	assert.InDelta(Te, 10, a.X, 1e-9)
	assert.InDelta(Te, 0, a.Y, 1e-9)
	assert.InDelta(Te, 0, a.Z, 1e-9)
	f := cm.Atoms().Frac()[0]
	require.NotNil(Te, f)
	for _, v := range []float64{f.X, f.Y, f.Z} {
		assert.False(Te, math.IsNaN(v))
	}
	assert.InDelta(Te, 0.5, f.X, 1e-9)
}

func TestFromMsiNonPeriodic(Te *testing.T) {
	text := "# MSI CERIUS2 DataModel File Version 4 0\n(1 Model\n" +
		"  (2 Atom\n    (A C ACL \"1 H\")\n    (A D XYZ (0 0 0))\n    (A I Id 1)\n  )\n)\n"
	m, err := msi.Parse(text)
	require.NoError(Te, err)
	_, err = FromMsi(m)
	require.Error(Te, err)
}

func TestToMsi(Te *testing.T) {
	cm, err := FromMsi(loadFixture(Te))
	require.NoError(Te, err)
	back, err := ToMsi(cm)
	require.NoError(Te, err)
	assert.Equal(Te, cryst.Msi, back.Dialect())

	// Lattice vector b back on the y axis.
	b := back.Lattice().B()
	assert.InDelta(Te, 0, b.X, 1e-9)
	assert.InDelta(Te, 0, b.Z, 1e-9)

	// Atom-id order restored, fractional coordinates dropped.
	ids := back.Atoms().IDs()
	for i := 1; i < len(ids); i++ {
		assert.Less(Te, ids[i-1], ids[i])
	}
	for _, f := range back.Atoms().Frac() {
		assert.Nil(Te, f)
	}

	// Conversion is an isometry either way: cell volume survives.
	assert.InDelta(Te, cm.Lattice().Volume(), back.Lattice().Volume(), 1e-9)
}

func TestExport(Te *testing.T) {
	cm, err := FromMsi(loadFixture(Te))
	require.NoError(Te, err)
	text, err := Export(cm)
	require.NoError(Te, err)

	for _, block := range []string{
		"LATTICE_CART", "POSITIONS_FRAC", "KPOINTS_LIST",
		"IONIC_CONSTRAINTS", "EXTERNAL_EFIELD", "EXTERNAL_PRESSURE",
		"SPECIES_MASS", "SPECIES_POT", "SPECIES_LCAO_STATES",
	} {
		assert.Contains(Te, text, "%BLOCK "+block+"\n")
		assert.Contains(Te, text, "%ENDBLOCK "+block+"\n")
	}
	assert.NotContains(Te, text, "BS_KPOINTS_LIST")
	assert.Contains(Te, text, "FIX_ALL_CELL : true")
	// Ti carries a default spin, written as a width-padded integer; C
	// and O do not.
	assert.Contains(Te, text, " SPIN=             2\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "SPIN=") {
			assert.Equal(Te, "Ti", strings.Fields(line)[0])
		}
	}
	// The default k-point list is the gamma point with weight one.
	assert.Contains(Te, text, "%BLOCK KPOINTS_LIST\n"+
		"  0.0000000000000000  0.0000000000000000  0.0000000000000000  1.0000000000000000\n")
}

func TestExportBS(Te *testing.T) {
	cm, err := FromMsi(loadFixture(Te))
	require.NoError(Te, err)
	text, err := ExportBS(cm)
	require.NoError(Te, err)
	assert.Contains(Te, text, "%BLOCK BS_KPOINTS_LIST\n")
	// The band structure list precedes the regular one.
	assert.Less(Te, strings.Index(text, "BS_KPOINTS_LIST"), strings.Index(text, "%BLOCK KPOINTS_LIST"))
}

func TestExportRequiresFractional(Te *testing.T) {
	m := loadFixture(Te)
	// Tag as cell without going through the conversion: the fractional
	// column is still empty and the export must refuse.
	forced := cryst.NewModel(m.Lattice(), m.Atoms(), m.Settings(), cryst.Cell)
	_, err := Export(forced)
	require.Error(Te, err)
}

func TestFractionalWithinCell(Te *testing.T) {
	cm, err := FromMsi(loadFixture(Te))
	require.NoError(Te, err)
	for i, f := range cm.Atoms().Frac() {
		require.NotNil(Te, f)
		for _, v := range []float64{f.X, f.Y, f.Z} {
			assert.Falsef(Te, math.IsNaN(v), "atom %d fractional is NaN", i)
		}
	}
}
