/*
 * aux.go, part of gocryst.
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

package castep

import (
	"fmt"
	"strings"

	cryst "github.com/gocryst/gocryst"
)

// KptAux is the content of a .kptaux file: the Monkhorst-Pack grid used
// for reciprocal-space sampling, with optional spacing and offset.
type KptAux struct {
	KPoints []cryst.KPoint
	MPGrid  [3]uint8
	// Maximum distance between k-points on the grid, in 1/Angstrom.
	// 0 means unset.
	MPSpacing float64
	MPOffset  [3]float64
}

// NewKptAux pulls the k-point settings out of a model.
func NewKptAux(m *cryst.Model) *KptAux {
	s := m.Settings()
	return &KptAux{
		KPoints:   append([]cryst.KPoint{}, s.KPointsList...),
		MPGrid:    s.KPointsGrid,
		MPSpacing: s.KPointSpacing,
		MPOffset:  s.KPointOffset,
	}
}

// Export serializes the .kptaux content.
func (k *KptAux) Export() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MP_GRID : %8d%8d%8d\n", k.MPGrid[0], k.MPGrid[1], k.MPGrid[2])
	fmt.Fprintf(&b, "MP_OFFSET : %s%s%s\n",
		expFloat(k.MPOffset[0], 22, 18), expFloat(k.MPOffset[1], 22, 18), expFloat(k.MPOffset[2], 22, 18))
	b.WriteString("BLOCK KPOINT_IMAGES\n   1   1\nENDBLOCK KPOINT_IMAGES")
	return b.String()
}

// TrjAux is the content of a .trjaux file: the atom ids, in the cell's
// atom order, that a trajectory file will refer to.
type TrjAux struct {
	AtomIDs []uint32
}

// NewTrjAux pulls the atom ids out of a model, in its current order.
func NewTrjAux(m *cryst.Model) *TrjAux {
	return &TrjAux{AtomIDs: append([]uint32{}, m.Atoms().IDs()...)}
}

// Export serializes the .trjaux content.
func (t *TrjAux) Export() string {
	var b strings.Builder
	b.WriteString("# Atom IDs to appear in any .trj file to be generated.\n")
	b.WriteString("# Correspond to atom IDs which will be used in exported .msi file\n")
	b.WriteString("# required for animation/analysis of trajectory within Cerius2.\n")
	for _, id := range t.AtomIDs {
		fmt.Fprintf(&b, "%d\n", id)
	}
	b.WriteString("#Origin  0.000000000000000e+000  0.000000000000000e+000  0.000000000000000e+000")
	return b.String()
}
