/*
 * settings.go, part of gocryst.
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

// KPoint is one entry of the reciprocal-space sampling list: a fractional
// position plus its weight.
type KPoint struct {
	X, Y, Z float64
	Weight  float64
}

// Settings holds the per-model parameters of both dialects. A single
// struct serves MSI and CELL; fields that a dialect does not use keep
// their default value. The zero value is not useful, use DefaultSettings.
type Settings struct {
	// CELL dialect fields.
	KPointsList    []KPoint
	KPointsGrid    [3]uint8
	KPointSpacing  float64 // 0 means unset
	KPointOffset   [3]float64
	FixAllCell     bool
	FixCOM         bool
	ExternalEField [3]float64
	// Order: Rxx Rxy Rxz Ryy Ryz Rzz.
	ExternalPressure [6]float64
	// MSI dialect fields.
	CryDisplay   [2]uint32
	PeriodicType uint8
	SpaceGroup   string
	CryTolerance float64
}

// DefaultSettings returns the settings an MSI model carries when the file
// does not override them, which are also the CELL-side defaults.
func DefaultSettings() *Settings {
	return &Settings{
		KPointsList:   []KPoint{{0, 0, 0, 1.0}},
		KPointsGrid:   [3]uint8{1, 1, 1},
		KPointSpacing: 0,
		KPointOffset:  [3]float64{0, 0, 0},
		FixAllCell:    true,
		FixCOM:        false,
		CryDisplay:    [2]uint32{192, 256},
		PeriodicType:  100,
		SpaceGroup:    "1 1",
		CryTolerance:  0.05,
	}
}

// Copy returns a deep copy of the settings.
func (S *Settings) Copy() *Settings {
	N := *S
	N.KPointsList = append([]KPoint{}, S.KPointsList...)
	return &N
}
