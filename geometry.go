/*
 * geometry.go, part of gocryst.
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

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// appzero is the tolerance under which a float is considered zero.
const appzero = 1e-12

// Angle returns the angle in radians between v1 and v2. The cosine is
// clamped to [-1,1] before the Acos call to keep floating point noise from
// producing NaN on (anti)parallel vectors.
func Angle(v1, v2 r3.Vec) float64 {
	argument := r3.Cos(v1, v2)
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.0
	}
	return angle
}

// AlignmentRotation returns the rotation that takes v onto the direction
// of target: the axis is the normalized cross product of the two, the
// angle the angle between them. When v already points along target the
// rotation is the identity; that case, and zero-length input, are
// reported by ok being false, and callers skip the rotation. An
// anti-parallel v turns onto target about an arbitrary axis
// perpendicular to v, since the cross product has no direction there.
func AlignmentRotation(v, target r3.Vec) (rot r3.Rotation, ok bool) {
	if r3.Norm(v) <= appzero || r3.Norm(target) <= appzero {
		return r3.NewRotation(0, r3.Vec{X: 1}), false
	}
	angle := Angle(v, target)
	if angle == 0 {
		return r3.NewRotation(0, r3.Vec{X: 1}), false
	}
	axis := r3.Cross(v, target)
	if r3.Norm(axis) <= appzero {
		axis = r3.Cross(v, r3.Vec{X: 1})
		if r3.Norm(axis) <= appzero {
			axis = r3.Cross(v, r3.Vec{Y: 1})
		}
	}
	return r3.NewRotation(angle, r3.Unit(axis)), true
}

// mulVec applies a 3x3 matrix to a vector.
func mulVec(m *mat.Dense, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// FracToCart converts a fractional coordinate to a cartesian one using the
// lattice's construction matrix.
func FracToCart(L *LatticeVectors, frac r3.Vec) (r3.Vec, error) {
	toCart, err := L.CartesianMatrix()
	if err != nil {
		return r3.Vec{}, errDecorate(err, "FracToCart")
	}
	return mulVec(toCart, frac), nil
}
