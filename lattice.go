/*
 * lattice.go, part of gocryst.
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

// LatticeVectors is the 3x3 basis of a periodic cell. The columns of the
// matrix are the cartesian basis vectors a, b and c. Lengths, angles,
// volume and the fractional-coordinate matrix are always derived on
// demand, never cached, so they can not go stale when the basis rotates.
type LatticeVectors struct {
	vectors *mat.Dense
}

// NewLatticeVectors builds a lattice basis from the vectors a, b and c.
func NewLatticeVectors(a, b, c r3.Vec) *LatticeVectors {
	m := mat.NewDense(3, 3, []float64{
		a.X, b.X, c.X,
		a.Y, b.Y, c.Y,
		a.Z, b.Z, c.Z,
	})
	return &LatticeVectors{vectors: m}
}

// Vectors returns the underlying 3x3 matrix. Columns are a, b, c.
func (L *LatticeVectors) Vectors() *mat.Dense {
	return L.vectors
}

func (L *LatticeVectors) column(i int) r3.Vec {
	return r3.Vec{X: L.vectors.At(0, i), Y: L.vectors.At(1, i), Z: L.vectors.At(2, i)}
}

// A returns the first basis vector.
func (L *LatticeVectors) A() r3.Vec { return L.column(0) }

// B returns the second basis vector.
func (L *LatticeVectors) B() r3.Vec { return L.column(1) }

// C returns the third basis vector.
func (L *LatticeVectors) C() r3.Vec { return L.column(2) }

// Lengths returns the lengths of the three basis vectors.
func (L *LatticeVectors) Lengths() (la, lb, lc float64) {
	return r3.Norm(L.A()), r3.Norm(L.B()), r3.Norm(L.C())
}

// Angles returns the pairwise angles of the basis in radians: alpha
// between b and c, beta between a and c, gamma between a and b.
func (L *LatticeVectors) Angles() (alpha, beta, gamma float64) {
	a, b, c := L.A(), L.B(), L.C()
	return Angle(b, c), Angle(a, c), Angle(a, b)
}

// Volume returns the signed cell volume, the scalar triple product
// a.(b x c).
func (L *LatticeVectors) Volume() float64 {
	return r3.Dot(L.A(), r3.Cross(L.B(), L.C()))
}

// CartesianMatrix builds the triangular matrix that maps fractional
// coordinates onto cartesian ones, from the basis lengths, angles and
// volume. It fails with a GeometryError when the basis is degenerate
// (zero-length vector, collinear a and b, or zero volume), since the
// construction divides by sin(gamma) and by the vector lengths.
func (L *LatticeVectors) CartesianMatrix() (*mat.Dense, error) {
	la, lb, lc := L.Lengths()
	alpha, beta, gamma := L.Angles()
	vol := L.Volume()
	singamma := math.Sin(gamma)
	if la <= appzero || lb <= appzero || lc <= appzero {
		return nil, &GeometryError{Message: "lattice basis has a zero-length vector"}
	}
	if math.Abs(singamma) <= appzero {
		return nil, &GeometryError{Message: "lattice vectors a and b are collinear"}
	}
	if math.Abs(vol) <= appzero {
		return nil, &GeometryError{Message: "lattice basis has zero volume"}
	}
	return mat.NewDense(3, 3, []float64{
		la, lb * math.Cos(gamma), lc * math.Cos(beta),
		0, lb * singamma, lc * (math.Cos(alpha) - math.Cos(beta)*math.Cos(gamma)) / singamma,
		0, 0, vol / (la * lb * singamma),
	}), nil
}

// FractionalCoordMatrix returns the matrix that maps cartesian coordinates
// onto fractional ones: the inverse of CartesianMatrix. A basis that can
// not be inverted surfaces as a GeometryError, not as NaNs in the result.
func (L *LatticeVectors) FractionalCoordMatrix() (*mat.Dense, error) {
	toCart, err := L.CartesianMatrix()
	if err != nil {
		return nil, errDecorate(err, "FractionalCoordMatrix")
	}
	inv := new(mat.Dense)
	if err := inv.Inverse(toCart); err != nil {
		return nil, &GeometryError{Message: "lattice construction matrix is singular: " + err.Error()}
	}
	return inv, nil
}

// Rotate applies the rotation to the three basis vectors. Translation is
// meaningless for a basis, so there is no counterpart.
func (L *LatticeVectors) Rotate(rot r3.Rotation) {
	a := rot.Rotate(L.A())
	b := rot.Rotate(L.B())
	c := rot.Rotate(L.C())
	L.vectors = NewLatticeVectors(a, b, c).vectors
}

// Copy returns a deep copy of the basis.
func (L *LatticeVectors) Copy() *LatticeVectors {
	m := new(mat.Dense)
	m.CloneFrom(L.vectors)
	return &LatticeVectors{vectors: m}
}
