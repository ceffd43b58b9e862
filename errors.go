/*
 * errors.go, part of gocryst.
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

import "fmt"

// Error is the interface implemented by every error type in this library.
// The Decorate method allows callers to add information to an error as it
// travels up the stack, without changing its type or wrapping it into
// something else. Each call returns the current decoration slice. Passing
// an empty string only queries the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. Calling it with any other error is a
// programming mistake and will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// ColumnMismatchError reports that a column supplied to an AtomTableBuilder
// has a length different from the builder's declared atom count.
type ColumnMismatchError struct {
	Column string
	Got    int
	Want   int
	deco   []string
}

func (err *ColumnMismatchError) Error() string {
	return fmt.Sprintf("gocryst: column %s has %d entries, expected %d", err.Column, err.Got, err.Want)
}

// Decorate adds deco to the decoration slice and returns the slice.
func (err *ColumnMismatchError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// MissingColumnError reports that Build was called on an AtomTableBuilder
// before the named column was supplied.
type MissingColumnError struct {
	Column string
	deco   []string
}

func (err *MissingColumnError) Error() string {
	return fmt.Sprintf("gocryst: column %s was never supplied", err.Column)
}

// Decorate adds deco to the decoration slice and returns the slice.
func (err *MissingColumnError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// InvalidIndexError reports a row index or atom id outside the bounds of an
// AtomTable.
type InvalidIndexError struct {
	Index int
	Len   int
	deco  []string
}

func (err *InvalidIndexError) Error() string {
	return fmt.Sprintf("gocryst: index %d out of range for table of %d atoms", err.Index, err.Len)
}

// Decorate adds deco to the decoration slice and returns the slice.
func (err *InvalidIndexError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// GeometryError reports a geometric operation that cannot be carried out,
// such as inverting the construction matrix of a degenerate lattice basis.
// Conversions abort with this error rather than propagating NaNs.
type GeometryError struct {
	Message string
	deco    []string
}

func (err *GeometryError) Error() string {
	return fmt.Sprintf("gocryst: %s", err.Message)
}

// Decorate adds deco to the decoration slice and returns the slice.
func (err *GeometryError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
