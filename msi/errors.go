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

package msi

import "fmt"

// StructuralError reports that field extraction or model-scope termination
// failed. It keeps the unconsumed remainder of the input so the failure
// position can be diagnosed. A structural failure aborts the whole parse;
// nothing is retried.
type StructuralError struct {
	Message   string
	Remainder string
	deco      []string
}

func (err *StructuralError) Error() string {
	rem := err.Remainder
	if len(rem) > 40 {
		rem = rem[:40] + "..."
	}
	return fmt.Sprintf("msi: %s (at %q)", err.Message, rem)
}

// Decorate adds deco to the decoration slice and returns the slice.
func (err *StructuralError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// SemanticError reports a required sub-field that is absent or malformed
// inside a structurally valid block. No partial model is returned.
type SemanticError struct {
	Field   string
	Message string
	deco    []string
}

func (err *SemanticError) Error() string {
	return fmt.Sprintf("msi: field %s: %s", err.Field, err.Message)
}

// Decorate adds deco to the decoration slice and returns the slice.
func (err *SemanticError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
