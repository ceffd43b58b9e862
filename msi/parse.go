/*
 * parse.go, part of gocryst.
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

// Package msi reads and writes the parenthesized Cerius2 MSI dialect: a
// header line, a "(1 Model" scope, and an arbitrarily ordered sequence of
// attribute, atom and bond blocks. The package tolerates both Unix and
// DOS line endings and makes no assumption about field order.
package msi

import (
	cryst "github.com/gocryst/gocryst"
	"gonum.org/v1/gonum/spatial/r3"
)

// Parse reads one MSI document into a model tagged with the MSI dialect.
// Structural failures (broken fields, missing scope terminator) and
// semantic failures (atom blocks missing species, coordinates or
// identifier) abort the parse; no partial model is ever returned.
func Parse(text string) (*cryst.Model, error) {
	scanner := NewScanner(text)
	if err := scanner.Scan(); err != nil {
		return nil, err
	}
	attrs := attrMap(scanner.Attributes())
	lattice, err := latticeVectors(attrs)
	if err != nil {
		return nil, err
	}
	modelSettings, err := settings(attrs)
	if err != nil {
		return nil, err
	}

	n := scanner.NumAtoms()
	symbols := make([]string, 0, n)
	nums := make([]uint8, 0, n)
	cart := make([]r3.Vec, 0, n)
	ids := make([]uint32, 0, n)
	for _, block := range scanner.AtomBlocks() {
		rec, err := parseAtomBlock(block)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, rec.symbol)
		nums = append(nums, rec.atomicNum)
		cart = append(cart, rec.xyz)
		ids = append(ids, rec.id)
	}

	builder := cryst.NewAtomTableBuilder(n)
	if err := builder.Symbols(symbols); err != nil {
		return nil, err
	}
	if err := builder.AtomicNums(nums); err != nil {
		return nil, err
	}
	if err := builder.Cart(cart); err != nil {
		return nil, err
	}
	builder.EmptyFrac()
	if err := builder.IDs(ids); err != nil {
		return nil, err
	}
	table, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return cryst.NewModel(lattice, table, modelSettings, cryst.Msi), nil
}
