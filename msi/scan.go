/*
 * scan.go, part of gocryst.
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

import "strings"

// modelStart is the marker that opens a model scope.
const modelStart = "(1 Model"

// scanState tracks the progress of a Scanner: raw text loaded,
// positioned inside the model scope, and scope fully consumed.
type scanState int

const (
	loaded scanState = iota
	started
	analyzed
)

// Scanner walks one model scope and buckets every field it finds. The
// format makes no promise about field order: atoms, bonds and attributes
// may interleave arbitrarily and a lattice attribute may follow the atom
// list, so the scanner classifies each field as it comes and keeps three
// independent buckets.
type Scanner struct {
	rest  string
	state scanState

	attributes []string
	atoms      []string
	bonds      []string
	numAtoms   int
	numBonds   int
}

// NewScanner returns a Scanner over the raw document text, in the loaded
// state.
func NewScanner(text string) *Scanner {
	return &Scanner{rest: text, state: loaded}
}

// start skips forward to the first model-scope marker and enters it.
func (S *Scanner) start() error {
	idx := strings.Index(S.rest, modelStart)
	if idx < 0 {
		return &StructuralError{Message: "no model scope in input", Remainder: S.rest}
	}
	t := S.rest[idx+len(modelStart):]
	n, ok := lineEnding(t)
	if !ok {
		return &StructuralError{Message: "model scope marker not followed by a line ending", Remainder: t}
	}
	S.rest = t[n:]
	S.state = started
	return nil
}

// classify inspects the type tag on the first line of an object's content.
// "Atom" objects go to the atom bucket; everything else, "Bond" included,
// goes to the bond bucket. Only the body after the tag line is kept.
func (S *Scanner) classify(content string) {
	tag, body := firstLine(content)
	if tag == "Atom" {
		S.atoms = append(S.atoms, body)
		S.numAtoms++
		return
	}
	S.bonds = append(S.bonds, body)
	S.numBonds++
}

// Scan consumes the whole model scope: it loops the field extractors until
// neither matches, then checks that what remains is exactly the scope
// terminator. On success the scanner is in the analyzed state and the
// buckets are final.
func (S *Scanner) Scan() error {
	if S.state == loaded {
		if err := S.start(); err != nil {
			return err
		}
	}
	for {
		if content, rest, ok := Attribute(S.rest); ok {
			S.attributes = append(S.attributes, content)
			S.rest = rest
			continue
		}
		if content, rest, ok := Object(S.rest); ok {
			S.classify(content)
			S.rest = rest
			continue
		}
		break
	}
	tail := strings.TrimRight(skipIndent(S.rest), " \t\r\n")
	if tail != ")" {
		return &StructuralError{Message: "model scope does not end with its terminator", Remainder: S.rest}
	}
	S.rest = ""
	S.state = analyzed
	return nil
}

// Attributes returns the attribute bucket. Only valid after Scan.
func (S *Scanner) Attributes() []string { return S.attributes }

// AtomBlocks returns the atom bucket. Only valid after Scan.
func (S *Scanner) AtomBlocks() []string { return S.atoms }

// BondBlocks returns the bucket of bond and unrecognized objects. Only
// valid after Scan.
func (S *Scanner) BondBlocks() []string { return S.bonds }

// NumAtoms returns the number of atom objects found.
func (S *Scanner) NumAtoms() int { return S.numAtoms }

// NumBonds returns the number of bond and unrecognized objects found.
func (S *Scanner) NumBonds() int { return S.numBonds }
