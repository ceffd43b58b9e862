/*
 * semantic.go, part of gocryst.
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

import (
	"strconv"
	"strings"

	cryst "github.com/gocryst/gocryst"
	"gonum.org/v1/gonum/spatial/r3"
)

// Semantic extraction of the analyzed buckets. Attribute contents look
// like "I PeriodicType 100", "D A3 (16.39 0 0)" or "C SpaceGroup \"1 1\"":
// a one-letter type tag, the attribute name, and the value.

// attrMap keys every accumulated attribute string by its name token.
// Later duplicates overwrite earlier ones; the format gives no ordering
// guarantee, so last wins is all we can promise.
func attrMap(attributes []string) map[string]string {
	m := make(map[string]string, len(attributes))
	for _, attr := range attributes {
		rest := attr
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			rest = rest[i+1:] // drop the type tag
		} else {
			continue
		}
		i := strings.IndexByte(rest, ' ')
		if i < 0 {
			continue
		}
		m[rest[:i]] = strings.TrimSpace(rest[i+1:])
	}
	return m
}

// parseTriple reads three literals out of a parenthesized value such as
// "(16.39 0 0)".
func parseTriple(value, field string) (r3.Vec, error) {
	s := strings.TrimSpace(value)
	if !strings.HasPrefix(s, "(") {
		return r3.Vec{}, &SemanticError{Field: field, Message: "value is not parenthesized"}
	}
	s = s[1:]
	var out [3]float64
	for i := 0; i < 3; i++ {
		s = strings.TrimLeft(s, " \t")
		v, rest, ok := Number(s)
		if !ok {
			return r3.Vec{}, &SemanticError{Field: field, Message: "expected three numeric literals"}
		}
		out[i] = v
		s = rest
	}
	s = strings.TrimLeft(s, " \t")
	if !strings.HasPrefix(s, ")") {
		return r3.Vec{}, &SemanticError{Field: field, Message: "unterminated coordinate triple"}
	}
	return r3.Vec{X: out[0], Y: out[1], Z: out[2]}, nil
}

// latticeVectors assembles the 3x3 basis from the A3, B3 and C3 keys.
// All three absent means a non-periodic model and is not an error; a
// partial set is.
func latticeVectors(attrs map[string]string) (*cryst.LatticeVectors, error) {
	va, oka := attrs["A3"]
	vb, okb := attrs["B3"]
	vc, okc := attrs["C3"]
	if !oka && !okb && !okc {
		return nil, nil
	}
	if !oka || !okb || !okc {
		return nil, &SemanticError{Field: "A3/B3/C3", Message: "incomplete lattice vector set"}
	}
	a, err := parseTriple(va, "A3")
	if err != nil {
		return nil, err
	}
	b, err := parseTriple(vb, "B3")
	if err != nil {
		return nil, err
	}
	c, err := parseTriple(vc, "C3")
	if err != nil {
		return nil, err
	}
	return cryst.NewLatticeVectors(a, b, c), nil
}

// settings extracts PeriodicType, SpaceGroup and CRY/TOLERANCE, falling
// back to the defaults for any key the file does not carry.
func settings(attrs map[string]string) (*cryst.Settings, error) {
	s := cryst.DefaultSettings()
	if v, ok := attrs["PeriodicType"]; ok {
		tok, _, ok := Decimal(v)
		if !ok {
			return nil, &SemanticError{Field: "PeriodicType", Message: "not an integer: " + v}
		}
		n, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return nil, &SemanticError{Field: "PeriodicType", Message: err.Error()}
		}
		s.PeriodicType = uint8(n)
	}
	if v, ok := attrs["SpaceGroup"]; ok {
		// Kept verbatim: a quoted string holding two integers.
		s.SpaceGroup = strings.Trim(v, "\"")
	}
	if v, ok := attrs["CRY/TOLERANCE"]; ok {
		f, _, ok := Number(v)
		if !ok {
			return nil, &SemanticError{Field: "CRY/TOLERANCE", Message: "not a number: " + v}
		}
		s.CryTolerance = f
	}
	return s, nil
}

// atomRecord is the typed result of extracting one atom block.
type atomRecord struct {
	symbol    string
	atomicNum uint8
	xyz       r3.Vec
	id        uint32
}

// parseAtomBlock re-runs the attribute extractor over one atom block's
// body to recover the species line (quoted "<atomic number> <symbol>"),
// an optional Label line that is tolerated and ignored, the coordinate
// triple and the identifier. Species, coordinates and identifier are each
// mandatory.
func parseAtomBlock(body string) (*atomRecord, error) {
	rec := &atomRecord{}
	haveACL, haveXYZ, haveID := false, false, false
	rest := body
	for {
		content, r, ok := Attribute(rest)
		if !ok {
			// The last line of a block body has no trailing line ending
			// once the object terminator is stripped; retry with one.
			content, r, ok = Attribute(rest + "\n")
			if !ok {
				break
			}
		}
		rest = r
		fields := attrMap([]string{content})
		if v, ok := fields["ACL"]; ok {
			num, sym, err := parseACL(v)
			if err != nil {
				return nil, err
			}
			rec.atomicNum, rec.symbol = num, sym
			haveACL = true
		} else if v, ok := fields["XYZ"]; ok {
			xyz, err := parseTriple(v, "XYZ")
			if err != nil {
				return nil, err
			}
			rec.xyz = xyz
			haveXYZ = true
		} else if v, ok := fields["Id"]; ok {
			tok, _, ok := Decimal(v)
			if !ok {
				return nil, &SemanticError{Field: "Id", Message: "not an integer: " + v}
			}
			id, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				return nil, &SemanticError{Field: "Id", Message: err.Error()}
			}
			rec.id = uint32(id)
			haveID = true
		}
		// Anything else (Label and friends) is tolerated and skipped.
		if rest == "" {
			break
		}
	}
	if !haveACL {
		return nil, &SemanticError{Field: "ACL", Message: "atom block has no species line"}
	}
	if !haveXYZ {
		return nil, &SemanticError{Field: "XYZ", Message: "atom block has no coordinate line"}
	}
	if !haveID {
		return nil, &SemanticError{Field: "Id", Message: "atom block has no identifier line"}
	}
	return rec, nil
}

// parseACL splits a quoted species value such as "\"6 C\"" into the
// atomic number and the element symbol.
func parseACL(value string) (uint8, string, error) {
	v := strings.Trim(strings.TrimSpace(value), "\"")
	tok, rest, ok := Decimal(v)
	if !ok {
		return 0, "", &SemanticError{Field: "ACL", Message: "species line has no atomic number: " + value}
	}
	num, err := strconv.ParseUint(tok, 10, 8)
	if err != nil {
		return 0, "", &SemanticError{Field: "ACL", Message: err.Error()}
	}
	sym := strings.TrimSpace(rest)
	if sym == "" {
		return 0, "", &SemanticError{Field: "ACL", Message: "species line has no element symbol: " + value}
	}
	return uint8(num), sym, nil
}
