/*
 * field_test.go, part of gocryst.
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

import "testing"

func TestAttribute(Te *testing.T) {
	content, rest, ok := Attribute("  (A I PeriodicType 100)\nnext")
	if !ok || content != "I PeriodicType 100" || rest != "next" {
		Te.Errorf("Attribute = %q, %q, %v", content, rest, ok)
	}
	// A parenthesized value must not terminate the field early.
	content, _, ok = Attribute("  (A I CRY/DISPLAY (192 256))\n")
	if !ok || content != "I CRY/DISPLAY (192 256)" {
		Te.Errorf("parenthesized value: %q, %v", content, ok)
	}
	// DOS line endings.
	content, rest, ok = Attribute("(A D A3 (16.39 0 0))\r\ntail")
	if !ok || content != "D A3 (16.39 0 0)" || rest != "tail" {
		Te.Errorf("crlf: %q, %q, %v", content, rest, ok)
	}
	// An object field is not an attribute.
	if _, _, ok := Attribute("(2 Atom\n)"); ok {
		Te.Error("Attribute matched an object field")
	}
	// Failure must not consume input.
	_, rest, ok = Attribute("plain text")
	if ok || rest != "plain text" {
		Te.Errorf("failure consumed input: %q, %v", rest, ok)
	}
}

func TestObject(Te *testing.T) {
	in := "  (2 Atom\n    (A C ACL \"6 C\")\n    (A I Id 1)\n  )\nnext"
	content, rest, ok := Object(in)
	if !ok {
		Te.Fatal("Object failed")
	}
	tag, body := firstLine(content)
	if tag != "Atom" {
		Te.Errorf("tag = %q", tag)
	}
	if body != "    (A C ACL \"6 C\")\n    (A I Id 1)" {
		Te.Errorf("body = %q", body)
	}
	if rest != "next" {
		Te.Errorf("rest = %q", rest)
	}
}

func TestObjectTerminatorAtEOF(Te *testing.T) {
	content, rest, ok := Object("(3 Bond\n    (A O Atom1 1)\n  )")
	if !ok || rest != "" {
		Te.Fatalf("Object at EOF = %q, %q, %v", content, rest, ok)
	}
	tag, _ := firstLine(content)
	if tag != "Bond" {
		Te.Errorf("tag = %q", tag)
	}
}

// A body line that itself ends in ")" must not be taken for the object
// terminator; only an indentation-only line qualifies.
func TestObjectBodyParenLine(Te *testing.T) {
	in := "(2 Atom\n    (A D XYZ (0.5 0.5 0.5))\n  )\n"
	content, _, ok := Object(in)
	if !ok {
		Te.Fatal("Object failed")
	}
	_, body := firstLine(content)
	if body != "    (A D XYZ (0.5 0.5 0.5))" {
		Te.Errorf("body = %q", body)
	}
}
