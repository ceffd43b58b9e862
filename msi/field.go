/*
 * field.go, part of gocryst.
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

// Field extraction. Both extractors share one contract: consume leading
// indentation, pick one field, return its contents and the remaining
// text, or fail with ok == false without consuming anything. A document
// uses either "\n" or "\r\n" endings; the extractors take each line as it
// comes and do not assume which convention is in effect.

// skipIndent returns s without leading spaces and tabs, staying on the
// same line.
func skipIndent(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

// lineEnding reports whether s starts with a line ending, and its length.
func lineEnding(s string) (n int, ok bool) {
	if strings.HasPrefix(s, "\r\n") {
		return 2, true
	}
	if strings.HasPrefix(s, "\n") {
		return 1, true
	}
	return 0, false
}

// Attribute extracts an attribute field "(A <content>)". The field spans
// to the first close-paren immediately followed by a line ending, which
// distinguishes the field's own terminator from parenthesized values such
// as "(A I CRY/DISPLAY (192 256))". The returned content is what sits
// between "A " and that terminator.
func Attribute(s string) (content, rest string, ok bool) {
	t := skipIndent(s)
	if !strings.HasPrefix(t, "(A ") {
		return "", s, false
	}
	t = t[len("(A "):]
	for i := 0; i < len(t); i++ {
		if t[i] != ')' {
			continue
		}
		if n, end := lineEnding(t[i+1:]); end {
			return t[:i], t[i+1+n:], true
		}
	}
	return "", s, false
}

// Object extracts an object field "(<index> <tag>\n<body>)". Objects nest
// attribute fields in their body, so the terminator is a close-paren
// sitting on a line of its own: a line ending, indentation only, then ")"
// and another line ending (or end of input). The returned content starts
// at the type tag and keeps the body's internal lines; the index is
// consumed and dropped.
func Object(s string) (content, rest string, ok bool) {
	t := skipIndent(s)
	if !strings.HasPrefix(t, "(") {
		return "", s, false
	}
	t = t[1:]
	_, t, ok = Decimal(t)
	if !ok {
		return "", s, false
	}
	if !strings.HasPrefix(t, " ") {
		return "", s, false
	}
	t = t[1:]
	// Walk line by line looking for the terminator line.
	for i := 0; i < len(t); i++ {
		if t[i] != '\n' {
			continue
		}
		j := i + 1
		for j < len(t) && (t[j] == ' ' || t[j] == '\t') {
			j++
		}
		if j >= len(t) || t[j] != ')' {
			continue
		}
		after := t[j+1:]
		if n, end := lineEnding(after); end {
			return t[:i], after[n:], true
		}
		if after == "" {
			return t[:i], "", true
		}
	}
	return "", s, false
}

// firstLine splits content into its first line (without any trailing
// carriage return) and the rest.
func firstLine(content string) (line, rest string) {
	i := strings.IndexByte(content, '\n')
	if i < 0 {
		return strings.TrimSuffix(content, "\r"), ""
	}
	return strings.TrimSuffix(content[:i], "\r"), content[i+1:]
}
