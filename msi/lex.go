/*
 * lex.go, part of gocryst.
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

import "strconv"

// The lexers here share one contract: they return the matched span and the
// remaining text, or fail with ok == false leaving the input untouched.
// They never panic and never consume on failure. Every numeric sub-field
// of the format goes through them.

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Decimal matches an unsigned decimal integer literal.
func Decimal(s string) (tok, rest string, ok bool) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// Float matches a floating point literal: an optional sign, digits with a
// decimal point that may lack the integer part ("-.5", "42.", "3.14"), or
// digits followed by an e/E exponent with its own optional sign ("1e9",
// "-2.865153883599e-05"). A bare unsigned integer is not a Float; use
// Decimal or Number for that.
func Float(s string) (tok, rest string, ok bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - intStart
	fracDigits := 0
	hasDot := false
	if i < len(s) && s[i] == '.' {
		hasDot = true
		i++
		for i < len(s) && isDigit(s[i]) {
			fracDigits++
			i++
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return "", s, false
	}
	hasExp := false
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		// An 'e' without digits after it is not an exponent; leave it.
		if k > j {
			i = k
			hasExp = true
		}
	}
	if !hasDot && !hasExp {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// Number matches a Float or, failing that, a Decimal, and parses the
// result. The format writes "0" where "0.0" is meant, so every coordinate
// slot must accept both.
func Number(s string) (val float64, rest string, ok bool) {
	tok, rest, ok := Float(s)
	if !ok {
		tok, rest, ok = Decimal(s)
		if !ok {
			return 0, s, false
		}
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, s, false
	}
	return v, rest, true
}
