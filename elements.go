/*
 * elements.go, part of gocryst.
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

// Element holds the per-species reference data needed by the CELL species
// tables and the seed writer: mass, pseudopotential file name, default
// spin and the number of angular momentum channels in the LCAO basis.
type Element struct {
	Symbol    string
	Number    uint8
	Mass      float64
	Potential string
	Spin      int
	LCAO      int
}

// Note that only elements that show up in the supported pseudopotential
// library are present. Masses are in amu.
var elementTable = []Element{
	{"H", 1, 1.0079, "H_00.usp", 0, 1},
	{"He", 2, 4.0026, "He_00.usp", 0, 1},
	{"Li", 3, 6.941, "Li_00.usp", 0, 2},
	{"Be", 4, 9.0122, "Be_00.usp", 0, 2},
	{"B", 5, 10.811, "B_00.usp", 0, 2},
	{"C", 6, 12.0107, "C_00.usp", 0, 2},
	{"N", 7, 14.0067, "N_00.usp", 0, 2},
	{"O", 8, 15.9994, "O_00.usp", 0, 2},
	{"F", 9, 18.9984, "F_00.usp", 0, 2},
	{"Ne", 10, 20.1797, "Ne_00.usp", 0, 2},
	{"Na", 11, 22.9897, "Na_00.usp", 0, 2},
	{"Mg", 12, 24.305, "Mg_00.usp", 0, 2},
	{"Al", 13, 26.9815, "Al_00.usp", 0, 2},
	{"Si", 14, 28.0855, "Si_00.usp", 0, 2},
	{"P", 15, 30.9738, "P_00.usp", 0, 2},
	{"S", 16, 32.065, "S_00.usp", 0, 2},
	{"Cl", 17, 35.453, "Cl_00.usp", 0, 2},
	{"Ar", 18, 39.948, "Ar_00.usp", 0, 2},
	{"K", 19, 39.0983, "K_00.usp", 0, 3},
	{"Ca", 20, 40.078, "Ca_00.usp", 0, 3},
	{"Sc", 21, 44.9559, "Sc_00.usp", 1, 3},
	{"Ti", 22, 47.867, "Ti_00.uspcc", 2, 3},
	{"V", 23, 50.9415, "V_00.uspcc", 3, 3},
	{"Cr", 24, 51.9961, "Cr_00.uspcc", 6, 3},
	{"Mn", 25, 54.938, "Mn_00.uspcc", 5, 3},
	{"Fe", 26, 55.845, "Fe_00.uspcc", 4, 3},
	{"Co", 27, 58.9332, "Co_00.uspcc", 3, 3},
	{"Ni", 28, 58.6934, "Ni_00.uspcc", 2, 3},
	{"Cu", 29, 63.546, "Cu_00.usp", 0, 3},
	{"Zn", 30, 65.39, "Zn_00.usp", 0, 3},
	{"Ga", 31, 69.723, "Ga_00.usp", 0, 3},
	{"Ge", 32, 72.64, "Ge_00.usp", 0, 3},
	{"As", 33, 74.9216, "As_00.usp", 0, 3},
	{"Se", 34, 78.96, "Se_00.usp", 0, 3},
	{"Br", 35, 79.904, "Br_00.usp", 0, 3},
	{"Kr", 36, 83.8, "Kr_00.usp", 0, 3},
	{"Rb", 37, 85.4678, "Rb_00.usp", 0, 3},
	{"Sr", 38, 87.62, "Sr_00.usp", 0, 3},
	{"Y", 39, 88.9059, "Y_00.usp", 0, 3},
	{"Zr", 40, 91.224, "Zr_00.usp", 0, 3},
	{"Nb", 41, 92.9064, "Nb_00.usp", 1, 3},
	{"Mo", 42, 95.94, "Mo_00.usp", 0, 3},
	{"Ru", 44, 101.07, "Ru_00.usp", 0, 3},
	{"Rh", 45, 102.9055, "Rh_00.usp", 0, 3},
	{"Pd", 46, 106.42, "Pd_00.usp", 0, 3},
	{"Ag", 47, 107.8682, "Ag_00.usp", 0, 3},
	{"Cd", 48, 112.411, "Cd_00.usp", 0, 3},
	{"In", 49, 114.818, "In_00.usp", 0, 3},
	{"Sn", 50, 118.71, "Sn_00.usp", 0, 3},
	{"Sb", 51, 121.76, "Sb_00.usp", 0, 3},
	{"Te", 52, 127.6, "Te_00.usp", 0, 3},
	{"I", 53, 126.9045, "I_00.usp", 0, 3},
	{"Xe", 54, 131.293, "Xe_00.usp", 0, 3},
	{"Cs", 55, 132.9055, "Cs_00.usp", 0, 4},
	{"Ba", 56, 137.327, "Ba_00.usp", 0, 4},
	{"W", 74, 183.84, "W_00.usp", 0, 4},
	{"Re", 75, 186.207, "Re_00.usp", 0, 4},
	{"Os", 76, 190.23, "Os_00.usp", 0, 4},
	{"Ir", 77, 192.217, "Ir_00.usp", 0, 4},
	{"Pt", 78, 195.078, "Pt_00.usp", 0, 4},
	{"Au", 79, 196.9665, "Au_00.usp", 0, 4},
	{"Hg", 80, 200.59, "Hg_00.usp", 0, 4},
	{"Pb", 82, 207.2, "Pb_00.usp", 0, 4},
}

var elementsBySymbol = func() map[string]*Element {
	m := make(map[string]*Element, len(elementTable))
	for i := range elementTable {
		m[elementTable[i].Symbol] = &elementTable[i]
	}
	return m
}()

// LookupElement returns the reference data for the given element symbol.
// It returns an error when the symbol is not in the table, so callers can
// fail before writing a species table with holes in it.
func LookupElement(symbol string) (*Element, error) {
	elm, ok := elementsBySymbol[symbol]
	if !ok {
		return nil, fmt.Errorf("gocryst: no reference data for element %q", symbol)
	}
	return elm, nil
}
