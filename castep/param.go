/*
 * param.go, part of gocryst.
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

package castep

import (
	"fmt"
	"strconv"
	"strings"
)

// expFloat formats x in scientific notation with prec digits after the
// decimal point, right-aligned in width columns. The exponent carries no
// plus sign and no leading zeros, the form Materials Studio writes, so
// 1e-5 comes out as "1.000000000000000e-5" rather than Go's
// "1.000000000000000e-05".
func expFloat(x float64, width, prec int) string {
	s := strconv.FormatFloat(x, 'e', prec, 64)
	i := strings.LastIndexByte(s, 'e')
	mantissa, exp := s[:i], s[i+1:]
	sign := ""
	if exp[0] == '+' {
		exp = exp[1:]
	} else if exp[0] == '-' {
		sign = "-"
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return fmt.Sprintf("%*s", width, mantissa+"e"+sign+exp)
}

// Task selects which kind of CASTEP calculation a .param file drives.
type Task int

const (
	GeometryOptimization Task = iota
	BandStructure
)

func (t Task) String() string {
	switch t {
	case GeometryOptimization:
		return "GeometryOptimization"
	case BandStructure:
		return "BandStructure"
	default:
		return "Unknown"
	}
}

// MetalsMethod is the electronic minimization scheme written into the
// .param file. The two supported schemes are density mixing and
// ensemble DFT.
type MetalsMethod interface {
	paramLines() string
}

// DensityMixing is the dm metals method with Pulay mixing.
type DensityMixing struct {
	MixingScheme     string
	MixChargeAmp     float64
	MixSpinAmp       float64
	MixChargeGmax    float64
	MixSpinGmax      float64
	MixHistoryLength uint32
}

// NewDensityMixing returns the default Pulay density mixing settings.
func NewDensityMixing() *DensityMixing {
	return &DensityMixing{
		MixingScheme:     "Pulay",
		MixChargeAmp:     0.5,
		MixSpinAmp:       2.0,
		MixChargeGmax:    1.5,
		MixSpinGmax:      1.5,
		MixHistoryLength: 20,
	}
}

func (d *DensityMixing) paramLines() string {
	var b strings.Builder
	b.WriteString("metals_method : dm\n")
	fmt.Fprintf(&b, "mixing_scheme : %s\n", d.MixingScheme)
	fmt.Fprintf(&b, "mix_charge_amp : %18.15f\n", d.MixChargeAmp)
	fmt.Fprintf(&b, "mix_spin_amp : %18.15f\n", d.MixSpinAmp)
	fmt.Fprintf(&b, "mix_charge_gmax : %18.15f\n", d.MixChargeGmax)
	fmt.Fprintf(&b, "mix_spin_gmax : %18.15f\n", d.MixSpinGmax)
	fmt.Fprintf(&b, "mix_history_length : %d\n", d.MixHistoryLength)
	return b.String()
}

// EDFT is the ensemble DFT metals method.
type EDFT struct {
	NumOccCycles uint32
}

// NewEDFT returns the default ensemble DFT settings.
func NewEDFT() *EDFT {
	return &EDFT{NumOccCycles: 6}
}

func (e *EDFT) paramLines() string {
	var b strings.Builder
	b.WriteString("metals_method : edft\n")
	fmt.Fprintf(&b, "num_occ_cycles : %d\n", e.NumOccCycles)
	return b.String()
}

// GeomOptOptions are the parameters specific to a geometry
// optimization task.
type GeomOptOptions struct {
	GeomEnergyTol  float64
	GeomForceTol   float64
	GeomStressTol  float64
	GeomDispTol    float64
	GeomMaxIter    uint32
	GeomMethod     string
	PopnBondCutoff float64
}

// DefaultGeomOptOptions returns the BFGS settings used for relaxation
// runs.
func DefaultGeomOptOptions() GeomOptOptions {
	return GeomOptOptions{
		GeomEnergyTol:  5e-5,
		GeomForceTol:   0.1,
		GeomStressTol:  0.2,
		GeomDispTol:    0.005,
		GeomMaxIter:    6000,
		GeomMethod:     "BFGS",
		PopnBondCutoff: 3.0,
	}
}

// BandStructureOptions are the parameters specific to a band structure
// task.
type BandStructureOptions struct {
	BSNExtraBands      uint32
	BSXCFunctional     string
	BSEigenvalueTol    float64
	BSWriteEigenvalues bool
}

// DefaultBandStructureOptions returns the settings used for band
// structure runs following a relaxation.
func DefaultBandStructureOptions() BandStructureOptions {
	return BandStructureOptions{
		BSNExtraBands:      72,
		BSXCFunctional:     "PBE",
		BSEigenvalueTol:    1e-5,
		BSWriteEigenvalues: true,
	}
}

// Param holds the contents of a CASTEP .param file. The zero value is
// not usable; build one with NewParam.
type Param struct {
	Task          Task
	XCFunctional  string
	SpinPolarized bool
	// Total spin of the cell, in units of hbar/2.
	Spin            uint32
	OptStrategy     string
	CutOffEnergy    float64
	GridScale       float64
	FineGridScale   float64
	FiniteBasisCorr uint8
	ElecEnergyTol   float64
	MaxSCFCycles    uint32
	FixOccupancy    bool
	Metals          MetalsMethod
	PercExtraBands  uint32
	SmearingWidth   float64
	SpinFix         uint32
	NumDumpCycles   uint32

	GeomOpt GeomOptOptions
	BS      BandStructureOptions

	CalculateELF              bool
	CalculateStress           bool
	PopnCalculate             bool
	CalculateHirshfeld        bool
	CalculateDensdiff         bool
	PDOSCalculateWeights      bool
	WriteOrbitals             bool
	WriteCheckpoints          string
	PopnOutputAngularMomentum bool
}

// NewParam builds a .param content with the defaults for the given
// task. The cutoff energy depends on the potentials used and the spin
// on the cell contents, so both are arguments. useEDFT selects the
// ensemble DFT minimizer over density mixing.
func NewParam(task Task, cutoffEnergy float64, spin uint32, useEDFT bool) *Param {
	var metals MetalsMethod
	if useEDFT {
		metals = NewEDFT()
	} else {
		metals = NewDensityMixing()
	}
	p := &Param{
		Task:                 task,
		XCFunctional:         "PBE",
		SpinPolarized:        true,
		Spin:                 spin,
		OptStrategy:          "Speed",
		CutOffEnergy:         cutoffEnergy,
		GridScale:            1.5,
		FineGridScale:        1.5,
		FiniteBasisCorr:      0,
		ElecEnergyTol:        1e-5,
		MaxSCFCycles:         6000,
		FixOccupancy:         false,
		Metals:               metals,
		PercExtraBands:       72,
		SmearingWidth:        0.1,
		SpinFix:              6,
		NumDumpCycles:        0,
		GeomOpt:              DefaultGeomOptOptions(),
		BS:                   DefaultBandStructureOptions(),
		CalculateELF:         false,
		CalculateStress:      false,
		PopnCalculate:        task != BandStructure,
		CalculateHirshfeld:   task != BandStructure,
		CalculateDensdiff:    false,
		PDOSCalculateWeights: true,
		WriteCheckpoints:     "ALL",
	}
	return p
}

// Export serializes the .param file content.
func (p *Param) Export() string {
	var b strings.Builder
	fmt.Fprintf(&b, "task : %s\n", p.Task)
	b.WriteString("comment : CASTEP calculation from Materials Studio\n")
	fmt.Fprintf(&b, "xc_functional : %s\n", p.XCFunctional)
	fmt.Fprintf(&b, "spin_polarized : %t\n", p.SpinPolarized)
	fmt.Fprintf(&b, "spin :        %d\n", p.Spin)
	fmt.Fprintf(&b, "opt_strategy : %s\n", p.OptStrategy)
	fmt.Fprintf(&b, "page_wvfns :        0\n")
	fmt.Fprintf(&b, "cut_off_energy : %18.15f\n", p.CutOffEnergy)
	fmt.Fprintf(&b, "grid_scale : %18.15f\n", p.GridScale)
	fmt.Fprintf(&b, "fine_grid_scale : %18.15f\n", p.FineGridScale)
	fmt.Fprintf(&b, "finite_basis_corr : %8d\n", p.FiniteBasisCorr)
	fmt.Fprintf(&b, "elec_energy_tol : %s\n", expFloat(p.ElecEnergyTol, 18, 15))
	fmt.Fprintf(&b, "max_scf_cycles : %8d\n", p.MaxSCFCycles)
	fmt.Fprintf(&b, "fix_occupancy : %t\n", p.FixOccupancy)
	b.WriteString(p.Metals.paramLines())
	fmt.Fprintf(&b, "perc_extra_bands : %d\n", p.PercExtraBands)
	fmt.Fprintf(&b, "smearing_width : %18.15f\n", p.SmearingWidth)
	fmt.Fprintf(&b, "spin_fix : %8d\n", p.SpinFix)
	fmt.Fprintf(&b, "num_dump_cycles : %d\n", p.NumDumpCycles)

	switch p.Task {
	case GeometryOptimization:
		g := p.GeomOpt
		fmt.Fprintf(&b, "geom_energy_tol : %s\n", expFloat(g.GeomEnergyTol, 22, 15))
		fmt.Fprintf(&b, "geom_force_tol : %18.15f\n", g.GeomForceTol)
		fmt.Fprintf(&b, "geom_stress_tol : %18.15f\n", g.GeomStressTol)
		fmt.Fprintf(&b, "geom_disp_tol : %18.15f\n", g.GeomDispTol)
		fmt.Fprintf(&b, "geom_max_iter : %8d\n", g.GeomMaxIter)
		fmt.Fprintf(&b, "geom_method : %s\n", g.GeomMethod)
		fmt.Fprintf(&b, "fixed_npw : false\n")
		fmt.Fprintf(&b, "popn_bond_cutoff : %18.15f\n", g.PopnBondCutoff)
	case BandStructure:
		s := p.BS
		fmt.Fprintf(&b, "bs_nextra_bands : %8d\n", s.BSNExtraBands)
		fmt.Fprintf(&b, "bs_xc_functional : %s\n", s.BSXCFunctional)
		fmt.Fprintf(&b, "bs_eigenvalue_tol : %s\n", expFloat(s.BSEigenvalueTol, 22, 15))
		fmt.Fprintf(&b, "bs_write_eigenvalues : %t\n", s.BSWriteEigenvalues)
	}

	fmt.Fprintf(&b, "calculate_ELF : %t\n", p.CalculateELF)
	fmt.Fprintf(&b, "calculate_stress : %t\n", p.CalculateStress)
	fmt.Fprintf(&b, "popn_calculate : %t\n", p.PopnCalculate)
	fmt.Fprintf(&b, "calculate_hirshfeld : %t\n", p.CalculateHirshfeld)
	fmt.Fprintf(&b, "calculate_densdiff : %t\n", p.CalculateDensdiff)
	fmt.Fprintf(&b, "pdos_calculate_weights : %t\n", p.PDOSCalculateWeights)
	fmt.Fprintf(&b, "write_orbitals : %t\n", p.WriteOrbitals)
	fmt.Fprintf(&b, "write_checkpoint : %s\n", p.WriteCheckpoints)
	fmt.Fprintf(&b, "popn_output_angular_momentum : %t", p.PopnOutputAngularMomentum)
	return b.String()
}
