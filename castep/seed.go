/*
 * seed.go, part of gocryst.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/cell"
	"github.com/gocryst/gocryst/msi"
	"gopkg.in/yaml.v3"
)

// JobConfig is the yaml description of a batch of seed exports: where
// the potentials live, where the seeds go, and which scheduler scripts
// to emit.
type JobConfig struct {
	PotentialsDir string `yaml:"potentials_dir"`
	ExportDir     string `yaml:"export_dir"`
	UseEDFT       bool   `yaml:"edft"`
	// WriteScripts selects which job scripts accompany each seed.
	// Recognized values are "lsf" and "pbs".
	WriteScripts []string `yaml:"scripts"`
	CastepCmd    string   `yaml:"castep_cmd,omitempty"`
}

// LoadJobConfig reads a yaml job description from path.
func LoadJobConfig(path string) (*JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errDecorate(err, "LoadJobConfig")
	}
	cfg := new(JobConfig)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errDecorate(err, "LoadJobConfig")
	}
	if cfg.CastepCmd == "" {
		cfg.CastepCmd = "/home-yw/Soft/msi/MS70/MaterialsStudio7.0/etc/CASTEP/bin/RunCASTEP.sh"
	}
	return cfg, nil
}

// SeedWriter writes the full set of files CASTEP needs to run a job on
// a cell: the .cell and .param pair, the Materials Studio auxiliary
// files, the pseudopotentials and a scheduler script.
type SeedWriter struct {
	model         *cryst.Model
	param         *Param
	seedName      string
	exportDir     string
	potentialsDir string
	castepCmd     string
	scripts       []string
}

// NewSeedWriter prepares a writer for the given cell-dialect model.
// The .param content is derived from the model: the total spin from its
// elements and the cutoff energy from the potential files found under
// potentialsDir.
func NewSeedWriter(m *cryst.Model, seedName, exportDir, potentialsDir string, useEDFT bool) (*SeedWriter, error) {
	cutoff, err := FinalCutoffEnergy(m, potentialsDir)
	if err != nil {
		return nil, errDecorate(err, "NewSeedWriter")
	}
	spin, err := SpinTotal(m)
	if err != nil {
		return nil, errDecorate(err, "NewSeedWriter")
	}
	return &SeedWriter{
		model:         m,
		param:         NewParam(GeometryOptimization, cutoff, spin, useEDFT),
		seedName:      seedName,
		exportDir:     exportDir,
		potentialsDir: potentialsDir,
		castepCmd:     "/home-yw/Soft/msi/MS70/MaterialsStudio7.0/etc/CASTEP/bin/RunCASTEP.sh",
		scripts:       []string{"lsf", "pbs"},
	}, nil
}

// SeedName returns the seed name the output files are based on.
func (w *SeedWriter) SeedName() string { return w.seedName }

// Param returns the .param content to be written, for adjustment
// before WriteSeedFiles.
func (w *SeedWriter) Param() *Param { return w.param }

// SetCastepCmd overrides the CASTEP launcher path used in the LSF
// script.
func (w *SeedWriter) SetCastepCmd(cmd string) { w.castepCmd = cmd }

// SetScripts selects which scheduler scripts WriteSeedFiles emits.
// Recognized names are "lsf" and "pbs"; both are written by default.
func (w *SeedWriter) SetScripts(names []string) { w.scripts = names }

// ExportDir creates and returns the directory the seed files go to,
// named after the seed with an "_opt" suffix.
func (w *SeedWriter) ExportDir() (string, error) {
	dir := filepath.Join(w.exportDir, w.seedName+"_opt")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errDecorate(err, "ExportDir")
	}
	return dir, nil
}

func (w *SeedWriter) seedPath(extension string) (string, error) {
	dir, err := w.ExportDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, w.seedName+extension), nil
}

func (w *SeedWriter) writeSeedFile(extension, content string) error {
	path, err := w.seedPath(extension)
	if err != nil {
		return errDecorate(err, "writeSeedFile")
	}
	return WriteTextFile(path, content)
}

// WriteSeedFiles writes the geometry optimization seed: the .cell,
// .param, .kptaux, .trjaux and .msi files, the band structure followup
// (_DOS variants) and the scheduler scripts.
func (w *SeedWriter) WriteSeedFiles() error {
	cellText, err := cell.Export(w.model)
	if err != nil {
		return errDecorate(err, "WriteSeedFiles")
	}
	if err := w.writeSeedFile(".cell", cellText); err != nil {
		return err
	}
	if err := w.writeSeedFile(".param", w.param.Export()); err != nil {
		return err
	}
	kpt := NewKptAux(w.model).Export()
	if err := w.writeSeedFile(".kptaux", kpt); err != nil {
		return err
	}
	if err := w.writeSeedFile("_DOS.kptaux", kpt); err != nil {
		return err
	}
	if err := w.writeSeedFile(".trjaux", NewTrjAux(w.model).Export()); err != nil {
		return err
	}
	msiModel, err := cell.ToMsi(w.model)
	if err != nil {
		return errDecorate(err, "WriteSeedFiles")
	}
	if err := w.writeSeedFile(".msi", msi.Export(msiModel)); err != nil {
		return err
	}
	if err := w.writeBandStructureFiles(); err != nil {
		return err
	}
	for _, name := range w.scripts {
		var err error
		switch name {
		case "lsf":
			err = w.writeLSFScript()
		case "pbs":
			err = w.writePBSScript()
		default:
			err = fmt.Errorf("unknown scheduler script %q", name)
		}
		if err != nil {
			return errDecorate(err, "WriteSeedFiles")
		}
	}
	return nil
}

// writeBandStructureFiles writes the _DOS.cell and _DOS.param pair for
// the band structure run following the relaxation.
func (w *SeedWriter) writeBandStructureFiles() error {
	bsCell, err := cell.ExportBS(w.model)
	if err != nil {
		return errDecorate(err, "writeBandStructureFiles")
	}
	if err := w.writeSeedFile("_DOS.cell", bsCell); err != nil {
		return err
	}
	bsParam := NewParam(BandStructure, w.param.CutOffEnergy, w.param.Spin, false)
	bsParam.Metals = w.param.Metals
	return w.writeSeedFile("_DOS.param", bsParam.Export())
}

// CopyPotentials copies the potential file of every element in the
// cell into the seed directory. Files already present are left alone.
func (w *SeedWriter) CopyPotentials() error {
	dir, err := w.ExportDir()
	if err != nil {
		return err
	}
	for _, elm := range w.model.ElementSet() {
		e, err := cryst.LookupElement(elm)
		if err != nil {
			return errDecorate(err, "CopyPotentials")
		}
		dest := filepath.Join(dir, e.Potential)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		src, err := os.Open(filepath.Join(w.potentialsDir, e.Potential))
		if err != nil {
			return errDecorate(err, "CopyPotentials")
		}
		out, err := os.Create(dest)
		if err != nil {
			src.Close()
			return errDecorate(err, "CopyPotentials")
		}
		_, err = io.Copy(out, src)
		src.Close()
		out.Close()
		if err != nil {
			return errDecorate(err, "CopyPotentials")
		}
	}
	return nil
}

func (w *SeedWriter) writeLSFScript() error {
	dir, err := w.ExportDir()
	if err != nil {
		return err
	}
	prefix := "APP_NAME=intelY_mid\nNP=12\nNP_PER_NODE=12\nOMP_NUM_THREADS=1\nRUN=\"RAW\"\n\n"
	cmd := fmt.Sprintf("%s -np $NP %s", w.castepCmd, w.seedName)
	return WriteTextFile(filepath.Join(dir, "MS70_YW_CASTEP.lsf"), prefix+cmd)
}

const pbsTemplate = `#PBS -N HPL_short_run
#PBS -q simple_q
#PBS -l walltime=168:00:00
#PBS -l nodes=1:ppn=24
#PBS -V

cd $PBS_O_WORKDIR

NCPU=` + "`wc -l < $PBS_NODEFILE`" + `
NNODES=` + "`uniq $PBS_NODEFILE | wc -l`" + `

echo ------------------------------------------------------
echo ' This job is allocated on '${NCPU}' cpu(s)'
echo 'Job is running on node(s): '
cat $PBS_NODEFILE
echo ------------------------------------------------------
echo PBS: qsub is running on $PBS_O_HOST
echo PBS: originating queue is $PBS_O_QUEUE
echo PBS: executing queue is $PBS_QUEUE
echo PBS: working directory is $PBS_O_WORKDIR
echo PBS: execution mode is $PBS_ENVIRONMENT
echo PBS: job identifier is $PBS_JOBID
echo PBS: job name is $PBS_JOBNAME
echo PBS: node file is $PBS_NODEFILE
echo PBS: number of nodes is $NNODES
echo PBS: current home directory is $PBS_O_HOME
echo PBS: PATH = $PBS_O_PATH
echo ------------------------------------------------------

##For openmpi-intel
##export LD_LIBRARY_PATH=/share/apps/openmpi-1.8.8-intel/lib:$LD_LIBRARY_PATH
##export PATH=/share/apps/openmpi-1.8.8-intel/bin:$PATH

cat $PBS_NODEFILE >./hostfile
`

func (w *SeedWriter) writePBSScript() error {
	dir, err := w.ExportDir()
	if err != nil {
		return err
	}
	runCmd := fmt.Sprintf("mpirun --mca btl ^tcp --hostfile hostfile /home/bhuang/castep.mpi %s", w.seedName)
	script := pbsTemplate + runCmd + "\nrm ./hostfile"
	return WriteTextFile(filepath.Join(dir, "hpc.pbs.sh"), script)
}

// SpinTotal sums the formal spins of all atoms in the model, in units
// of hbar/2.
func SpinTotal(m *cryst.Model) (uint32, error) {
	var total uint32
	for _, symbol := range m.Atoms().Symbols() {
		e, err := cryst.LookupElement(symbol)
		if err != nil {
			return 0, errDecorate(err, "SpinTotal")
		}
		total += uint32(e.Spin)
	}
	return total, nil
}

// FinalCutoffEnergy finds the plane wave cutoff to use for a cell: the
// largest fine quality cutoff among the potential files of its
// elements, rounded up to the next multiple of 25 eV.
func FinalCutoffEnergy(m *cryst.Model, potentialsDir string) (float64, error) {
	var max float64
	for _, elm := range m.ElementSet() {
		e, err := cryst.LookupElement(elm)
		if err != nil {
			return 0, errDecorate(err, "FinalCutoffEnergy")
		}
		cutoff, err := fineCutoff(filepath.Join(potentialsDir, e.Potential))
		if err != nil {
			return 0, errDecorate(err, "FinalCutoffEnergy")
		}
		if cutoff > max {
			max = cutoff
		}
	}
	return math.Ceil(max/25.0) * 25.0, nil
}

// fineCutoff scans a pseudopotential file for its FINE quality line
// and returns the cutoff it quotes, in eV.
func fineCutoff(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errDecorate(err, "fineCutoff")
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 2 && fields[1] == "FINE" {
			v, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return 0, errDecorate(err, "fineCutoff")
			}
			return v, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, errDecorate(err, "fineCutoff")
	}
	return 0, fmt.Errorf("fineCutoff: no FINE cutoff line in %s", path)
}
