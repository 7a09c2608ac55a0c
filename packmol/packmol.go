/*
 * packmol.go, part of molbuild.
 *
 * Copyright 2024 The molbuild developers
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

//In order to use this package you need the packmol program, which must be
//obtained separately (https://m3g.github.io/packmol/). Please cite the
//packmol references if you used the program.

//Package packmol fills geometric regions with solvent molecules by driving
//the external packmol program. The input files are staged in a scratch
//directory, packmol runs there through an explicit working-directory
//argument (the process-wide working directory is never changed), and the
//combined system is read back from its output.
package packmol

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/molbuild/molbuild"
)

//go:embed water.xyz
var waterXYZ []byte

//Error messages for this package.
const (
	ErrNotInstalled  = "packmol executable not found; install it from https://m3g.github.io/packmol/ or point SetCommand at it"
	ErrRunFailed     = "packmol exited abnormally"
	ErrMissingRegion = "need a structure, a geometry, or both"
	ErrNoInput       = "no input was built; call BuildInput before Run"
	ErrNoOutput      = "packmol produced no output file"
	ErrUnsupported   = "geometry cannot constrain a packmol region"
)

//Error is the error type for the packmol package.
type Error struct {
	message   string
	program   string
	filename  string
	extrainfo string
	deco      []string
	critical  bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	s := fmt.Sprintf("%s: %s", err.program, err.message)
	if err.filename != "" {
		s += " (" + err.filename + ")"
	}
	if err.extrainfo != "" {
		s += ": " + err.extrainfo
	}
	return s
}

//Decorate adds dec to the decoration slice of the error and returns the
//resulting slice. An empty string only returns the current value.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical reports whether the error can be ignored.
func (err Error) Critical() bool { return err.critical }

const (
	soluteFile = "solute.xyz"
	waterFile  = "water.xyz"
	inputFile  = "input.inp"
	outputFile = "packed.xyz"
)

//Handle drives one packmol run: BuildInput, then Run, then Result.
//A Handle is not safe for concurrent use.
type Handle struct {
	command   string
	workdir   string
	ownsDir   bool
	tolerance float64
	pbcMargin float64
	timeout   time.Duration
	nfixed    int
	solute    *molbuild.Structure
	built     bool
}

//NewHandle returns a Handle with the default settings.
func NewHandle() *Handle {
	h := new(Handle)
	h.SetDefaults()
	return h
}

//SetDefaults sets the packmol executable name, a 2.0 angstrom minimum
//separation tolerance and a 10 minute wall-clock limit.
func (O *Handle) SetDefaults() {
	O.command = "packmol"
	O.tolerance = 2.0
	O.timeout = 10 * time.Minute
}

//SetCommand sets the packmol executable to run.
func (O *Handle) SetCommand(name string) { O.command = name }

//Command returns the packmol executable that will be run.
func (O *Handle) Command() string { return O.command }

//SetWorkDir sets the scratch directory. If never called, a temporary
//directory is created by BuildInput and removed by Clean.
func (O *Handle) SetWorkDir(dir string) { O.workdir = dir }

//WorkDir returns the scratch directory, empty before BuildInput.
func (O *Handle) WorkDir() string { return O.workdir }

//SetTolerance sets the minimum separation between packed molecules, in
//angstroms.
func (O *Handle) SetTolerance(tol float64) { O.tolerance = tol }

//SetPBCMargin shrinks the packing region derived from a structure's
//bounding box by the given length per axis, keeping solvent away from
//periodic images.
func (O *Handle) SetPBCMargin(m float64) { O.pbcMargin = m }

//SetTimeout bounds the wall-clock time of the packmol subprocess.
//Zero disables the limit.
func (O *Handle) SetTimeout(d time.Duration) { O.timeout = d }

//BuildInput stages the scratch directory for packing nmol water molecules.
//At least one of s and g must be given. s, if present, is held fixed at its
//position and packed around; g, if present, constrains the filled region,
//with side "in" or "out" selecting which side of it. With only s, the fill
//region is the bounding box of s shrunk by the periodic margin.
func (O *Handle) BuildInput(s *molbuild.Structure, g molbuild.Geometry, nmol int, side string) error {
	if s == nil && g == nil {
		return Error{ErrMissingRegion, "packmol", "", "", []string{"BuildInput"}, true}
	}
	if nmol <= 0 {
		return Error{ErrMissingRegion, "packmol", "", "number of molecules must be positive", []string{"BuildInput"}, true}
	}
	if O.workdir == "" {
		dir, err := os.MkdirTemp("", "packmol")
		if err != nil {
			return Error{ErrRunFailed, "packmol", "", err.Error(), []string{"BuildInput"}, true}
		}
		O.workdir = dir
		O.ownsDir = true
	}
	if err := os.WriteFile(filepath.Join(O.workdir, waterFile), waterXYZ, 0o644); err != nil {
		return Error{ErrRunFailed, "packmol", waterFile, err.Error(), []string{"BuildInput"}, true}
	}
	var script strings.Builder
	fmt.Fprintf(&script, "tolerance %g\n", O.tolerance)
	fmt.Fprintf(&script, "filetype xyz\n")
	fmt.Fprintf(&script, "output %s\n", outputFile)
	if s != nil {
		if err := molbuild.XYZWrite(filepath.Join(O.workdir, soluteFile), s); err != nil {
			return Error{ErrRunFailed, "packmol", soluteFile, err.Error(), []string{"BuildInput"}, true}
		}
		O.nfixed = s.Len()
		O.solute = s
		fmt.Fprintf(&script, "structure %s\n", soluteFile)
		fmt.Fprintf(&script, "  number 1\n")
		fmt.Fprintf(&script, "  fixed 0. 0. 0. 0. 0. 0.\n")
		fmt.Fprintf(&script, "end structure\n")
	}
	if g != nil {
		pg, ok := g.(molbuild.PackmolGeometry)
		if !ok {
			return Error{ErrUnsupported, "packmol", "", fmt.Sprintf("%T", g), []string{"BuildInput"}, true}
		}
		block, err := pg.PackmolBlock(waterFile, nmol, side)
		if err != nil {
			return Error{ErrUnsupported, "packmol", "", err.Error(), []string{"BuildInput"}, true}
		}
		script.WriteString(block)
	} else {
		lo, hi, err := s.BoundingBox()
		if err != nil {
			return Error{ErrMissingRegion, "packmol", "", err.Error(), []string{"BuildInput"}, true}
		}
		for i := 0; i < 3; i++ {
			lo[i] += O.pbcMargin / 2
			hi[i] -= O.pbcMargin / 2
		}
		box, err := molbuild.NewBox(lo, hi)
		if err != nil {
			return Error{ErrMissingRegion, "packmol", "", "periodic margin larger than the structure", []string{"BuildInput"}, true}
		}
		block, err := box.PackmolBlock(waterFile, nmol, side)
		if err != nil {
			return Error{ErrUnsupported, "packmol", "", err.Error(), []string{"BuildInput"}, true}
		}
		script.WriteString(block)
	}
	if err := os.WriteFile(filepath.Join(O.workdir, inputFile), []byte(script.String()), 0o644); err != nil {
		return Error{ErrRunFailed, "packmol", inputFile, err.Error(), []string{"BuildInput"}, true}
	}
	O.built = true
	return nil
}

//Run executes packmol on the staged input. It blocks until the program
//finishes, the context is canceled, or the handle's timeout expires.
func (O *Handle) Run(ctx context.Context) error {
	if !O.built {
		return Error{ErrNoInput, O.command, "", "", []string{"Run"}, true}
	}
	path, err := exec.LookPath(O.command)
	if err != nil {
		return Error{ErrNotInstalled, O.command, "", "", []string{"exec.LookPath", "Run"}, true}
	}
	if O.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, O.timeout)
		defer cancel()
	}
	in, err := os.Open(filepath.Join(O.workdir, inputFile))
	if err != nil {
		return Error{ErrNoInput, O.command, inputFile, err.Error(), []string{"Run"}, true}
	}
	defer in.Close()
	log, err := os.Create(filepath.Join(O.workdir, "packmol.log"))
	if err != nil {
		return Error{ErrRunFailed, O.command, "packmol.log", err.Error(), []string{"Run"}, true}
	}
	defer log.Close()
	command := exec.CommandContext(ctx, path)
	command.Dir = O.workdir //explicit; the process working directory stays put.
	command.Stdin = in
	command.Stdout = log
	command.Stderr = log
	if err := command.Run(); err != nil {
		return Error{ErrRunFailed, O.command, "packmol.log", err.Error(), []string{"exec.Run", "Run"}, true}
	}
	return nil
}

//Result reads back the combined system packmol wrote. The cell and
//periodicity of the fixed solute, if one was given, are carried over.
func (O *Handle) Result() (*molbuild.Structure, error) {
	out := filepath.Join(O.workdir, outputFile)
	if _, err := os.Stat(out); err != nil {
		return nil, Error{ErrNoOutput, O.command, outputFile, "", []string{"Result"}, true}
	}
	packed, err := molbuild.XYZRead(out)
	if err != nil {
		return nil, Error{ErrNoOutput, O.command, outputFile, err.Error(), []string{"Result"}, true}
	}
	if O.solute != nil && O.solute.Cell() != nil {
		if err := packed.SetCell(O.solute.Cell()); err != nil {
			return nil, err
		}
		pbc := O.solute.PBC()
		packed.SetPBC(pbc[0], pbc[1], pbc[2])
	}
	return packed, nil
}

//NFixed returns the number of atoms held fixed from the solute structure,
//which is also the index where packed solvent starts in the result.
func (O *Handle) NFixed() int { return O.nfixed }

//Clean removes the scratch directory if the handle created it. Directories
//supplied through SetWorkDir are left alone.
func (O *Handle) Clean() error {
	if !O.ownsDir || O.workdir == "" {
		return nil
	}
	return os.RemoveAll(O.workdir)
}

//Water packs nmol water molecules and returns the combined system. At
//least one of s (a solute held fixed) and g (the region constraint) must
//be given; side is "in" or "out". pbcMargin shrinks a bounding-box-derived
//region to keep solvent off periodic images, and tolerance overrides the
//default minimum separation when positive. If returnSolvent is true the
//packed water alone is returned as the second structure. The scratch
//directory is removed on every path.
func Water(ctx context.Context, nmol int, s *molbuild.Structure, g molbuild.Geometry,
	side string, pbcMargin float64, returnSolvent bool, tolerance float64) (*molbuild.Structure, *molbuild.Structure, error) {
	h := NewHandle()
	defer h.Clean()
	if tolerance > 0 {
		h.SetTolerance(tolerance)
	}
	h.SetPBCMargin(pbcMargin)
	if err := h.BuildInput(s, g, nmol, side); err != nil {
		return nil, nil, err
	}
	if err := h.Run(ctx); err != nil {
		return nil, nil, err
	}
	packed, err := h.Result()
	if err != nil {
		return nil, nil, err
	}
	if !returnSolvent {
		return packed, nil, nil
	}
	solvent := packed.Copy()
	mask := make([]bool, solvent.Len())
	for i := 0; i < h.NFixed() && i < len(mask); i++ {
		mask[i] = true //packmol keeps the fixed solute first in its output.
	}
	if _, err := solvent.Delete(mask); err != nil {
		return nil, nil, err
	}
	return packed, solvent, nil
}
