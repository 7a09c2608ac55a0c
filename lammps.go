/*
 * lammps.go, part of molbuild.
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

//Reading and writing of LAMMPS data files, "atomic" atom style: element
//identity travels as a numeric type plus a mass, coordinates are Cartesian,
//and the box is the lower-triangular prism LAMMPS requires.

package molbuild

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//LammpsDataWrite writes the structure to filename as a LAMMPS data file
//with atom style "atomic".
func LammpsDataWrite(filename string, s *Structure) error {
	f, err := os.Create(filename)
	if err != nil {
		return newError(ErrParse, "cannot create "+filename+": "+err.Error())
	}
	defer f.Close()
	werr := LammpsDataWriteTo(f, s)
	if werr != nil {
		werr.(*Error).Decorate("LammpsDataWrite " + filename)
	}
	return werr
}

//LammpsDataWriteTo writes the structure to w as a LAMMPS data file. The
//structure must have a lower-triangular cell (see LammpsPrism); atom types
//are assigned by order of first appearance of each element.
func LammpsDataWriteTo(w io.Writer, s *Structure) error {
	cell := s.Cell()
	if cell == nil {
		return newError(ErrInvalidArgument, "cannot write a LAMMPS data file without a cell")
	}
	if cell.At(0, 1) != 0 || cell.At(0, 2) != 0 || cell.At(1, 2) != 0 {
		return newError(ErrInvalidArgument, "cell is not lower-triangular; reduce it with LammpsPrism first")
	}
	syms := s.Symbols()
	types := make(map[string]int, len(syms))
	for i, sym := range syms {
		types[sym] = i + 1
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "LAMMPS data file written by molbuild\n\n")
	fmt.Fprintf(bw, "%d atoms\n", s.Len())
	fmt.Fprintf(bw, "%d atom types\n\n", len(syms))
	fmt.Fprintf(bw, "0.0 %.9g xlo xhi\n", cell.At(0, 0))
	fmt.Fprintf(bw, "0.0 %.9g ylo yhi\n", cell.At(1, 1))
	fmt.Fprintf(bw, "0.0 %.9g zlo zhi\n", cell.At(2, 2))
	xy, xz, yz := cell.At(1, 0), cell.At(2, 0), cell.At(2, 1)
	if xy != 0 || xz != 0 || yz != 0 {
		fmt.Fprintf(bw, "%.9g %.9g %.9g xy xz yz\n", xy, xz, yz)
	}
	fmt.Fprintf(bw, "\nMasses\n\n")
	for i, sym := range syms {
		m, err := AtomicMass(sym)
		if err != nil {
			err.(*Error).Decorate("LammpsDataWriteTo")
			return err
		}
		fmt.Fprintf(bw, "%d %.4f # %s\n", i+1, m, sym)
	}
	fmt.Fprintf(bw, "\nAtoms # atomic\n\n")
	for i := 0; i < s.Len(); i++ {
		x, y, z := s.XYZ(i)
		fmt.Fprintf(bw, "%d %d %.9g %.9g %.9g\n", i+1, types[s.Atom(i).Symbol], x, y, z)
	}
	return bw.Flush()
}

//LammpsDataRead reads a LAMMPS data file with atom style "atomic".
//typeMap optionally maps numeric atom types to element symbols, overriding
//the mass-based identification; it may be nil.
func LammpsDataRead(filename string, typeMap map[int]string) (*Structure, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError(ErrParse, "cannot open "+filename+": "+err.Error())
	}
	defer f.Close()
	mol, rerr := LammpsDataReadFrom(f, typeMap)
	if rerr != nil {
		rerr.(*Error).Decorate("LammpsDataRead " + filename)
	}
	return mol, rerr
}

//LammpsDataReadFrom reads a LAMMPS data file from r. Element symbols come
//from typeMap when given, otherwise from the nearest tabulated mass in the
//Masses section; types that cannot be identified either way get symbol "X"
//and keep their numeric type in the atom Tag.
func LammpsDataReadFrom(r io.Reader, typeMap map[int]string) (*Structure, error) {
	scn := bufio.NewScanner(r)
	scn.Buffer(make([]byte, 1024*1024), 1024*1024)
	if !scn.Scan() {
		return nil, newError(ErrParse, "empty LAMMPS data input")
	}
	//The first line is always a comment.
	natoms := -1
	ntypes := 0
	var lo, hi [3]float64
	var xy, xz, yz float64
	masses := make(map[int]float64)
	type rawAtom struct {
		typ     int
		x, y, z float64
	}
	byID := make(map[int]rawAtom)

	const (
		inHeader = iota
		inMasses
		inAtoms
		inOther
	)
	section := inHeader
	for scn.Scan() {
		line := scn.Text()
		comment := ""
		if idx := strings.Index(line, "#"); idx >= 0 {
			comment = strings.TrimSpace(line[idx+1:])
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		//Section headers start with a keyword, data lines with a number.
		//Multi-word headers like "Pair Coeffs" land in the skipped bucket.
		if strconvErr(fields[0]) {
			switch fields[0] {
			case "Masses":
				section = inMasses
			case "Atoms":
				section = inAtoms
				if comment != "" && comment != "atomic" {
					return nil, newError(ErrParse, "unsupported atom style "+comment)
				}
			default:
				section = inOther //Velocities, Pair Coeffs and friends are skipped.
			}
			continue
		}
		switch section {
		case inHeader:
			switch {
			case len(fields) == 2 && fields[1] == "atoms":
				n, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, newError(ErrParse, "bad atom count: "+line)
				}
				natoms = n
			case len(fields) == 3 && fields[1] == "atom" && fields[2] == "types":
				n, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, newError(ErrParse, "bad atom type count: "+line)
				}
				ntypes = n
			case len(fields) == 4 && strings.HasSuffix(fields[2], "lo"):
				axis := map[string]int{"xlo": 0, "ylo": 1, "zlo": 2}[fields[2]]
				l, err1 := strconv.ParseFloat(fields[0], 64)
				h, err2 := strconv.ParseFloat(fields[1], 64)
				if err1 != nil || err2 != nil {
					return nil, newError(ErrParse, "bad box bounds: "+line)
				}
				lo[axis], hi[axis] = l, h
			case len(fields) == 6 && fields[3] == "xy":
				var errs [3]error
				xy, errs[0] = strconv.ParseFloat(fields[0], 64)
				xz, errs[1] = strconv.ParseFloat(fields[1], 64)
				yz, errs[2] = strconv.ParseFloat(fields[2], 64)
				for _, e := range errs {
					if e != nil {
						return nil, newError(ErrParse, "bad tilt factors: "+line)
					}
				}
			}
			//Other header lines (bond counts etc.) are ignored.
		case inMasses:
			if len(fields) < 2 {
				return nil, newError(ErrParse, "bad Masses line: "+line)
			}
			t, err1 := strconv.Atoi(fields[0])
			m, err2 := strconv.ParseFloat(fields[1], 64)
			if err1 != nil || err2 != nil {
				return nil, newError(ErrParse, "bad Masses line: "+line)
			}
			masses[t] = m
		case inAtoms:
			//atomic style: id type x y z, optionally 3 image flags.
			if len(fields) != 5 && len(fields) != 8 {
				return nil, newError(ErrParse, "unsupported Atoms line (want atomic style): "+line)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, newError(ErrParse, "bad atom id: "+line)
			}
			typ, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, newError(ErrParse, "bad atom type: "+line)
			}
			var xyzv [3]float64
			for j := 0; j < 3; j++ {
				v, err := strconv.ParseFloat(fields[2+j], 64)
				if err != nil {
					return nil, newError(ErrParse, "bad coordinate: "+line)
				}
				xyzv[j] = v
			}
			if _, dup := byID[id]; dup {
				return nil, newError(ErrParse, fmt.Sprintf("duplicate atom id %d", id))
			}
			byID[id] = rawAtom{typ: typ, x: xyzv[0], y: xyzv[1], z: xyzv[2]}
		}
	}
	if err := scn.Err(); err != nil {
		return nil, newError(ErrParse, err.Error())
	}
	if natoms < 0 {
		return nil, newError(ErrParse, "no atom count in header")
	}
	if len(byID) != natoms {
		return nil, newError(ErrParse,
			fmt.Sprintf("header declares %d atoms, Atoms section has %d", natoms, len(byID)))
	}
	symbol := func(typ int) string {
		if typeMap != nil {
			if sym, ok := typeMap[typ]; ok {
				return sym
			}
		}
		if m, ok := masses[typ]; ok {
			if sym := symbolFromMass(m); sym != "" {
				return sym
			}
		}
		return "X"
	}
	atoms := make([]*Atom, natoms)
	data := make([]float64, natoms*3)
	for id, ra := range byID {
		if id < 1 || id > natoms {
			return nil, newError(ErrParse, fmt.Sprintf("atom id %d outside 1..%d", id, natoms))
		}
		if ntypes > 0 && (ra.typ < 1 || ra.typ > ntypes) {
			return nil, newError(ErrParse, fmt.Sprintf("atom type %d outside 1..%d", ra.typ, ntypes))
		}
		atoms[id-1] = &Atom{Symbol: symbol(ra.typ), Tag: ra.typ}
		data[(id-1)*3] = ra.x
		data[(id-1)*3+1] = ra.y
		data[(id-1)*3+2] = ra.z
	}
	if natoms == 0 {
		return &Structure{}, nil
	}
	s, err := NewStructure(atoms, mat.NewDense(natoms, 3, data))
	if err != nil {
		return nil, err
	}
	cell := mat.NewDense(3, 3, []float64{
		hi[0] - lo[0], 0, 0,
		xy, hi[1] - lo[1], 0,
		xz, yz, hi[2] - lo[2],
	})
	if err := s.SetCell(cell); err != nil {
		return nil, err
	}
	s.SetPBC(true, true, true)
	//The box origin may be nonzero; shift it to zero so the cell alone
	//describes the system.
	if lo != [3]float64{} {
		for i := 0; i < natoms; i++ {
			x, y, z := s.XYZ(i)
			s.SetXYZ(i, x-lo[0], y-lo[1], z-lo[2])
		}
	}
	return s, nil
}

//strconvErr reports whether f is not a number, i.e. a section keyword.
func strconvErr(f string) bool {
	_, err := strconv.ParseFloat(f, 64)
	if err == nil {
		return false
	}
	_, err = strconv.Atoi(f)
	return err != nil
}
