/*
 * xyz.go, part of molbuild.
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

//XYZWrite writes the structure to filename in XYZ format.
func XYZWrite(filename string, s *Structure) error {
	f, err := os.Create(filename)
	if err != nil {
		return newError(ErrParse, "cannot create "+filename+": "+err.Error())
	}
	defer f.Close()
	return XYZWriteTo(f, s)
}

//XYZWriteTo writes the structure to w in XYZ format.
func XYZWriteTo(w io.Writer, s *Structure) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", s.Len())
	fmt.Fprintf(bw, "written by molbuild\n")
	for i := 0; i < s.Len(); i++ {
		x, y, z := s.XYZ(i)
		fmt.Fprintf(bw, "%-3s %12.6f %12.6f %12.6f\n", s.Atom(i).Symbol, x, y, z)
	}
	return bw.Flush()
}

//XYZRead reads an XYZ file. Only the first frame of a multi-frame file is
//read. The returned structure has no cell.
func XYZRead(filename string) (*Structure, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError(ErrParse, "cannot open "+filename+": "+err.Error())
	}
	defer f.Close()
	mol, rerr := XYZReadFrom(f)
	if rerr != nil {
		rerr.(*Error).Decorate("XYZRead " + filename)
	}
	return mol, rerr
}

//XYZReadFrom reads one XYZ frame from r.
func XYZReadFrom(r io.Reader) (*Structure, error) {
	scn := bufio.NewScanner(r)
	if !scn.Scan() {
		return nil, newError(ErrParse, "empty XYZ input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scn.Text()))
	if err != nil || natoms < 0 {
		return nil, newError(ErrParse, "first XYZ line is not an atom count")
	}
	if !scn.Scan() {
		return nil, newError(ErrParse, "XYZ input ends before the comment line")
	}
	atoms := make([]*Atom, 0, natoms)
	data := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		if !scn.Scan() {
			return nil, newError(ErrParse, fmt.Sprintf("XYZ input ends at atom %d of %d", i, natoms))
		}
		fields := strings.Fields(scn.Text())
		if len(fields) < 4 {
			return nil, newError(ErrParse, fmt.Sprintf("XYZ atom line %d has %d fields", i+1, len(fields)))
		}
		var xyz [3]float64
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, newError(ErrParse, "bad coordinate in XYZ line: "+scn.Text())
			}
			xyz[j] = v
		}
		atoms = append(atoms, &Atom{Symbol: fields[0]})
		data = append(data, xyz[0], xyz[1], xyz[2])
	}
	if natoms == 0 {
		return &Structure{}, nil
	}
	return NewStructure(atoms, mat.NewDense(natoms, 3, data))
}
