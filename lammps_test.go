/*
 * lammps_test.go, part of molbuild.
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
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//TestLammpsIO writes a small NaCl fragment and reads it back, checking
//that the mass-based element identification reverses the type assignment.
func TestLammpsIO(Te *testing.T) {
	atoms := []*Atom{{Symbol: "Na"}, {Symbol: "Cl"}, {Symbol: "Na"}}
	coords := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		2.82, 2.82, 2.82,
		0, 2.82, 2.82,
	})
	s, err := NewStructure(atoms, coords)
	if err != nil {
		Te.Fatal(err)
	}
	if err := s.SetCell(mat.NewDense(3, 3, []float64{5.64, 0, 0, 0, 5.64, 0, 0, 0, 5.64})); err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := LammpsDataWriteTo(&buf, s); err != nil {
		Te.Fatal(err)
	}
	text := buf.String()
	for _, want := range []string{"3 atoms", "2 atom types", "Atoms # atomic", "# Na", "# Cl"} {
		if !strings.Contains(text, want) {
			Te.Errorf("written data file misses %q", want)
		}
	}
	back, err := LammpsDataReadFrom(strings.NewReader(text), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != 3 {
		Te.Fatalf("got %d atoms back, want 3", back.Len())
	}
	for i := 0; i < 3; i++ {
		if back.Atom(i).Symbol != s.Atom(i).Symbol {
			Te.Errorf("atom %d came back as %s, want %s", i, back.Atom(i).Symbol, s.Atom(i).Symbol)
		}
	}
	x, y, z := back.XYZ(1)
	if !closeTo(x, 2.82) || !closeTo(y, 2.82) || !closeTo(z, 2.82) {
		Te.Errorf("coordinates did not survive: got (%g, %g, %g)", x, y, z)
	}
	if cell := back.Cell(); !closeTo(cell.At(0, 0), 5.64) {
		Te.Errorf("cell did not survive: got %g", cell.At(0, 0))
	}
}

func TestLammpsWriteNeedsPrism(Te *testing.T) {
	atoms := []*Atom{{Symbol: "Fe"}}
	s, err := NewStructure(atoms, mat.NewDense(1, 3, []float64{0, 0, 0}))
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := LammpsDataWriteTo(&buf, s); err == nil {
		Te.Error("writing without a cell should be an error")
	}
	//Upper-triangular cells must be rejected, LAMMPS cannot read them.
	if err := s.SetCell(mat.NewDense(3, 3, []float64{3, 1, 0, 0, 3, 0, 0, 0, 3})); err != nil {
		Te.Fatal(err)
	}
	if err := LammpsDataWriteTo(&buf, s); err == nil {
		Te.Error("non-lower-triangular cell should be an error")
	}
}

//A type map wins over the tabulated masses, and unknown types fall back
//to symbol X while keeping the numeric type in the tag.
func TestLammpsTypeMap(Te *testing.T) {
	data := `LAMMPS data file

2 atoms
2 atom types

0.0 5.0 xlo xhi
0.0 5.0 ylo yhi
0.0 5.0 zlo zhi

Masses

1 28.0855
2 999.9

Atoms # atomic

1 1 1.0 1.0 1.0
2 2 2.0 2.0 2.0
`
	s, err := LammpsDataReadFrom(strings.NewReader(data), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Atom(0).Symbol != "Si" {
		Te.Errorf("type 1 should resolve to Si by mass, got %s", s.Atom(0).Symbol)
	}
	if s.Atom(1).Symbol != "X" || s.Atom(1).Tag != 2 {
		Te.Errorf("unidentifiable type should become X with its tag kept, got %s tag %d",
			s.Atom(1).Symbol, s.Atom(1).Tag)
	}
	s, err = LammpsDataReadFrom(strings.NewReader(data), map[int]string{2: "Zz"})
	if err != nil {
		Te.Fatal(err)
	}
	if s.Atom(1).Symbol != "Zz" {
		Te.Errorf("type map should override, got %s", s.Atom(1).Symbol)
	}
}

//Data files from other tools carry force-field sections with two-word
//headers; they must be skipped, not mistaken for data of the section
//before them.
func TestLammpsSkipsCoeffSections(Te *testing.T) {
	data := `LAMMPS data file

1 atoms
1 atom types

0.0 5.0 xlo xhi
0.0 5.0 ylo yhi
0.0 5.0 zlo zhi

Masses

1 63.546

Pair Coeffs

1 0.583 2.4
2 0.1 3.5

Atoms # atomic

1 1 1.0 1.0 1.0
`
	s, err := LammpsDataReadFrom(strings.NewReader(data), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 1 || s.Atom(0).Symbol != "Cu" {
		Te.Errorf("got %d atoms, first %q; want 1 Cu", s.Len(), s.Atom(0).Symbol)
	}
}

func TestLammpsOriginShift(Te *testing.T) {
	data := `LAMMPS data file

1 atoms
1 atom types

-2.0 3.0 xlo xhi
-2.0 3.0 ylo yhi
-2.0 3.0 zlo zhi

Masses

1 55.845

Atoms # atomic

1 1 -1.0 0.0 2.0
`
	s, err := LammpsDataReadFrom(strings.NewReader(data), nil)
	if err != nil {
		Te.Fatal(err)
	}
	x, y, z := s.XYZ(0)
	if !closeTo(x, 1) || !closeTo(y, 2) || !closeTo(z, 4) {
		Te.Errorf("origin shift: got (%g, %g, %g), want (1, 2, 4)", x, y, z)
	}
	if !closeTo(s.Cell().At(0, 0), 5) {
		Te.Errorf("box length: got %g, want 5", s.Cell().At(0, 0))
	}
}
