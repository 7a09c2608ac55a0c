/*
 * structure.go, part of molbuild.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Atom contains the per-atom data except for the coordinates, which live in
//a matrix owned by the Structure.
type Atom struct {
	Symbol string
	Tag    int //the numeric type id when read from a LAMMPS data file.
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	Newat := new(Atom)
	Newat.Symbol = A.Symbol
	Newat.Tag = A.Tag
	return Newat
}

//Structure is an ordered collection of atoms with Cartesian coordinates,
//a simulation cell and per-axis periodicity flags. Coordinates are kept in
//an N x 3 matrix, one row per atom. All mutating methods work in place;
//use Copy to duplicate a Structure before destructive operations.
//A Structure must not be mutated concurrently.
type Structure struct {
	atoms  []*Atom
	coords *mat.Dense //nil when the structure is empty
	cell   *mat.Dense //3x3, rows are the box vectors. May be nil.
	pbc    [3]bool
}

//NewStructure builds a Structure from atoms and coordinates. coords must
//have one row per atom and 3 columns, and may be nil only if atoms is empty.
func NewStructure(atoms []*Atom, coords *mat.Dense) (*Structure, error) {
	if len(atoms) == 0 {
		return &Structure{}, nil
	}
	if coords == nil {
		return nil, newError(ErrInvalidArgument, "nil coordinates for a non-empty atom list")
	}
	r, c := coords.Dims()
	if r != len(atoms) || c != 3 {
		return nil, newError(ErrInvalidArgument,
			fmt.Sprintf("coordinates are %dx%d for %d atoms", r, c, len(atoms)))
	}
	return &Structure{atoms: atoms, coords: coords}, nil
}

//Len returns the number of atoms.
func (S *Structure) Len() int { return len(S.atoms) }

//Atom returns the Atom corresponding to the index i. Panics if out of range.
func (S *Structure) Atom(i int) *Atom { return S.atoms[i] }

//Coords returns the coordinate matrix of the structure. The matrix is the
//structure's own storage, not a copy.
func (S *Structure) Coords() *mat.Dense { return S.coords }

//XYZ returns the Cartesian position of atom i.
func (S *Structure) XYZ(i int) (x, y, z float64) {
	return S.coords.At(i, 0), S.coords.At(i, 1), S.coords.At(i, 2)
}

//SetXYZ sets the Cartesian position of atom i.
func (S *Structure) SetXYZ(i int, x, y, z float64) {
	S.coords.Set(i, 0, x)
	S.coords.Set(i, 1, y)
	S.coords.Set(i, 2, z)
}

//Cell returns the 3x3 cell matrix, whose rows are the box vectors.
//It can be nil for non-periodic structures.
func (S *Structure) Cell() *mat.Dense { return S.cell }

//SetCell replaces the cell matrix. The previous cell is discarded and the
//coordinates are left untouched; call Wrap afterwards to put the atoms back
//into the new cell.
func (S *Structure) SetCell(cell *mat.Dense) error {
	if cell != nil {
		if r, c := cell.Dims(); r != 3 || c != 3 {
			return newError(ErrInvalidArgument, fmt.Sprintf("cell matrix is %dx%d, want 3x3", r, c))
		}
	}
	S.cell = cell
	return nil
}

//PBC returns the periodicity flags, one per cell vector.
func (S *Structure) PBC() [3]bool { return S.pbc }

//SetPBC sets the periodicity flags.
func (S *Structure) SetPBC(x, y, z bool) { S.pbc = [3]bool{x, y, z} }

//Copy returns a deep copy of the Structure.
func (S *Structure) Copy() *Structure {
	N := &Structure{pbc: S.pbc}
	N.atoms = make([]*Atom, len(S.atoms))
	for i, a := range S.atoms {
		N.atoms[i] = a.Copy()
	}
	if S.coords != nil {
		N.coords = mat.DenseCopyOf(S.coords)
	}
	if S.cell != nil {
		N.cell = mat.DenseCopyOf(S.cell)
	}
	return N
}

//Delete removes, in place, every atom for which mask is true, and returns
//the number of atoms removed. The mask must have one entry per atom.
func (S *Structure) Delete(mask []bool) (int, error) {
	if len(mask) != len(S.atoms) {
		return 0, newError(ErrInvalidArgument,
			fmt.Sprintf("mask has %d entries for %d atoms", len(mask), len(S.atoms)))
	}
	kept := make([]*Atom, 0, len(S.atoms))
	keptidx := make([]int, 0, len(S.atoms))
	for i, del := range mask {
		if !del {
			kept = append(kept, S.atoms[i])
			keptidx = append(keptidx, i)
		}
	}
	removed := len(S.atoms) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	S.atoms = kept
	if len(kept) == 0 {
		S.coords = nil
		return removed, nil
	}
	data := make([]float64, 0, len(kept)*3)
	for _, i := range keptidx {
		data = append(data, S.coords.At(i, 0), S.coords.At(i, 1), S.coords.At(i, 2))
	}
	S.coords = mat.NewDense(len(kept), 3, data)
	return removed, nil
}

//Append adds, in place, copies of all atoms of other to the receiver.
//The receiver keeps its own cell and periodicity.
func (S *Structure) Append(other *Structure) {
	if other == nil || other.Len() == 0 {
		return
	}
	data := make([]float64, 0, (S.Len()+other.Len())*3)
	if S.coords != nil {
		data = append(data, S.coords.RawMatrix().Data...)
	}
	for i := 0; i < other.Len(); i++ {
		x, y, z := other.XYZ(i)
		data = append(data, x, y, z)
	}
	for i := 0; i < other.Len(); i++ {
		S.atoms = append(S.atoms, other.Atom(i).Copy())
	}
	S.coords = mat.NewDense(len(S.atoms), 3, data)
}

//BoundingBox returns the lower and upper corners of the axis-aligned box
//enclosing all atoms. Error if the structure is empty.
func (S *Structure) BoundingBox() (lo, hi [3]float64, err error) {
	if S.Len() == 0 {
		return lo, hi, newError(ErrInvalidArgument, "bounding box of an empty structure")
	}
	for j := 0; j < 3; j++ {
		lo[j] = S.coords.At(0, j)
		hi[j] = S.coords.At(0, j)
	}
	for i := 1; i < S.Len(); i++ {
		for j := 0; j < 3; j++ {
			v := S.coords.At(i, j)
			if v < lo[j] {
				lo[j] = v
			}
			if v > hi[j] {
				hi[j] = v
			}
		}
	}
	return lo, hi, nil
}

//Masses returns a slice with the mass of each atom in the structure.
func (S *Structure) Masses() ([]float64, error) {
	masses := make([]float64, S.Len())
	for i, a := range S.atoms {
		m, err := AtomicMass(a.Symbol)
		if err != nil {
			errd := err.(*Error)
			errd.Decorate("Masses")
			return nil, errd
		}
		masses[i] = m
	}
	return masses, nil
}

//Symbols returns the distinct element symbols in the structure, in order of
//first appearance. This order defines the numeric atom types used when
//writing LAMMPS data files.
func (S *Structure) Symbols() []string {
	seen := make(map[string]bool)
	var syms []string
	for _, a := range S.atoms {
		if !seen[a.Symbol] {
			seen[a.Symbol] = true
			syms = append(syms, a.Symbol)
		}
	}
	return syms
}
