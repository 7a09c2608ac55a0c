/*
 * build.go, part of molbuild.
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
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/molbuild/molbuild/spacegroup"
)

//RepeatCounts returns the number of unit-cell repetitions along each
//lattice vector needed to cover the requested physical size. The second and
//third directions are corrected for the shear implied by the cell angles,
//so the extents of the tilted box match the request. Counts are clamped to
//at least 1 per axis: a request smaller than one unit cell still yields one
//cell. rounding is one of "up", "down" or "round".
func RepeatCounts(spec *CrystalSpec, size [3]float64, rounding string) ([3]int, error) {
	var reps [3]int
	for _, v := range size {
		if v <= 0 {
			return reps, newError(ErrInvalidArgument, "requested size must be positive along every axis")
		}
	}
	raw := [3]float64{
		size[0] / spec.A,
		size[1] / spec.B / math.Sin(deg2rad(spec.Gamma)),
		size[2] / spec.C / math.Sin(deg2rad(spec.Alpha)) / math.Sin(deg2rad(spec.Beta)),
	}
	var round func(float64) float64
	switch rounding {
	case "up":
		round = math.Ceil
	case "down":
		round = math.Floor
	case "round":
		round = math.Round
	default:
		return reps, newError(ErrInvalidArgument,
			fmt.Sprintf("rounding mode %q, want up, down or round", rounding))
	}
	for i, v := range raw {
		n := int(round(v))
		if n < 1 {
			n = 1
		}
		reps[i] = n
	}
	return reps, nil
}

//CreateBulkCrystal builds a bulk crystal from the spacegroup description in
//the crystal table. size gives the desired physical extent in angstroms
//along each of the three box directions; for a triclinic cell these are the
//extents along the diagonal of the cell matrix, and the tilt decides the
//rest. rounding ("up" by default in the CLI) controls how fractional repeat
//counts become integers. The returned structure is fully periodic and its
//cell is in lower-triangular form, with all atoms wrapped into it.
func CreateBulkCrystal(name string, size [3]float64, rounding string) (*Structure, error) {
	spec, err := LookupCrystal(name)
	if err != nil {
		err.(*Error).Decorate("CreateBulkCrystal")
		return nil, err
	}
	reps, err := RepeatCounts(spec, size, rounding)
	if err != nil {
		err.(*Error).Decorate("CreateBulkCrystal")
		return nil, err
	}
	basis := make([][3]float64, len(spec.Positions))
	for i, p := range spec.Positions {
		basis[i] = [3]float64{p[0], p[1], p[2]}
	}
	orbits, err := spacegroup.Expand(spec.Spacegroup, basis)
	if err != nil {
		return nil, newError(ErrInvalidArgument, err.Error())
	}
	unit, err := CellParametersToCell(spec.A, spec.B, spec.C, spec.Alpha, spec.Beta, spec.Gamma)
	if err != nil {
		err.(*Error).Decorate("CreateBulkCrystal")
		return nil, err
	}
	var atoms []*Atom
	var data []float64
	for i := 0; i < reps[0]; i++ {
		for j := 0; j < reps[1]; j++ {
			for k := 0; k < reps[2]; k++ {
				for bi, orbit := range orbits {
					for _, f := range orbit {
						fx := f[0] + float64(i)
						fy := f[1] + float64(j)
						fz := f[2] + float64(k)
						x, y, z := rowTimes(unit, fx, fy, fz)
						atoms = append(atoms, &Atom{Symbol: spec.Elements[bi]})
						data = append(data, x, y, z)
					}
				}
			}
		}
	}
	s, err := NewStructure(atoms, mat.NewDense(len(atoms), 3, data))
	if err != nil {
		return nil, err
	}
	full := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			full.Set(i, j, unit.At(i, j)*float64(reps[i]))
		}
	}
	//Re-deriving the cell through the prism reduction keeps the exported
	//cell orientation-stable: what a simulation engine reads back is the
	//same system that gets carved into.
	prism, err := LammpsPrism(full)
	if err != nil {
		err.(*Error).Decorate("CreateBulkCrystal")
		return nil, err
	}
	if err := s.SetCell(prism); err != nil {
		return nil, err
	}
	s.SetPBC(true, true, true)
	if err := s.Wrap(); err != nil {
		return nil, err
	}
	return s, nil
}
