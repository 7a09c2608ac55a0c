/*
 * cell.go, part of molbuild.
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
)

func deg2rad(f float64) float64 { return f * math.Pi / 180 }

//CellParametersToCell builds a 3x3 cell matrix from the lattice parameters
//a, b, c (lengths) and alpha, beta, gamma (angles in degrees). The first
//vector lies along x and the second in the xy plane, so the result is
//lower-triangular by construction.
func CellParametersToCell(a, b, c, alpha, beta, gamma float64) (*mat.Dense, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, newError(ErrInvalidArgument, "cell lengths must be positive")
	}
	ca, cb := math.Cos(deg2rad(alpha)), math.Cos(deg2rad(beta))
	cg, sg := math.Cos(deg2rad(gamma)), math.Sin(deg2rad(gamma))
	if sg == 0 {
		return nil, newError(ErrInvalidArgument, "gamma angle of 0 or 180 degrees")
	}
	cx := c * cb
	cy := c * (ca - cb*cg) / sg
	czsq := c*c - cx*cx - cy*cy
	if czsq <= 0 {
		return nil, newError(ErrInvalidArgument,
			fmt.Sprintf("degenerate cell angles %g %g %g", alpha, beta, gamma))
	}
	return mat.NewDense(3, 3, []float64{
		a, 0, 0,
		b * cg, b * sg, 0,
		cx, cy, math.Sqrt(czsq),
	}), nil
}

//LammpsPrism returns the lower-triangular cell equivalent to cell, in the
//orientation LAMMPS expects: the same lengths and angles, with the first
//vector along x and the second in the xy plane. Simulation-engine export is
//orientation-stable only if every cell goes through this reduction, so it
//is applied before a cell is handed to any consumer.
func LammpsPrism(cell *mat.Dense) (*mat.Dense, error) {
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, newError(ErrInvalidArgument, fmt.Sprintf("cell matrix is %dx%d, want 3x3", r, c))
	}
	a := cell.RawRowView(0)
	b := cell.RawRowView(1)
	c := cell.RawRowView(2)
	lx := norm3(a)
	if lx == 0 {
		return nil, newError(ErrInvalidArgument, "zero-length first cell vector")
	}
	xy := dot3(b, a) / lx
	lysq := dot3(b, b) - xy*xy
	if lysq <= 0 {
		return nil, newError(ErrInvalidArgument, "first and second cell vectors are collinear")
	}
	ly := math.Sqrt(lysq)
	xz := dot3(c, a) / lx
	yz := (dot3(b, c) - xy*xz) / ly
	lzsq := dot3(c, c) - xz*xz - yz*yz
	if lzsq <= 0 {
		return nil, newError(ErrInvalidArgument, "cell vectors are coplanar")
	}
	return mat.NewDense(3, 3, []float64{
		lx, 0, 0,
		xy, ly, 0,
		xz, yz, math.Sqrt(lzsq),
	}), nil
}

//Wrap translates every atom by integer multiples of the cell vectors so
//that its fractional coordinates fall in [0,1). Error if the structure has
//no cell or the cell is singular.
func (S *Structure) Wrap() error {
	if S.cell == nil {
		return newError(ErrInvalidArgument, "cannot wrap a structure without a cell")
	}
	if S.Len() == 0 {
		return nil
	}
	var inv mat.Dense
	if err := inv.Inverse(S.cell); err != nil {
		return newError(ErrInvalidArgument, "singular cell matrix")
	}
	for i := 0; i < S.Len(); i++ {
		x, y, z := S.XYZ(i)
		fx, fy, fz := rowTimes(&inv, x, y, z)
		fx -= math.Floor(fx)
		fy -= math.Floor(fy)
		fz -= math.Floor(fz)
		nx, ny, nz := rowTimes(S.cell, fx, fy, fz)
		S.SetXYZ(i, nx, ny, nz)
	}
	return nil
}

//rowTimes computes the row vector (x y z) times m.
//With cell rows as box vectors, positions transform as row vectors:
//cartesian = fractional x cell, fractional = cartesian x cell^-1.
func rowTimes(m *mat.Dense, x, y, z float64) (float64, float64, float64) {
	return x*m.At(0, 0) + y*m.At(1, 0) + z*m.At(2, 0),
		x*m.At(0, 1) + y*m.At(1, 1) + z*m.At(2, 1),
		x*m.At(0, 2) + y*m.At(1, 2) + z*m.At(2, 2)
}

func dot3(a, b []float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func norm3(a []float64) float64 { return math.Sqrt(dot3(a, a)) }

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
