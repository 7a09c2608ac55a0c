/*
 * carve_test.go, part of molbuild.
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

//gridStructure builds an n x n x n cubic grid of copper atoms with unit
//spacing, handy for counting what a carve removes.
func gridStructure(Te *testing.T, n int) *Structure {
	atoms := make([]*Atom, 0, n*n*n)
	data := make([]float64, 0, n*n*n*3)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				atoms = append(atoms, &Atom{Symbol: "Cu"})
				data = append(data, float64(i), float64(j), float64(k))
			}
		}
	}
	s, err := NewStructure(atoms, mat.NewDense(n*n*n, 3, data))
	if err != nil {
		Te.Fatal(err)
	}
	return s
}

//Carving the inside and the outside of the same region from two copies
//must partition the structure.
func TestCarvePartition(Te *testing.T) {
	g, err := NewSphere([3]float64{2, 2, 2}, 1.8)
	if err != nil {
		Te.Fatal(err)
	}
	inside := gridStructure(Te, 5)
	outside := gridStructure(Te, 5)
	total := inside.Len()
	nIn, _, err := CarveGeometry(inside, g, "in", false)
	if err != nil {
		Te.Fatal(err)
	}
	nOut, _, err := CarveGeometry(outside, g, "out", false)
	if err != nil {
		Te.Fatal(err)
	}
	if nIn+nOut != total {
		Te.Errorf("in (%d) + out (%d) removals should cover all %d atoms", nIn, nOut, total)
	}
	if inside.Len() != nOut || outside.Len() != nIn {
		Te.Errorf("carve leftovers do not match: %d vs %d and %d vs %d",
			inside.Len(), nOut, outside.Len(), nIn)
	}
	//The center atom at (2,2,2) is inside, a corner is not.
	if nIn == 0 || nIn == total {
		Te.Errorf("sphere of radius 1.8 at the grid center removed %d of %d atoms", nIn, total)
	}
}

func TestCarveReturnsFragment(Te *testing.T) {
	g, err := NewBox([3]float64{-0.5, -0.5, -0.5}, [3]float64{1.5, 4.5, 4.5})
	if err != nil {
		Te.Fatal(err)
	}
	s := gridStructure(Te, 5)
	total := s.Len()
	n, carved, err := CarveGeometry(s, g, "in", true)
	if err != nil {
		Te.Fatal(err)
	}
	if n != 50 {
		Te.Errorf("two grid planes hold 50 atoms, carve removed %d", n)
	}
	if carved == nil {
		Te.Fatal("returnCarved was true but no fragment came back")
	}
	if carved.Len() != n {
		Te.Errorf("fragment has %d atoms, %d were removed", carved.Len(), n)
	}
	if s.Len()+carved.Len() != total {
		Te.Errorf("remaining %d plus fragment %d should equal %d", s.Len(), carved.Len(), total)
	}
	for i := 0; i < carved.Len(); i++ {
		if x, _, _ := carved.XYZ(i); x > 1.5 {
			Te.Errorf("fragment atom %d at x=%g lies outside the carved box", i, x)
		}
	}
}

func TestCarveBadSide(Te *testing.T) {
	g, err := NewSphere([3]float64{0, 0, 0}, 1)
	if err != nil {
		Te.Fatal(err)
	}
	s := gridStructure(Te, 2)
	if _, _, err := CarveGeometry(s, g, "around", false); err == nil {
		Te.Error("side other than in/out should be an error")
	}
	if s.Len() != 8 {
		Te.Error("a failed carve must not mutate the structure")
	}
}
