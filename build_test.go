/*
 * build_test.go, part of molbuild.
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
	"testing"
)

//TestBulkQuartz builds a 20x20x20 angstrom block of alpha quartz and
//checks the atom count against the known unit cell content (9 atoms) and
//repeat counts (5, 5, 4 when rounding up).
func TestBulkQuartz(Te *testing.T) {
	s, err := CreateBulkCrystal("alpha_quartz", [3]float64{20, 20, 20}, "up")
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 900 {
		Te.Errorf("alpha_quartz 20x20x20: got %d atoms, want 900", s.Len())
	}
	cell := s.Cell()
	if cell == nil {
		Te.Fatal("built crystal has no cell")
	}
	if cell.At(0, 1) != 0 || cell.At(0, 2) != 0 || cell.At(1, 2) != 0 {
		Te.Error("built cell is not lower-triangular")
	}
	if pbc := s.PBC(); !pbc[0] || !pbc[1] || !pbc[2] {
		Te.Error("built crystal should be periodic along all axes")
	}
	fmt.Println("quartz block built with", s.Len(), "atoms")
}

//Unit cell atom counts for each crystal in the table, from their
//published structures.
func TestUnitCellContents(Te *testing.T) {
	want := map[string]int{
		"alpha_quartz":       9,
		"beta_quartz":        9,
		"beta_cristobalite":  24,
		"diamond":            8,
		"silicon":            8,
		"silicon_carbide_3c": 8,
		"silicon_carbide_2h": 4,
		"iron_bcc":           2,
		"copper_fcc":         4,
		"sodium_chloride":    8,
		"magnesium_hcp":      2,
		"alpha_alumina":      30,
	}
	for name, n := range want {
		s, err := CreateBulkCrystal(name, [3]float64{0.1, 0.1, 0.1}, "down")
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if s.Len() != n {
			Te.Errorf("%s: got %d atoms in the unit cell, want %d", name, s.Len(), n)
		}
	}
}

func TestRepeatCounts(Te *testing.T) {
	spec, err := LookupCrystal("alpha_quartz")
	if err != nil {
		Te.Fatal(err)
	}
	up, err := RepeatCounts(spec, [3]float64{20, 20, 20}, "up")
	if err != nil {
		Te.Fatal(err)
	}
	if up != [3]int{5, 5, 4} {
		Te.Errorf("rounding up: got %v, want [5 5 4]", up)
	}
	down, err := RepeatCounts(spec, [3]float64{20, 20, 20}, "down")
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if down[i] > up[i] {
			Te.Errorf("axis %d: rounding down gave more cells (%d) than up (%d)", i, down[i], up[i])
		}
	}
	//A request far smaller than one cell still yields one cell.
	one, err := RepeatCounts(spec, [3]float64{0.1, 0.1, 0.1}, "down")
	if err != nil {
		Te.Fatal(err)
	}
	if one != [3]int{1, 1, 1} {
		Te.Errorf("tiny request: got %v, want [1 1 1]", one)
	}
}

func TestBulkCrystalErrors(Te *testing.T) {
	if _, err := CreateBulkCrystal("unobtainium", [3]float64{10, 10, 10}, "up"); err == nil {
		Te.Error("unknown crystal should be an error")
	}
	if _, err := CreateBulkCrystal("alpha_quartz", [3]float64{10, 10, 10}, "sideways"); err == nil {
		Te.Error("bad rounding mode should be an error")
	}
	if _, err := CreateBulkCrystal("alpha_quartz", [3]float64{-10, 10, 10}, "up"); err == nil {
		Te.Error("negative size should be an error")
	}
}
