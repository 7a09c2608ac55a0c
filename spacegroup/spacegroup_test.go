/*
 * spacegroup_test.go, part of molbuild.
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

package spacegroup

import (
	"math"
	"testing"
)

//Operator counts from the International Tables: point group order times
//the number of lattice points per conventional cell.
func TestOpCounts(Te *testing.T) {
	want := map[int]int{
		1:   1,
		154: 6,
		167: 36,
		181: 12,
		186: 12,
		194: 24,
		216: 96,
		225: 192,
		227: 192,
		229: 96,
	}
	for sg, n := range want {
		ops, err := Ops(sg)
		if err != nil {
			Te.Errorf("spacegroup %d: %v", sg, err)
			continue
		}
		if len(ops) != n {
			Te.Errorf("spacegroup %d: closure gave %d operators, want %d", sg, len(ops), n)
		}
	}
	if _, err := Ops(230); err == nil {
		Te.Error("a spacegroup without operator data should be an error")
	}
}

func TestParseOp(Te *testing.T) {
	o, err := ParseOp("-y,x-y,z+2/3")
	if err != nil {
		Te.Fatal(err)
	}
	p := o.Apply([3]float64{0.1, 0.2, 0.3})
	want := [3]float64{0.8, 0.9, 0.3 + 2./3}
	for i := 0; i < 3; i++ {
		if math.Abs(p[i]-want[i]) > 1e-12 {
			Te.Errorf("component %d: got %g, want %g", i, p[i], want[i])
		}
	}
	for _, bad := range []string{"x,y", "x,y,z,w", "q,y,z", "x,y,z+1/0"} {
		if _, err := ParseOp(bad); err == nil {
			Te.Errorf("%q should fail to parse", bad)
		}
	}
}

//Orbit sizes of the Wyckoff positions the crystal table sits on.
func TestExpandOrbits(Te *testing.T) {
	cases := []struct {
		sg    int
		basis [3]float64
		want  int
	}{
		{227, [3]float64{0, 0, 0}, 8},        //diamond 8a
		{225, [3]float64{0, 0, 0}, 4},        //fcc 4a
		{229, [3]float64{0, 0, 0}, 2},        //bcc 2a
		{216, [3]float64{0.25, 0.25, 0.25}, 4}, //zincblende 4c
		{194, [3]float64{1. / 3, 2. / 3, 0.25}, 2}, //hcp 2c
		{154, [3]float64{0.4697, 0, 0}, 3},   //quartz Si 3a
	}
	for _, c := range cases {
		orbits, err := Expand(c.sg, [][3]float64{c.basis})
		if err != nil {
			Te.Errorf("spacegroup %d: %v", c.sg, err)
			continue
		}
		if len(orbits[0]) != c.want {
			Te.Errorf("spacegroup %d site %v: orbit size %d, want %d",
				c.sg, c.basis, len(orbits[0]), c.want)
		}
		for _, site := range orbits[0] {
			for _, f := range site {
				if f < -Symprec || f >= 1+Symprec {
					Te.Errorf("spacegroup %d: site %v outside the unit cell", c.sg, site)
				}
			}
		}
	}
}

//Two basis atoms that land on the same site must be rejected rather than
//silently doubled.
func TestExpandCollision(Te *testing.T) {
	_, err := Expand(225, [][3]float64{{0, 0, 0}, {0.5, 0.5, 0}})
	if err == nil {
		Te.Error("overlapping orbits should be an error")
	}
}

func TestSupportedAndSymbol(Te *testing.T) {
	if len(Supported()) < 10 {
		Te.Errorf("only %d supported spacegroups", len(Supported()))
	}
	sym, err := Symbol(227)
	if err != nil {
		Te.Fatal(err)
	}
	if sym != "F d -3 m" {
		Te.Errorf("symbol of 227: got %q", sym)
	}
	if _, err := Symbol(42); err == nil {
		Te.Error("unknown spacegroup number should be an error")
	}
}
