/*
 * crystal_test.go, part of molbuild.
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
	"sort"
	"testing"
)

func TestCrystalTable(Te *testing.T) {
	names := Crystals()
	if len(names) == 0 {
		Te.Fatal("empty crystal table")
	}
	if !sort.StringsAreSorted(names) {
		Te.Error("Crystals() should come back sorted")
	}
	for _, name := range names {
		spec, err := LookupCrystal(name)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		if len(spec.Elements) != len(spec.Positions) {
			Te.Errorf("%s: %d elements for %d positions", name, len(spec.Elements), len(spec.Positions))
		}
		for _, p := range spec.Positions {
			for _, f := range p {
				if f < 0 || f >= 1 {
					Te.Errorf("%s: fractional coordinate %g outside [0,1)", name, f)
				}
			}
		}
	}
}

func TestLookupCrystalCopies(Te *testing.T) {
	spec, err := LookupCrystal("alpha_quartz")
	if err != nil {
		Te.Fatal(err)
	}
	spec.A = -1
	spec.Positions[0][0] = 99
	again, err := LookupCrystal("alpha_quartz")
	if err != nil {
		Te.Fatal(err)
	}
	if again.A == -1 || again.Positions[0][0] == 99 {
		Te.Error("LookupCrystal must return copies, the table got mutated")
	}
	if _, err := LookupCrystal("kryptonite"); err == nil {
		Te.Error("unknown crystal should be an error")
	}
}
