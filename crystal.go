/*
 * crystal.go, part of molbuild.
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
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/crystals.yaml
var crystalsYAML []byte

//CrystalSpec describes one crystal of the built-in table: lattice
//parameters (lengths in angstroms, angles in degrees), the element and
//fractional position of each basis site, and the spacegroup number used to
//expand the basis into the full unit cell. Specs are immutable; LookupCrystal
//returns copies.
type CrystalSpec struct {
	Name       string      `yaml:"name"`
	A          float64     `yaml:"a"`
	B          float64     `yaml:"b"`
	C          float64     `yaml:"c"`
	Alpha      float64     `yaml:"alpha"`
	Beta       float64     `yaml:"beta"`
	Gamma      float64     `yaml:"gamma"`
	Elements   []string    `yaml:"elements"`
	Positions  [][]float64 `yaml:"positions"`
	Spacegroup int         `yaml:"spacegroup"`
}

var crystalTable map[string]CrystalSpec

func init() {
	var specs []CrystalSpec
	if err := yaml.Unmarshal(crystalsYAML, &specs); err != nil {
		panic("molbuild: embedded crystal table is malformed: " + err.Error())
	}
	crystalTable = make(map[string]CrystalSpec, len(specs))
	for _, s := range specs {
		if len(s.Elements) != len(s.Positions) {
			panic(fmt.Sprintf("molbuild: crystal %q has %d elements for %d positions",
				s.Name, len(s.Elements), len(s.Positions)))
		}
		for _, p := range s.Positions {
			if len(p) != 3 {
				panic(fmt.Sprintf("molbuild: crystal %q has a position with %d components", s.Name, len(p)))
			}
		}
		crystalTable[s.Name] = s
	}
}

//LookupCrystal returns the table entry for the given crystal name.
//Lookup is by exact match only; unknown names are an error.
func LookupCrystal(name string) (*CrystalSpec, error) {
	s, ok := crystalTable[name]
	if !ok {
		return nil, newError(ErrLookup, fmt.Sprintf("crystal %q is not in the table", name))
	}
	//Copy the slices so callers cannot mutate the table.
	cp := s
	cp.Elements = append([]string(nil), s.Elements...)
	cp.Positions = make([][]float64, len(s.Positions))
	for i, p := range s.Positions {
		cp.Positions[i] = append([]float64(nil), p...)
	}
	return &cp, nil
}

//Crystals returns the names of all crystals in the table, sorted.
func Crystals() []string {
	names := make([]string, 0, len(crystalTable))
	for n := range crystalTable {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
