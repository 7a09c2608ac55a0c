/*
 * atomicdata.go, part of molbuild.
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

import "math"

//A map for assigning mass to elements.
//Only the elements that appear in the crystal table, in solvents and in
//prepared systems from the remote repository are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.990,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Ti": 47.867,
	"Fe": 55.845,
	"Ni": 58.693,
	"Cu": 63.546,
	"Zn": 65.38,
	"Ge": 72.630,
	"Br": 79.904,
	"Ag": 107.87,
	"I":  126.90,
	"Au": 196.97,
}

//AtomicMass returns the atomic mass of the element with the given symbol,
//in g/mol. It returns an error if the element is not in the table.
func AtomicMass(symbol string) (float64, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, newError(ErrLookup, "no atomic mass for element "+symbol)
	}
	return m, nil
}

//symbolFromMass returns the element whose tabulated mass is closest to m.
//LAMMPS data files identify species only by a numeric type and its mass, so
//reading one back requires this inverse lookup. Returns an empty string when
//nothing in the table is a credible match.
func symbolFromMass(m float64) string {
	best := ""
	bestd := math.Inf(1)
	for sym, mass := range symbolMass {
		d := math.Abs(mass - m)
		if d < bestd {
			bestd = d
			best = sym
		}
	}
	//Anything further than 1 g/mol from a tabulated mass is not one of
	//the elements we know about.
	if bestd > 1.0 {
		return ""
	}
	return best
}
