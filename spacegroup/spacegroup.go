/*
 * spacegroup.go, part of molbuild.
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

//Package spacegroup expands crystallographic basis positions into the full
//set of symmetry-equivalent sites of a spacegroup. Symmetry operators are
//stored as generator strings in the "x,y,z" algebra of the International
//Tables plus lattice centering vectors; the full operator set is obtained
//by closing the generators under composition. Only the spacegroups of the
//built-in crystal table are carried; asking for another one is an error.
package spacegroup

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

//Symprec is the distance, in fractional coordinates, under which two
//symmetry-generated sites are considered the same site.
const Symprec = 1e-3

//Op is a symmetry operation in fractional coordinates: p' = p R + t,
//with positions as row vectors.
type Op struct {
	R [3][3]float64
	T [3]float64
}

//Apply returns the image of the fractional position p under the operation,
//reduced into the [0,1) unit cell.
func (o Op) Apply(p [3]float64) [3]float64 {
	var q [3]float64
	for j := 0; j < 3; j++ {
		q[j] = p[0]*o.R[0][j] + p[1]*o.R[1][j] + p[2]*o.R[2][j] + o.T[j]
		q[j] = mod1(q[j])
	}
	return q
}

//compose returns the operation equivalent to applying b first, then a.
func compose(a, b Op) Op {
	var c Op
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c.R[i][j] += b.R[i][k] * a.R[k][j]
			}
		}
	}
	for j := 0; j < 3; j++ {
		c.T[j] = mod1(b.T[0]*a.R[0][j] + b.T[1]*a.R[1][j] + b.T[2]*a.R[2][j] + a.T[j])
	}
	return c
}

func mod1(v float64) float64 {
	v -= math.Floor(v)
	if v > 1-1e-9 {
		v = 0
	}
	return v
}

func opsEqual(a, b Op) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.R[i][j]-b.R[i][j]) > 1e-9 {
				return false
			}
		}
		d := math.Abs(a.T[i] - b.T[i])
		if d > 1e-6 && math.Abs(d-1) > 1e-6 {
			return false
		}
	}
	return true
}

var identity = Op{R: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}

//ParseOp parses a symmetry operator written in the "x,y,z" algebra, for
//instance "-y,x-y,z+2/3" or "1/4-x,1/4-y,1/4-z".
func ParseOp(s string) (Op, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Op{}, fmt.Errorf("spacegroup: operator %q does not have 3 components", s)
	}
	var o Op
	for j, part := range parts {
		row, t, err := parseComponent(part)
		if err != nil {
			return Op{}, fmt.Errorf("spacegroup: operator %q: %w", s, err)
		}
		for i := 0; i < 3; i++ {
			o.R[i][j] = row[i]
		}
		o.T[j] = mod1(t)
	}
	return o, nil
}

func parseComponent(s string) (row [3]float64, t float64, err error) {
	s = strings.ReplaceAll(s, " ", "")
	sign := 1.0
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '+':
			sign = 1
			i++
		case c == '-':
			sign = -1
			i++
		case c == 'x':
			row[0] += sign
			sign = 1
			i++
		case c == 'y':
			row[1] += sign
			sign = 1
			i++
		case c == 'z':
			row[2] += sign
			sign = 1
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '/' || s[j] == '.') {
				j++
			}
			v, ferr := parseFraction(s[i:j])
			if ferr != nil {
				return row, t, ferr
			}
			t += sign * v
			sign = 1
			i = j
		default:
			return row, t, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return row, t, nil
}

func parseFraction(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator in %q", s)
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

//group holds the generator data of one spacegroup: lattice centering
//translations (beyond the trivial one) and generator operators.
type group struct {
	symbol     string
	centerings [][3]float64
	generators []string
}

var fCentering = [][3]float64{{0, .5, .5}, {.5, 0, .5}, {.5, .5, 0}}

//Generators from the International Tables, one entry per spacegroup the
//crystal table needs. Full operator sets come out of the closure.
var groups = map[int]group{
	1: {symbol: "P 1"},
	154: {symbol: "P 32 2 1",
		generators: []string{"-y,x-y,z+2/3", "y,x,-z"}},
	167: {symbol: "R -3 c",
		centerings: [][3]float64{{2. / 3, 1. / 3, 1. / 3}, {1. / 3, 2. / 3, 2. / 3}},
		generators: []string{"-y,x-y,z", "-y,-x,z+1/2", "-x,-y,-z"}},
	181: {symbol: "P 62 2 2",
		generators: []string{"x-y,x,z+1/3", "y,x,-z"}},
	186: {symbol: "P 63 m c",
		generators: []string{"-y,x-y,z", "-x,-y,z+1/2", "-y,-x,z"}},
	194: {symbol: "P 63/m m c",
		generators: []string{"-y,x-y,z", "-x,-y,z+1/2", "-y,-x,z", "-x,-y,-z"}},
	216: {symbol: "F -4 3 m",
		centerings: fCentering,
		generators: []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,z"}},
	225: {symbol: "F m -3 m",
		centerings: fCentering,
		generators: []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,z", "-x,-y,-z"}},
	227: {symbol: "F d -3 m",
		centerings: fCentering,
		generators: []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,z", "1/4-x,1/4-y,1/4-z"}},
	229: {symbol: "I m -3 m",
		centerings: [][3]float64{{.5, .5, .5}},
		generators: []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,z", "-x,-y,-z"}},
}

//Supported returns the spacegroup numbers this package carries operators
//for, in no particular order.
func Supported() []int {
	nums := make([]int, 0, len(groups))
	for n := range groups {
		nums = append(nums, n)
	}
	return nums
}

//Symbol returns the Hermann-Mauguin symbol of the given spacegroup number.
func Symbol(sg int) (string, error) {
	g, ok := groups[sg]
	if !ok {
		return "", fmt.Errorf("spacegroup: no operator data for spacegroup %d", sg)
	}
	return g.symbol, nil
}

//Ops returns the full operator set of the given spacegroup number,
//computed by closing its generators and centering translations under
//composition.
func Ops(sg int) ([]Op, error) {
	g, ok := groups[sg]
	if !ok {
		return nil, fmt.Errorf("spacegroup: no operator data for spacegroup %d", sg)
	}
	ops := []Op{identity}
	add := func(o Op) bool {
		for _, p := range ops {
			if opsEqual(o, p) {
				return false
			}
		}
		ops = append(ops, o)
		return true
	}
	for _, s := range g.generators {
		o, err := ParseOp(s)
		if err != nil {
			return nil, err
		}
		add(o)
	}
	for _, t := range g.centerings {
		add(Op{R: identity.R, T: t})
	}
	//Close under composition. The largest group carried here has 192
	//operators, so the cap is generous; hitting it means broken
	//generator data.
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(ops); i++ {
			for j := 0; j < len(ops); j++ {
				if add(compose(ops[i], ops[j])) {
					changed = true
				}
				if len(ops) > 200 {
					return nil, fmt.Errorf("spacegroup: operator closure for spacegroup %d did not converge", sg)
				}
			}
		}
	}
	return ops, nil
}

//Expand applies the operators of the spacegroup to each basis position and
//returns, per basis position, the distinct sites of its orbit in fractional
//coordinates. Sites closer than Symprec are merged. If orbits of two
//different basis positions collide, the basis is inconsistent with the
//spacegroup and an error is returned.
func Expand(sg int, basis [][3]float64) ([][][3]float64, error) {
	ops, err := Ops(sg)
	if err != nil {
		return nil, err
	}
	orbits := make([][][3]float64, len(basis))
	for bi, p := range basis {
		for _, o := range ops {
			q := o.Apply(p)
			dup := false
			for _, r := range orbits[bi] {
				if sameSite(q, r) {
					dup = true
					break
				}
			}
			if !dup {
				orbits[bi] = append(orbits[bi], q)
			}
		}
	}
	for i := 0; i < len(orbits); i++ {
		for j := i + 1; j < len(orbits); j++ {
			for _, q := range orbits[i] {
				for _, r := range orbits[j] {
					if sameSite(q, r) {
						return nil, fmt.Errorf("spacegroup: basis positions %d and %d generate overlapping sites in spacegroup %d", i, j, sg)
					}
				}
			}
		}
	}
	return orbits, nil
}

//sameSite compares two fractional positions under periodic boundary
//conditions.
func sameSite(a, b [3]float64) bool {
	for i := 0; i < 3; i++ {
		d := math.Abs(a[i] - b[i])
		if d > 0.5 {
			d = 1 - d
		}
		if d > Symprec {
			return false
		}
	}
	return true
}
