/*
 * render.go, part of molbuild.
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

//Package render draws quick orthographic projections of structures, one
//colored glyph per atom, mostly to eyeball a freshly built system without
//leaving the terminal session.
package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/molbuild/molbuild"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//CPK-ish colors for the elements this library builds most often. Anything
//not listed renders in gray.
var elementColors = map[string]color.RGBA{
	"H":  {230, 230, 230, 255},
	"C":  {60, 60, 60, 255},
	"N":  {48, 80, 248, 255},
	"O":  {255, 13, 13, 255},
	"Na": {171, 92, 242, 255},
	"Mg": {138, 255, 0, 255},
	"Al": {191, 166, 166, 255},
	"Si": {240, 200, 160, 255},
	"Cl": {31, 240, 31, 255},
	"Fe": {224, 102, 51, 255},
	"Cu": {200, 128, 51, 255},
}

var defaultColor = color.RGBA{128, 128, 128, 255}

//camera basis: given a view direction, return two orthonormal vectors
//spanning the projection plane. The first is horizontal on the plot.
func cameraBasis(dir [3]float64) (u, v [3]float64, err error) {
	n := math.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])
	if n == 0 {
		return u, v, fmt.Errorf("render: camera direction is the zero vector")
	}
	for i := range dir {
		dir[i] /= n
	}
	//Pick whichever axis is least aligned with the view to seed the basis.
	seed := [3]float64{0, 0, 1}
	if math.Abs(dir[2]) > math.Abs(dir[0]) && math.Abs(dir[2]) > math.Abs(dir[1]) {
		seed = [3]float64{0, 1, 0}
	}
	u = [3]float64{
		dir[1]*seed[2] - dir[2]*seed[1],
		dir[2]*seed[0] - dir[0]*seed[2],
		dir[0]*seed[1] - dir[1]*seed[0],
	}
	un := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	for i := range u {
		u[i] /= un
	}
	v = [3]float64{
		dir[1]*u[2] - dir[2]*u[1],
		dir[2]*u[0] - dir[0]*u[2],
		dir[0]*u[1] - dir[1]*u[0],
	}
	return u, v, nil
}

//Projection renders an orthographic projection of s along camera and saves
//it to filename. The output format follows the file extension (png, pdf,
//svg, anything gonum/plot supports). Atoms are painted far to near so the
//side facing the camera ends up on top.
func Projection(s *molbuild.Structure, camera [3]float64, filename string) error {
	if s == nil || s.Len() == 0 {
		return fmt.Errorf("render: nothing to draw")
	}
	u, v, err := cameraBasis(camera)
	if err != nil {
		return err
	}
	type proj struct {
		x, y, depth float64
		sym         string
	}
	atoms := make([]proj, s.Len())
	for i := 0; i < s.Len(); i++ {
		x, y, z := s.XYZ(i)
		atoms[i] = proj{
			x:     x*u[0] + y*u[1] + z*u[2],
			y:     x*v[0] + y*v[1] + z*v[2],
			depth: x*camera[0] + y*camera[1] + z*camera[2],
			sym:   s.Atom(i).Symbol,
		}
	}
	sort.SliceStable(atoms, func(i, j int) bool { return atoms[i].depth > atoms[j].depth })

	p := plot.New()
	p.Title.Text = "molbuild projection"
	p.X.Label.Text = "x / Å"
	p.Y.Label.Text = "y / Å"

	//One scatter per atom keeps the paint order equal to the depth order.
	for _, a := range atoms {
		sc, err := plotter.NewScatter(plotter.XYs{{X: a.x, Y: a.y}})
		if err != nil {
			return err
		}
		c, ok := elementColors[a.sym]
		if !ok {
			c = defaultColor
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}
	return p.Save(12*vg.Centimeter, 12*vg.Centimeter, filename)
}
