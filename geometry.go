/*
 * geometry.go, part of molbuild.
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
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Geometry computes a membership mask over the atoms of a structure:
//one entry per atom, true meaning the atom lies inside the region.
//Geometries are stateless values; evaluating a mask never mutates the
//structure.
type Geometry interface {
	Mask(s *Structure) []bool
}

//PackmolGeometry is implemented by the geometries that can constrain a
//packmol fill region. PackmolBlock returns a complete
//"structure ... end structure" input block filling the region with number
//copies of the molecule in template. side is "inside" or "outside".
type PackmolGeometry interface {
	Geometry
	PackmolBlock(template string, number int, side string) (string, error)
}

//Bounded is implemented by geometries with a finite axis-aligned bounding
//box.
type Bounded interface {
	Bounds() (lo, hi [3]float64)
}

func packmolSide(side string) (string, error) {
	switch side {
	case "in", "inside":
		return "inside", nil
	case "out", "outside":
		return "outside", nil
	}
	return "", newError(ErrInvalidArgument, fmt.Sprintf("side %q, want in or out", side))
}

//distPointPlane returns the signed distance from p to the plane through
//point with unit normal n, positive on the side the normal points to.
func distPointPlane(n, point, p [3]float64) float64 {
	return (p[0]-point[0])*n[0] + (p[1]-point[1])*n[1] + (p[2]-point[2])*n[2]
}

//distPointLine returns the distance from p to the line through point with
//unit direction vec.
func distPointLine(vec, point, p [3]float64) float64 {
	d := [3]float64{p[0] - point[0], p[1] - point[1], p[2] - point[2]}
	c := cross3(vec, d)
	return math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

/*****Box*****/

//BoxGeometry is an axis-aligned box.
type BoxGeometry struct {
	lo, hi [3]float64
}

//NewBox returns the box with the given lower and upper corners.
func NewBox(lo, hi [3]float64) (*BoxGeometry, error) {
	for i := 0; i < 3; i++ {
		if hi[i] < lo[i] {
			return nil, newError(ErrInvalidArgument, "box upper corner below lower corner")
		}
	}
	return &BoxGeometry{lo: lo, hi: hi}, nil
}

//NewBoxCenter returns the box centered on center with the given side
//lengths.
func NewBoxCenter(center, length [3]float64) (*BoxGeometry, error) {
	var lo, hi [3]float64
	for i := 0; i < 3; i++ {
		lo[i] = center[i] - length[i]/2
		hi[i] = center[i] + length[i]/2
	}
	return NewBox(lo, hi)
}

func (g *BoxGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		p := [3]float64{x, y, z}
		in := true
		for j := 0; j < 3; j++ {
			if p[j] < g.lo[j] || p[j] > g.hi[j] {
				in = false
				break
			}
		}
		mask[i] = in
	}
	return mask
}

func (g *BoxGeometry) Bounds() (lo, hi [3]float64) { return g.lo, g.hi }

//Volume returns the volume of the box.
func (g *BoxGeometry) Volume() float64 {
	return (g.hi[0] - g.lo[0]) * (g.hi[1] - g.lo[1]) * (g.hi[2] - g.lo[2])
}

func (g *BoxGeometry) PackmolBlock(template string, number int, side string) (string, error) {
	sd, err := packmolSide(side)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "structure %s\n", template)
	fmt.Fprintf(&b, "  number %d\n", number)
	fmt.Fprintf(&b, "  %s box %g %g %g %g %g %g\n", sd,
		g.lo[0], g.lo[1], g.lo[2], g.hi[0], g.hi[1], g.hi[2])
	b.WriteString("end structure\n")
	return b.String(), nil
}

/*****Cube*****/

//CubeGeometry is a box with equal sides.
type CubeGeometry struct {
	BoxGeometry
}

//NewCube returns the cube centered on center with the given side length.
func NewCube(center [3]float64, side float64) (*CubeGeometry, error) {
	box, err := NewBoxCenter(center, [3]float64{side, side, side})
	if err != nil {
		return nil, err
	}
	return &CubeGeometry{*box}, nil
}

/*****Sphere*****/

//SphereGeometry is a sphere. If any periodicity flag is set and the
//structure has a cell, distances to the center are measured under the
//minimum image convention along the periodic axes.
type SphereGeometry struct {
	center [3]float64
	radius float64
	pbc    [3]bool
}

//NewSphere returns the sphere with the given center and radius.
func NewSphere(center [3]float64, radius float64) (*SphereGeometry, error) {
	if radius <= 0 {
		return nil, newError(ErrInvalidArgument, "sphere radius must be positive")
	}
	return &SphereGeometry{center: center, radius: radius}, nil
}

//SetPBC makes distance evaluation periodic along the flagged axes.
func (g *SphereGeometry) SetPBC(x, y, z bool) { g.pbc = [3]bool{x, y, z} }

func (g *SphereGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	rsq := g.radius * g.radius
	mic := s.Cell() != nil && (g.pbc[0] || g.pbc[1] || g.pbc[2])
	var inv mat.Dense
	if mic {
		if err := inv.Inverse(s.Cell()); err != nil {
			mic = false
		}
	}
	for i := range mask {
		x, y, z := s.XYZ(i)
		d := [3]float64{x - g.center[0], y - g.center[1], z - g.center[2]}
		if mic {
			fx, fy, fz := rowTimes(&inv, d[0], d[1], d[2])
			f := [3]float64{fx, fy, fz}
			for j := 0; j < 3; j++ {
				if g.pbc[j] {
					f[j] -= math.Round(f[j])
				}
			}
			d[0], d[1], d[2] = rowTimes(s.Cell(), f[0], f[1], f[2])
		}
		mask[i] = d[0]*d[0]+d[1]*d[1]+d[2]*d[2] < rsq
	}
	return mask
}

func (g *SphereGeometry) Bounds() (lo, hi [3]float64) {
	for i := 0; i < 3; i++ {
		lo[i] = g.center[i] - g.radius
		hi[i] = g.center[i] + g.radius
	}
	return lo, hi
}

func (g *SphereGeometry) PackmolBlock(template string, number int, side string) (string, error) {
	sd, err := packmolSide(side)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "structure %s\n", template)
	fmt.Fprintf(&b, "  number %d\n", number)
	fmt.Fprintf(&b, "  %s sphere %g %g %g %g\n", sd,
		g.center[0], g.center[1], g.center[2], g.radius)
	b.WriteString("end structure\n")
	return b.String(), nil
}

/*****Cylinder*****/

//CylinderGeometry is a right circular cylinder given by its center, radius,
//length and axis orientation.
type CylinderGeometry struct {
	center      [3]float64
	radius      float64
	length      float64
	orientation [3]float64
}

//NewCylinder returns a cylinder. orientation points along the cylinder
//axis; the zero vector defaults to x.
func NewCylinder(center [3]float64, radius, length float64, orientation [3]float64) (*CylinderGeometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newError(ErrInvalidArgument, "cylinder radius and length must be positive")
	}
	if orientation == [3]float64{} {
		orientation = [3]float64{1, 0, 0}
	}
	return &CylinderGeometry{center: center, radius: radius, length: length,
		orientation: normalize(orientation)}, nil
}

func (g *CylinderGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		p := [3]float64{x, y, z}
		dline := distPointLine(g.orientation, g.center, p)
		dplane := math.Abs(distPointPlane(g.orientation, g.center, p))
		mask[i] = dline <= g.radius && dplane <= g.length/2
	}
	return mask
}

func (g *CylinderGeometry) Bounds() (lo, hi [3]float64) {
	//Conservative: the box of the enclosing sphere.
	r := math.Sqrt(g.radius*g.radius + g.length*g.length/4)
	for i := 0; i < 3; i++ {
		lo[i] = g.center[i] - r
		hi[i] = g.center[i] + r
	}
	return lo, hi
}

func (g *CylinderGeometry) PackmolBlock(template string, number int, side string) (string, error) {
	sd, err := packmolSide(side)
	if err != nil {
		return "", err
	}
	//packmol wants the cylinder as base point + direction + radius + length.
	base := [3]float64{
		g.center[0] - g.orientation[0]*g.length/2,
		g.center[1] - g.orientation[1]*g.length/2,
		g.center[2] - g.orientation[2]*g.length/2,
	}
	var b strings.Builder
	fmt.Fprintf(&b, "structure %s\n", template)
	fmt.Fprintf(&b, "  number %d\n", number)
	fmt.Fprintf(&b, "  %s cylinder %g %g %g %g %g %g %g %g\n", sd,
		base[0], base[1], base[2],
		g.orientation[0], g.orientation[1], g.orientation[2],
		g.radius, g.length)
	b.WriteString("end structure\n")
	return b.String(), nil
}

/*****Ellipsoid*****/

//EllipsoidGeometry contains the points satisfying
//(x-x0)^2/a^2 + (y-y0)^2/b^2 + (z-z0)^2/c^2 <= d.
type EllipsoidGeometry struct {
	center [3]float64
	axes   [3]float64
	d      float64
}

//NewEllipsoid returns an ellipsoid with the given center, semi-axis
//lengths and scaling d.
func NewEllipsoid(center, axes [3]float64, d float64) (*EllipsoidGeometry, error) {
	if axes[0] <= 0 || axes[1] <= 0 || axes[2] <= 0 || d <= 0 {
		return nil, newError(ErrInvalidArgument, "ellipsoid axes and scaling must be positive")
	}
	return &EllipsoidGeometry{center: center, axes: axes, d: d}, nil
}

func (g *EllipsoidGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		dx := (x - g.center[0]) / g.axes[0]
		dy := (y - g.center[1]) / g.axes[1]
		dz := (z - g.center[2]) / g.axes[2]
		mask[i] = dx*dx+dy*dy+dz*dz <= g.d
	}
	return mask
}

func (g *EllipsoidGeometry) Bounds() (lo, hi [3]float64) {
	sq := math.Sqrt(g.d)
	for i := 0; i < 3; i++ {
		lo[i] = g.center[i] - g.axes[i]*sq
		hi[i] = g.center[i] + g.axes[i]*sq
	}
	return lo, hi
}

func (g *EllipsoidGeometry) PackmolBlock(template string, number int, side string) (string, error) {
	sd, err := packmolSide(side)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "structure %s\n", template)
	fmt.Fprintf(&b, "  number %d\n", number)
	fmt.Fprintf(&b, "  %s ellipsoid %g %g %g %g %g %g %g\n", sd,
		g.center[0], g.center[1], g.center[2],
		g.axes[0], g.axes[1], g.axes[2], g.d)
	b.WriteString("end structure\n")
	return b.String(), nil
}

/*****Planes*****/

//PlaneGeometry is the intersection of half-spaces: a point is inside when
//it lies on the positive-normal side of every plane. Any convex polyhedron
//can be described this way.
type PlaneGeometry struct {
	points  [][3]float64
	normals [][3]float64
}

//NewPlanes returns the half-space intersection defined by one point and
//one normal vector per plane.
func NewPlanes(points, normals [][3]float64) (*PlaneGeometry, error) {
	if len(points) == 0 || len(points) != len(normals) {
		return nil, newError(ErrInvalidArgument, "need the same, nonzero number of points and normals")
	}
	ns := make([][3]float64, len(normals))
	for i, n := range normals {
		ns[i] = normalize(n)
	}
	return &PlaneGeometry{points: points, normals: ns}, nil
}

func (g *PlaneGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		p := [3]float64{x, y, z}
		in := true
		for j := range g.points {
			if distPointPlane(g.normals[j], g.points[j], p) < 0 {
				in = false
				break
			}
		}
		mask[i] = in
	}
	return mask
}

func (g *PlaneGeometry) PackmolBlock(template string, number int, side string) (string, error) {
	sd, err := packmolSide(side)
	if err != nil {
		return "", err
	}
	//packmol constrains against planes with "over" and "below".
	word := "over"
	if sd == "outside" {
		word = "below"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "structure %s\n", template)
	fmt.Fprintf(&b, "  number %d\n", number)
	for j := range g.points {
		n := g.normals[j]
		d := n[0]*g.points[j][0] + n[1]*g.points[j][1] + n[2]*g.points[j][2]
		fmt.Fprintf(&b, "  %s plane %g %g %g %g\n", word, n[0], n[1], n[2], d)
	}
	b.WriteString("end structure\n")
	return b.String(), nil
}

/*****Plane-bound triclinic*****/

//PlaneBoundTriclinicGeometry is the region enclosed by the six faces of a
//(possibly tilted) simulation cell, shifted inwards by margin/2 on every
//face. It lets water be packed into the exact periodic box of a crystal.
type PlaneBoundTriclinicGeometry struct {
	planes *PlaneGeometry
	corner [3]float64 //a+b+c
}

//NewPlaneBoundTriclinic builds the geometry from a 3x3 cell matrix whose
//rows are the box vectors. margin shrinks the region to keep periodic
//images from overlapping.
func NewPlaneBoundTriclinic(cell *mat.Dense, margin float64) (*PlaneBoundTriclinicGeometry, error) {
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, newError(ErrInvalidArgument, fmt.Sprintf("cell matrix is %dx%d, want 3x3", r, c))
	}
	var a, b, c, top [3]float64
	for j := 0; j < 3; j++ {
		a[j] = cell.At(0, j)
		b[j] = cell.At(1, j)
		c[j] = cell.At(2, j)
		top[j] = a[j] + b[j] + c[j]
	}
	shift := margin / 2
	origin := [3]float64{shift, shift, shift}
	inner := [3]float64{top[0] - shift, top[1] - shift, top[2] - shift}
	n1 := normalize(cross3(a, b))
	n2 := normalize(cross3(c, a))
	n3 := normalize(cross3(b, c))
	//Cross products can point either way depending on handedness; flip
	//each normal so it points into the cell from the origin faces.
	for _, n := range []*[3]float64{&n1, &n2, &n3} {
		if distPointPlane(*n, origin, inner) < 0 {
			n[0], n[1], n[2] = -n[0], -n[1], -n[2]
		}
	}
	neg := func(n [3]float64) [3]float64 { return [3]float64{-n[0], -n[1], -n[2]} }
	planes, err := NewPlanes(
		[][3]float64{origin, origin, origin, inner, inner, inner},
		[][3]float64{n1, n2, n3, neg(n1), neg(n2), neg(n3)})
	if err != nil {
		return nil, err
	}
	return &PlaneBoundTriclinicGeometry{planes: planes, corner: top}, nil
}

func (g *PlaneBoundTriclinicGeometry) Mask(s *Structure) []bool { return g.planes.Mask(s) }

func (g *PlaneBoundTriclinicGeometry) Bounds() (lo, hi [3]float64) {
	for i := 0; i < 3; i++ {
		lo[i] = math.Min(0, g.corner[i])
		hi[i] = math.Max(0, g.corner[i])
	}
	return lo, hi
}

func (g *PlaneBoundTriclinicGeometry) PackmolBlock(template string, number int, side string) (string, error) {
	return g.planes.PackmolBlock(template, number, side)
}

/*****Octahedron*****/

//OctahedronGeometry is a regular octahedron with axis-aligned vertices:
//the points within L1 distance d of the center.
type OctahedronGeometry struct {
	center [3]float64
	d      float64
}

//NewOctahedron returns an octahedron with the given center and L1 radius.
func NewOctahedron(center [3]float64, d float64) (*OctahedronGeometry, error) {
	if d <= 0 {
		return nil, newError(ErrInvalidArgument, "octahedron size must be positive")
	}
	return &OctahedronGeometry{center: center, d: d}, nil
}

func (g *OctahedronGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		l1 := math.Abs(x-g.center[0]) + math.Abs(y-g.center[1]) + math.Abs(z-g.center[2])
		mask[i] = l1 <= g.d
	}
	return mask
}

func (g *OctahedronGeometry) Bounds() (lo, hi [3]float64) {
	for i := 0; i < 3; i++ {
		lo[i] = g.center[i] - g.d
		hi[i] = g.center[i] + g.d
	}
	return lo, hi
}

/*****Berkovich indenter*****/

//BerkovichGeometry is a three-sided pyramidal indenter with its apex
//pointing down the z axis. The standard Berkovich half-angle is 65.27
//degrees.
type BerkovichGeometry struct {
	tip    [3]float64
	planes [3][3]float64
}

//NewBerkovich returns an indenter with its apex at tip and the given
//half-angle in degrees.
func NewBerkovich(tip [3]float64, angleDeg float64) (*BerkovichGeometry, error) {
	if angleDeg <= 0 || angleDeg >= 90 {
		return nil, newError(ErrInvalidArgument, "indenter half-angle must be between 0 and 90 degrees")
	}
	g := &BerkovichGeometry{tip: tip}
	zc := math.Cos(math.Pi/2 - deg2rad(angleDeg))
	xyc := math.Sin(math.Pi/2 - deg2rad(angleDeg))
	for k, a := range [3]float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3} {
		g.planes[k] = [3]float64{xyc * math.Cos(a), xyc * math.Sin(a), zc}
	}
	return g, nil
}

func (g *BerkovichGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		rel := [3]float64{x - g.tip[0], y - g.tip[1], z - g.tip[2]}
		in := true
		for _, n := range g.planes {
			if rel[0]*n[0]+rel[1]*n[1]+rel[2]*n[2] <= 0 {
				in = false
				break
			}
		}
		mask[i] = in
	}
	return mask
}

/*****Notch*****/

//NotchGeometry is a wedge-shaped crack: it starts at an entry point, runs
//along vectorIn, and opens by vectorUp above and below the entry line.
type NotchGeometry struct {
	entry, vectorIn, vectorUp [3]float64
	tip                       [3]float64
	normalUpper, normalLower  [3]float64
}

//NewNotch returns a notch from the entry point, the crack length vector
//and the half-opening vector.
func NewNotch(entry, vectorIn, vectorUp [3]float64) (*NotchGeometry, error) {
	if vectorIn == [3]float64{} || vectorUp == [3]float64{} {
		return nil, newError(ErrInvalidArgument, "notch vectors must be nonzero")
	}
	g := &NotchGeometry{entry: entry, vectorIn: vectorIn, vectorUp: vectorUp}
	for i := 0; i < 3; i++ {
		g.tip[i] = entry[i] + vectorIn[i]
	}
	side := cross3(vectorIn, vectorUp)
	//Upper face: through entry+vectorUp, entry+vectorIn and a point off to
	//the side; lower face mirrored through the entry line.
	up := func(sgn float64) [3]float64 {
		var p1, p2, p3 [3]float64
		for i := 0; i < 3; i++ {
			p1[i] = entry[i] + sgn*vectorUp[i]
			p2[i] = entry[i] + vectorIn[i]
			p3[i] = p2[i] + sgn*side[i]
		}
		v1 := [3]float64{p3[0] - p1[0], p3[1] - p1[1], p3[2] - p1[2]}
		v2 := [3]float64{p2[0] - p1[0], p2[1] - p1[1], p2[2] - p1[2]}
		return cross3(v1, v2)
	}
	g.normalUpper = up(1)
	g.normalLower = up(-1)
	return g, nil
}

func (g *NotchGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		p := [3]float64{x, y, z}
		de := [3]float64{g.entry[0] - p[0], g.entry[1] - p[1], g.entry[2] - p[2]}
		dt := [3]float64{g.tip[0] - p[0], g.tip[1] - p[1], g.tip[2] - p[2]}
		behindEntry := de[0]*g.vectorIn[0]+de[1]*g.vectorIn[1]+de[2]*g.vectorIn[2] > 0
		aboveUpper := dt[0]*g.normalUpper[0]+dt[1]*g.normalUpper[1]+dt[2]*g.normalUpper[2] < 0
		belowLower := dt[0]*g.normalLower[0]+dt[1]*g.normalLower[1]+dt[2]*g.normalLower[2] < 0
		mask[i] = !(!behindEntry && (aboveUpper || belowLower))
	}
	return mask
}
