/*
 * surface.go, part of molbuild.
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

	perlin "github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

//The noise fields a procedural surface can be modulated by.
const (
	NoisePerlin  = "perlin"
	NoiseSimplex = "simplex"
)

//ProceduralSurfaceGeometry is a rough surface: the half-space on the
//normal side of a plane, plus a layer of noise-modulated depth (up to
//thickness) below it. Carving it away leaves the remaining material with a
//procedurally rough face instead of a flat cut.
type ProceduralSurfaceGeometry struct {
	point, normal [3]float64
	thickness     float64
	scale         float64
	angle         float64
	threshold     float64
	hasThreshold  bool
	offset        func(x, y, z float64) float64
	noise         func(x, y, z float64) float64
}

//NewProceduralSurface returns a noisy surface through point with the given
//outward normal. thickness bounds the depth of the rough layer, scale
//stretches the noise features, method is NoisePerlin or NoiseSimplex and
//seed makes the field reproducible.
func NewProceduralSurface(point, normal [3]float64, thickness, scale float64, method string, seed int64) (*ProceduralSurfaceGeometry, error) {
	if normal == [3]float64{} {
		return nil, newError(ErrInvalidArgument, "surface normal must be nonzero")
	}
	if thickness <= 0 || scale <= 0 {
		return nil, newError(ErrInvalidArgument, "surface thickness and noise scale must be positive")
	}
	g := &ProceduralSurfaceGeometry{
		point:     point,
		normal:    normalize(normal),
		thickness: thickness,
		scale:     scale,
		angle:     90,
	}
	switch method {
	case NoisePerlin:
		p := perlin.NewPerlin(2, 2, 3, seed)
		g.noise = p.Noise3D
	case NoiseSimplex:
		n := opensimplex.New(seed)
		g.noise = n.Eval3
	default:
		return nil, newError(ErrInvalidArgument,
			fmt.Sprintf("noise method %q, want %s or %s", method, NoisePerlin, NoiseSimplex))
	}
	return g, nil
}

//SetThreshold turns the noise into a two-level surface: where the raw
//noise exceeds t the layer has full thickness, elsewhere none.
func (g *ProceduralSurfaceGeometry) SetThreshold(t float64) {
	g.threshold = t
	g.hasThreshold = true
}

//SetAngle shears the in-plane noise coordinates for a triclinic surface.
//deg is the cell angle in degrees; the default of 90 leaves the field
//untouched.
func (g *ProceduralSurfaceGeometry) SetAngle(deg float64) { g.angle = deg }

//SetOffset adds an arbitrary function of the in-plane position to the
//noise level, for composing ramps or steps with the noise.
func (g *ProceduralSurfaceGeometry) SetOffset(f func(x, y, z float64) float64) { g.offset = f }

func (g *ProceduralSurfaceGeometry) Mask(s *Structure) []bool {
	mask := make([]bool, s.Len())
	for i := range mask {
		x, y, z := s.XYZ(i)
		p := [3]float64{x, y, z}
		d := distPointPlane(g.normal, g.point, p)
		//The noise is sampled at the projection of the atom onto the
		//surface plane, sheared when the surface is triclinic.
		q := [3]float64{
			p[0] - d*g.normal[0],
			p[1] - d*g.normal[1],
			p[2] - d*g.normal[2],
		}
		q[0] += q[1] * math.Cos(deg2rad(g.angle))
		n := g.noise(q[0]/g.scale, q[1]/g.scale, q[2]/g.scale)
		var level float64
		if g.hasThreshold {
			if n > g.threshold {
				level = 1
			}
		} else {
			level = (n + 1) / 2
		}
		if g.offset != nil {
			level += g.offset(q[0], q[1], q[2])
		}
		mask[i] = -d < level*g.thickness
	}
	return mask
}
