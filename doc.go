/*
 * doc.go, part of molbuild.
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

/*Package molbuild builds initial atomic configurations for molecular-dynamics
simulations.

	**molbuild capabilities**

    Generates bulk crystals from a built-in table of spacegroup descriptions
	(quartz, cristobalite, silicon carbide, diamond-structure elements, common
	metals, rock salt, alumina), repeated up to a requested physical size and
	delivered with a lower-triangular simulation cell, ready for LAMMPS.

    Carves arbitrary regions out of a structure using geometric predicates
	(boxes, spheres, cylinders, ellipsoids, half-spaces, octahedra, notches,
	Berkovich indenter tips, noise-roughened surface layers),
	keeping either the inside or the outside, optionally recovering the
	removed fragment.

    Fetches prepared systems (for instance amorphous silica quenches) from a
	remote repository, caching downloads locally so they happen only once.

    Reads and writes LAMMPS data files ("atomic" style) and XYZ files.

    Packs water into a region or around a solute with the external packmol
	program (see the packmol subpackage). Packmol must be obtained separately.

    Renders quick orthographic previews of a structure to PNG (see the render
	subpackage).

Coordinates live in a gonum mat.Dense with one row per atom. Structures are
mutated in place; call Copy before carving if the original is still needed.
No function in this package is safe for concurrent use on the same Structure.*/
package molbuild
