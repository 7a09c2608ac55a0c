/*
 * carve.go, part of molbuild.
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

import "fmt"

//CarveGeometry deletes atoms from s according to geometry. With side "in"
//the atoms inside the region are removed, with side "out" the ones outside.
//The geometry is evaluated exactly once. Mutation is in place and
//irreversible; callers that still need the intact structure must Copy it
//first. Returns the number of atoms removed and, if returnCarved is true, a
//new structure holding the removed fragment (nil otherwise).
func CarveGeometry(s *Structure, geometry Geometry, side string, returnCarved bool) (int, *Structure, error) {
	if side != "in" && side != "out" {
		return 0, nil, newError(ErrInvalidArgument, fmt.Sprintf("side %q, want in or out", side))
	}
	mask := geometry.Mask(s)
	if len(mask) != s.Len() {
		return 0, nil, newError(ErrInvalidArgument,
			fmt.Sprintf("geometry produced %d mask entries for %d atoms", len(mask), s.Len()))
	}
	del := mask
	if side == "out" {
		del = make([]bool, len(mask))
		for i, in := range mask {
			del[i] = !in
		}
	}
	var carved *Structure
	if returnCarved {
		carved = s.Copy()
	}
	n, err := s.Delete(del)
	if err != nil {
		return 0, nil, err
	}
	if returnCarved {
		keep := make([]bool, len(del))
		for i, d := range del {
			keep[i] = !d
		}
		if _, err := carved.Delete(keep); err != nil {
			return 0, nil, err
		}
	}
	return n, carved, nil
}
