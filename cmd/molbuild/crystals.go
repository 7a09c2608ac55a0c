/*
 * crystals.go, part of molbuild.
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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molbuild/molbuild"
)

var crystalsCmd = &cobra.Command{
	Use:   "crystals",
	Short: "List the crystals that can be built",
	RunE:  runCrystals,
}

func init() {
	crystalsCmd.Flags().BoolP("long", "l", false, "also print spacegroup and lattice parameters")
	rootCmd.AddCommand(crystalsCmd)
}

func runCrystals(cmd *cobra.Command, args []string) error {
	long, _ := cmd.Flags().GetBool("long")
	for _, name := range molbuild.Crystals() {
		if !long {
			fmt.Println(name)
			continue
		}
		spec, err := molbuild.LookupCrystal(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-22s spacegroup %3d  a=%g b=%g c=%g alpha=%g beta=%g gamma=%g\n",
			name, spec.Spacegroup, spec.A, spec.B, spec.C, spec.Alpha, spec.Beta, spec.Gamma)
	}
	return nil
}
