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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molbuild/molbuild"
)

var carveCmd = &cobra.Command{
	Use:   "carve <input>",
	Short: "Remove the atoms inside or outside a geometric region",
	Long: `Carve reads a structure and deletes every atom on the chosen side of
the given region: --side in deletes the inside, --side out the outside.
The removed fragment can be kept with --carved-out.`,
	Args: cobra.ExactArgs(1),
	RunE: runCarve,
}

func init() {
	addGeometryFlags(carveCmd)
	carveCmd.Flags().String("side", "in", "which side of the region to delete: in or out")
	carveCmd.Flags().StringP("output", "o", "carved.data", "output file (.xyz or LAMMPS data)")
	carveCmd.Flags().String("carved-out", "", "also write the removed fragment to this file")
	rootCmd.AddCommand(carveCmd)
}

func runCarve(cmd *cobra.Command, args []string) error {
	side, _ := cmd.Flags().GetString("side")
	output, _ := cmd.Flags().GetString("output")
	carvedOut, _ := cmd.Flags().GetString("carved-out")

	g, err := geometryFromFlags(cmd)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("give the region to carve with --box, --sphere or --cylinder")
	}
	s, err := readStructure(args[0])
	if err != nil {
		return err
	}
	n, carved, err := molbuild.CarveGeometry(s, g, side, carvedOut != "")
	if err != nil {
		return err
	}
	log.Infow("carved", "removed", n, "remaining", s.Len())
	if err := writeStructure(output, s); err != nil {
		return err
	}
	log.Infof("wrote %s", output)
	if carvedOut != "" {
		if err := writeStructure(carvedOut, carved); err != nil {
			return err
		}
		log.Infof("wrote %s", carvedOut)
	}
	return nil
}
