/*
 * build.go, part of molbuild.
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

var buildCmd = &cobra.Command{
	Use:   "build <crystal>",
	Short: "Build a bulk crystal of a requested size",
	Long: `Build generates a bulk crystal from the built-in table (see the
crystals subcommand), repeated to cover at least (or at most, depending on
--round) the requested size in angstroms along each axis.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("size", "", "target size in angstroms: sx,sy,sz (required)")
	buildCmd.Flags().String("round", "up", "how to round repetitions: up, down or round")
	buildCmd.Flags().StringP("output", "o", "crystal.data", "output file (.xyz or LAMMPS data)")
	_ = buildCmd.MarkFlagRequired("size")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	sizeStr, _ := cmd.Flags().GetString("size")
	rounding, _ := cmd.Flags().GetString("round")
	output, _ := cmd.Flags().GetString("output")

	v, err := parseFloats(sizeStr, 3)
	if err != nil {
		return fmt.Errorf("--size: %w", err)
	}
	s, err := molbuild.CreateBulkCrystal(args[0], [3]float64{v[0], v[1], v[2]}, rounding)
	if err != nil {
		return err
	}
	log.Infow("built crystal", "name", args[0], "atoms", s.Len())
	if err := writeStructure(output, s); err != nil {
		return err
	}
	log.Infof("wrote %s", output)
	return nil
}
