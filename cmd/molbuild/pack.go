/*
 * pack.go, part of molbuild.
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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/molbuild/molbuild"
	"github.com/molbuild/molbuild/packmol"
)

var packCmd = &cobra.Command{
	Use:   "pack [input]",
	Short: "Pack water molecules into a region with packmol",
	Long: `Pack fills a region with water through the external packmol program.
With an input structure the water is packed around it, held fixed; a
--box/--sphere/--cylinder region constrains where the water goes. At
least one of the two must be given. Requires packmol on the PATH (or set
packmol_command in the config).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPack,
}

func init() {
	addGeometryFlags(packCmd)
	packCmd.Flags().IntP("nmol", "n", 0, "number of water molecules to pack (required)")
	packCmd.Flags().String("side", "in", "pack inside or outside the region: in or out")
	packCmd.Flags().Float64("tolerance", 0, "minimum separation between molecules in angstroms (default 2.0)")
	packCmd.Flags().Float64("pbc-margin", 0, "shrink a bounding-box region by this much per axis")
	packCmd.Flags().Duration("timeout", 10*time.Minute, "wall-clock limit for the packmol run")
	packCmd.Flags().StringP("output", "o", "packed.data", "output file (.xyz or LAMMPS data)")
	packCmd.Flags().String("solvent-out", "", "also write the water alone to this file")
	_ = packCmd.MarkFlagRequired("nmol")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	nmol, _ := cmd.Flags().GetInt("nmol")
	side, _ := cmd.Flags().GetString("side")
	tolerance, _ := cmd.Flags().GetFloat64("tolerance")
	margin, _ := cmd.Flags().GetFloat64("pbc-margin")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	output, _ := cmd.Flags().GetString("output")
	solventOut, _ := cmd.Flags().GetString("solvent-out")

	g, err := geometryFromFlags(cmd)
	if err != nil {
		return err
	}
	var s *molbuild.Structure
	if len(args) == 1 {
		s, err = readStructure(args[0])
		if err != nil {
			return err
		}
	}
	if s == nil && g == nil {
		return fmt.Errorf("give an input structure, a region, or both")
	}

	h := packmol.NewHandle()
	defer h.Clean()
	h.SetCommand(viper.GetString("packmol_command"))
	h.SetTimeout(timeout)
	h.SetPBCMargin(margin)
	if tolerance > 0 {
		h.SetTolerance(tolerance)
	}
	if err := h.BuildInput(s, g, nmol, side); err != nil {
		return err
	}
	log.Infow("running packmol", "nmol", nmol, "workdir", h.WorkDir())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := h.Run(ctx); err != nil {
		return err
	}
	packed, err := h.Result()
	if err != nil {
		return err
	}
	log.Infow("packed", "atoms", packed.Len())
	if err := writeStructure(output, packed); err != nil {
		return err
	}
	log.Infof("wrote %s", output)
	if solventOut != "" {
		solvent := packed.Copy()
		mask := make([]bool, solvent.Len())
		for i := 0; i < h.NFixed() && i < len(mask); i++ {
			mask[i] = true
		}
		if _, err := solvent.Delete(mask); err != nil {
			return err
		}
		if err := writeStructure(solventOut, solvent); err != nil {
			return err
		}
		log.Infof("wrote %s", solventOut)
	}
	return nil
}
