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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molbuild/molbuild/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <input>",
	Short: "Render an orthographic projection of a structure",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().String("camera", "1,1,1", "view direction: dx,dy,dz")
	renderCmd.Flags().StringP("output", "o", "projection.png", "image file (format by extension)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cameraStr, _ := cmd.Flags().GetString("camera")
	output, _ := cmd.Flags().GetString("output")

	v, err := parseFloats(cameraStr, 3)
	if err != nil {
		return fmt.Errorf("--camera: %w", err)
	}
	s, err := readStructure(args[0])
	if err != nil {
		return err
	}
	if err := render.Projection(s, [3]float64{v[0], v[1], v[2]}, output); err != nil {
		return err
	}
	log.Infof("wrote %s", output)
	return nil
}
