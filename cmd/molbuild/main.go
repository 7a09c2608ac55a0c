/*
 * main.go, part of molbuild.
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

//Package main is the molbuild command line tool: build bulk crystals,
//carve geometric regions out of them, fetch prepared systems, pack water
//around structures and render quick projections.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/molbuild/molbuild"
)

//version is set at build time via ldflags.
var version = "dev"

var log *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:     "molbuild",
	Short:   "Build initial atomistic configurations for molecular simulations",
	Version: version,
	Long: `molbuild assembles starting configurations for molecular dynamics:
bulk crystals generated from their spacegroup description, carved into
shapes, solvated with water through packmol, or fetched ready-made from a
remote repository. Output goes to LAMMPS data files or xyz.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := zap.NewDevelopmentConfig()
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); quiet {
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}
		cfg.DisableStacktrace = true
		l, err := cfg.Build()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot set up logging:", err)
			os.Exit(1)
		}
		log = l.Sugar()
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./molbuild.yaml or ~/.config/molbuild/config.yaml)")
	rootCmd.PersistentFlags().Bool("quiet", false, "only log warnings and errors")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("molbuild")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "molbuild"))
		}
	}

	viper.SetDefault("cache_path", molbuild.DefaultCachePath)
	viper.SetDefault("base_url", molbuild.DefaultRepositoryURL)
	viper.SetDefault("packmol_command", "packmol")

	viper.SetEnvPrefix("MOLBUILD")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

//readStructure loads a structure from path, picking the format by
//extension: .xyz, or a LAMMPS data file for anything else.
func readStructure(path string) (*molbuild.Structure, error) {
	if strings.EqualFold(filepath.Ext(path), ".xyz") {
		return molbuild.XYZRead(path)
	}
	return molbuild.LammpsDataRead(path, nil)
}

//writeStructure writes s to path, picking the format by extension the same
//way readStructure does.
func writeStructure(path string, s *molbuild.Structure) error {
	if strings.EqualFold(filepath.Ext(path), ".xyz") {
		return molbuild.XYZWrite(path, s)
	}
	return molbuild.LammpsDataWrite(path, s)
}

//parseFloats splits a comma-separated list into exactly n numbers.
func parseFloats(list string, n int) ([]float64, error) {
	parts := strings.Split(list, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %d in %q", n, len(parts), list)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q in %q", p, list)
		}
		out[i] = v
	}
	return out, nil
}

//geometryFromFlags builds the region selected by the --box/--sphere/
//--cylinder flags of cmd. Exactly one may be given; none returns nil.
func geometryFromFlags(cmd *cobra.Command) (molbuild.Geometry, error) {
	box, _ := cmd.Flags().GetString("box")
	sphere, _ := cmd.Flags().GetString("sphere")
	cylinder, _ := cmd.Flags().GetString("cylinder")
	given := 0
	for _, f := range []string{box, sphere, cylinder} {
		if f != "" {
			given++
		}
	}
	if given > 1 {
		return nil, fmt.Errorf("give at most one of --box, --sphere, --cylinder")
	}
	switch {
	case box != "":
		v, err := parseFloats(box, 6)
		if err != nil {
			return nil, err
		}
		return molbuild.NewBox([3]float64{v[0], v[1], v[2]}, [3]float64{v[3], v[4], v[5]})
	case sphere != "":
		v, err := parseFloats(sphere, 4)
		if err != nil {
			return nil, err
		}
		return molbuild.NewSphere([3]float64{v[0], v[1], v[2]}, v[3])
	case cylinder != "":
		v, err := parseFloats(cylinder, 8)
		if err != nil {
			return nil, err
		}
		return molbuild.NewCylinder([3]float64{v[0], v[1], v[2]}, v[6], v[7], [3]float64{v[3], v[4], v[5]})
	}
	return nil, nil
}

func addGeometryFlags(cmd *cobra.Command) {
	cmd.Flags().String("box", "", "box region: x0,y0,z0,x1,y1,z1")
	cmd.Flags().String("sphere", "", "spherical region: cx,cy,cz,radius")
	cmd.Flags().String("cylinder", "", "cylindrical region: cx,cy,cz,ax,ay,az,radius,length")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
