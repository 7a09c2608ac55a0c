/*
 * fetch.go, part of molbuild.
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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/molbuild/molbuild"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <name>",
	Short: "Fetch a prepared system from the remote repository",
	Long: `Fetch downloads a prepared system (a LAMMPS data file) by name from
the remote repository, caching it on disk so repeated fetches do not touch
the network. The cache location and repository URL come from the config
file or from --cache and --base-url.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", "", "output file (default: <name>.data)")
	fetchCmd.Flags().String("base-url", "", "repository base URL (overrides config)")
	fetchCmd.Flags().String("cache", "", "cache database path, \"-\" to disable (overrides config)")
	fetchCmd.Flags().StringSlice("type-map", nil, "atom type to element overrides, e.g. 1=Si,2=O")
	rootCmd.AddCommand(fetchCmd)
}

//parseTypeMap turns 1=Si,2=O style pairs into a numeric type map.
func parseTypeMap(pairs []string) (map[int]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[int]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("bad type mapping %q, want type=symbol", p)
		}
		t, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("bad atom type in %q", p)
		}
		m[t] = strings.TrimSpace(v)
	}
	return m, nil
}

//progressPrinter reports download progress on w, one updating line per
//percent. A total of zero means the body was already complete (an empty
//or cached file), so it counts as 100%.
func progressPrinter(w io.Writer, name string) func(read, total int64) {
	var lastPct int64 = -1
	return func(read, total int64) {
		pct := int64(100)
		if total > 0 {
			pct = read * 100 / total
		}
		if pct != lastPct {
			fmt.Fprintf(w, "\rdownloading %s: %3d%%", name, pct)
			lastPct = pct
		}
		if read >= total {
			fmt.Fprintln(w)
		}
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	name := args[0]
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = name + ".data"
	}
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}
	cachePath, _ := cmd.Flags().GetString("cache")
	if cachePath == "" {
		cachePath = viper.GetString("cache_path")
	}
	pairs, _ := cmd.Flags().GetStringSlice("type-map")
	typeMap, err := parseTypeMap(pairs)
	if err != nil {
		return err
	}

	opts := &molbuild.FetchOptions{
		BaseURL:   baseURL,
		CachePath: cachePath,
		TypeMap:   typeMap,
		Progress:  progressPrinter(os.Stderr, name),
	}
	s, err := molbuild.FetchPreparedSystem(name, opts)
	if err != nil {
		return err
	}
	log.Infow("fetched system", "name", name, "atoms", s.Len())
	if err := writeStructure(output, s); err != nil {
		return err
	}
	log.Infof("wrote %s", output)
	return nil
}
