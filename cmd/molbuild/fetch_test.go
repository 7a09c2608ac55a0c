/*
 * fetch_test.go, part of molbuild.
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
	"bytes"
	"strings"
	"testing"
)

//A zero-length body, as the cache serves for empty files, must report
//100% instead of dividing by zero.
func TestProgressPrinterEmptyBody(Te *testing.T) {
	var buf bytes.Buffer
	p := progressPrinter(&buf, "empty.data")
	p(0, 0)
	out := buf.String()
	if !strings.Contains(out, "100%") {
		Te.Errorf("empty body should count as complete, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		Te.Errorf("a finished download should end its line, got %q", out)
	}
}

func TestProgressPrinter(Te *testing.T) {
	var buf bytes.Buffer
	p := progressPrinter(&buf, "slab.data")
	p(60, 200)
	p(61, 200) //still 30%, must not repeat the line
	p(200, 200)
	out := buf.String()
	if got := strings.Count(out, "30%"); got != 1 {
		Te.Errorf("want exactly one 30%% update, got %d in %q", got, out)
	}
	if !strings.Contains(out, "100%") || !strings.HasSuffix(out, "\n") {
		Te.Errorf("completed download should print 100%% and a newline, got %q", out)
	}
}

func TestParseTypeMap(Te *testing.T) {
	m, err := parseTypeMap([]string{"1=Si", "2 = O"})
	if err != nil {
		Te.Fatal(err)
	}
	if m[1] != "Si" || m[2] != "O" {
		Te.Errorf("got %v, want 1=Si 2=O", m)
	}
	if m, err := parseTypeMap(nil); err != nil || m != nil {
		Te.Errorf("no pairs should give a nil map, got %v, %v", m, err)
	}
	for _, bad := range []string{"Si", "x=Si"} {
		if _, err := parseTypeMap([]string{bad}); err == nil {
			Te.Errorf("%q should be rejected", bad)
		}
	}
}
