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

package molbuild

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

const sampleDataFile = `LAMMPS data file

2 atoms
1 atom types

0.0 5.0 xlo xhi
0.0 5.0 ylo yhi
0.0 5.0 zlo zhi

Masses

1 55.845

Atoms # atomic

1 1 0.0 0.0 0.0
2 1 2.5 2.5 2.5
`

func TestFetchPreparedSystem(Te *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/bulk_iron.data" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sampleDataFile))
	}))
	defer srv.Close()

	opts := &FetchOptions{
		BaseURL:   srv.URL,
		CachePath: filepath.Join(Te.TempDir(), "cache.sqlite"),
	}
	s, err := FetchPreparedSystem("bulk_iron", opts)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 2 {
		Te.Errorf("got %d atoms, want 2", s.Len())
	}
	if s.Atom(0).Symbol != "Fe" {
		Te.Errorf("mass 55.845 should identify as Fe, got %s", s.Atom(0).Symbol)
	}

	//The second fetch must come out of the cache.
	if _, err := FetchPreparedSystem("bulk_iron", opts); err != nil {
		Te.Fatal(err)
	}
	if hits != 1 {
		Te.Errorf("server was hit %d times, want 1", hits)
	}
}

func TestFetchErrors(Te *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	opts := &FetchOptions{BaseURL: srv.URL, CachePath: "-"}
	_, err := FetchPreparedSystem("nonexistent", opts)
	if err == nil {
		Te.Fatal("a 404 should be an error")
	}
	if !errors.Is(err, ErrNetwork) {
		Te.Errorf("a 404 should surface as ErrNetwork, got %v", err)
	}

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a data file"))
	}))
	defer garbage.Close()
	_, err = FetchPreparedSystem("whatever", &FetchOptions{BaseURL: garbage.URL, CachePath: "-"})
	if !errors.Is(err, ErrParse) {
		Te.Errorf("garbage content should surface as ErrParse, got %v", err)
	}

	_, err = FetchPreparedSystem("..", &FetchOptions{BaseURL: srv.URL, CachePath: "-"})
	if !errors.Is(err, ErrInvalidArgument) {
		Te.Errorf("a name that sanitizes away should be rejected, got %v", err)
	}
}

func TestSanitizeName(Te *testing.T) {
	cases := map[string]string{
		"bulk_iron":    "bulk_iron",
		"a/b":          "a_b",
		"../..":        "_",
		"..":           "",
		"water (v2)":   "water__v2_",
		"alpha-SiO2.1": "alpha-SiO2.1",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			Te.Errorf("sanitizeName(%q): got %q, want %q", in, got, want)
		}
	}
}
