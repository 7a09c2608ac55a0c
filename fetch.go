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

package molbuild

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/molbuild/molbuild/httpcache"
)

//DefaultRepositoryURL is the base URL of the remote repository of prepared
//systems. Systems are fetched as {base}/{name}.data.
const DefaultRepositoryURL = "https://zenodo.org/record/3770804/files"

//DefaultCachePath is the SQLite file used to cache downloaded systems.
const DefaultCachePath = "molbuild_cache.sqlite"

//FetchOptions tunes FetchPreparedSystem. The zero value (or a nil pointer)
//means: default repository, default cache file, mass-based element
//identification and no progress reporting.
type FetchOptions struct {
	//BaseURL overrides the remote repository base URL.
	BaseURL string
	//CachePath overrides the cache database location. "-" disables
	//caching altogether.
	CachePath string
	//TypeMap maps LAMMPS numeric atom types to element symbols for
	//files whose Masses section is absent or ambiguous.
	TypeMap map[int]string
	//Progress, if not nil, is called during the download with the bytes
	//read so far and the total.
	Progress func(read, total int64)
	//HTTP overrides the HTTP client, mainly for tests.
	HTTP *http.Client
}

//sanitizeName reduces name to characters safe to embed in a URL path
//element, so a hostile name cannot traverse into another resource.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), ".")
}

//FetchPreparedSystem retrieves a prepared molecular system by name from
//the remote repository and parses it as a LAMMPS data file. Responses are
//cached on disk, so repeated fetches of the same system do not touch the
//network. Unreachable hosts, non-success statuses and missing
//content-length surface as ErrNetwork; malformed content as ErrParse.
func FetchPreparedSystem(name string, opts *FetchOptions) (*Structure, error) {
	if opts == nil {
		opts = &FetchOptions{}
	}
	clean := sanitizeName(name)
	if clean == "" {
		return nil, newError(ErrInvalidArgument, "system name reduces to nothing after sanitizing: "+name)
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultRepositoryURL
	}
	url := strings.TrimRight(base, "/") + "/" + clean + ".data"

	client := &httpcache.Client{HTTP: opts.HTTP}
	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath = DefaultCachePath
	}
	if cachePath != "-" {
		cache, err := httpcache.Open(cachePath)
		if err != nil {
			return nil, newError(ErrNetwork, err.Error())
		}
		defer cache.Close()
		client.Cache = cache
	}
	body, err := client.Fetch(url, opts.Progress)
	if err != nil {
		ferr := newError(ErrNetwork, err.Error())
		ferr.Decorate("FetchPreparedSystem " + clean)
		return nil, ferr
	}
	s, err := LammpsDataReadFrom(bytes.NewReader(body), opts.TypeMap)
	if err != nil {
		err.(*Error).Decorate("FetchPreparedSystem " + clean)
		return nil, err
	}
	return s, nil
}
