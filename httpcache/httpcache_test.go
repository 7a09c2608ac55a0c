/*
 * httpcache_test.go, part of molbuild.
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

package httpcache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheRoundtrip(t *testing.T) {
	c := testCache(t)
	_, ok, err := c.Get("http://example.com/a")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	body := []byte("some cached payload, long enough to compress a little")
	require.NoError(t, c.Put("http://example.com/a", body))
	got, ok, err := c.Get("http://example.com/a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, body, got)

	//Replacing an entry keeps only the newest body.
	require.NoError(t, c.Put("http://example.com/a", []byte("v2")))
	got, ok, err = c.Get("http://example.com/a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)
}

func TestFetchCachesResponses(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("remote content"))
	}))
	defer srv.Close()

	cl := &Client{Cache: testCache(t)}
	var reads []int64
	progress := func(read, total int64) { reads = append(reads, read) }

	body, err := cl.Fetch(srv.URL+"/system.data", progress)
	require.NoError(t, err)
	assert.Equal(t, []byte("remote content"), body)
	require.NotEmpty(t, reads)
	assert.Equal(t, int64(len(body)), reads[len(reads)-1])

	body, err = cl.Fetch(srv.URL+"/system.data", progress)
	require.NoError(t, err)
	assert.Equal(t, []byte("remote content"), body)
	assert.Equal(t, 1, hits, "second fetch must come from the cache")
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cl := &Client{}
	_, err := cl.Fetch(srv.URL+"/missing", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus), "404 should wrap ErrStatus")
}

func TestFetchNoContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//Flushing before the body forces chunked encoding with no length.
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		w.Write([]byte("chunked"))
	}))
	defer srv.Close()

	cl := &Client{}
	_, err := cl.Fetch(srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoLength))
}

func TestFetchWithoutCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	cl := &Client{}
	for i := 0; i < 2; i++ {
		_, err := cl.Fetch(srv.URL, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, hits, "a nil cache means every fetch hits the network")
}
