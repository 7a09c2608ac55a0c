/*
 * httpcache.go, part of molbuild.
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

//Package httpcache caches HTTP GET responses in a local SQLite database,
//keyed by URL, with zstd-compressed bodies. Repeated fetches of the same
//resource are served from disk without touching the network.
package httpcache

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

//ErrStatus is wrapped into errors caused by a non-success HTTP status.
var ErrStatus = errors.New("httpcache: unexpected HTTP status")

//ErrNoLength is returned when the server does not announce a
//content-length, which makes progress accounting impossible.
var ErrNoLength = errors.New("httpcache: response has no content-length")

//Cache is an HTTP response cache backed by a SQLite file. It is safe for
//use from a single goroutine, like the rest of the library.
type Cache struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

//Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("httpcache: opening %s: %w", path, err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		url        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("httpcache: creating schema: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db, enc: enc, dec: dec}, nil
}

//Close releases the database and the compressors.
func (c *Cache) Close() error {
	c.enc.Close()
	c.dec.Close()
	return c.db.Close()
}

//Get returns the cached body for url, and whether there was one.
func (c *Cache) Get(url string) ([]byte, bool, error) {
	var blob []byte
	err := c.db.QueryRow(`SELECT body FROM responses WHERE url = ?`, url).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("httpcache: reading cache: %w", err)
	}
	body, err := c.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, false, fmt.Errorf("httpcache: decompressing cached body: %w", err)
	}
	return body, true, nil
}

//Put stores body as the cached response for url, replacing any previous
//entry.
func (c *Cache) Put(url string, body []byte) error {
	blob := c.enc.EncodeAll(body, nil)
	_, err := c.db.Exec(`INSERT OR REPLACE INTO responses (url, body) VALUES (?, ?)`, url, blob)
	if err != nil {
		return fmt.Errorf("httpcache: writing cache: %w", err)
	}
	return nil
}

//Client fetches URLs through a Cache. A nil HTTP client means
//http.DefaultClient; a nil Cache disables caching.
type Client struct {
	Cache *Cache
	HTTP  *http.Client
}

//Fetch returns the body of url, from the cache when possible. progress, if
//not nil, is called repeatedly with the number of bytes read so far and
//the total announced by the server; a cache hit reports completion once.
//Responses with a non-2xx status or without a content-length are errors.
func (cl *Client) Fetch(url string, progress func(read, total int64)) ([]byte, error) {
	if cl.Cache != nil {
		body, ok, err := cl.Cache.Get(url)
		if err != nil {
			return nil, err
		}
		if ok {
			if progress != nil {
				progress(int64(len(body)), int64(len(body)))
			}
			return body, nil
		}
	}
	httpc := cl.HTTP
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, fmt.Errorf("httpcache: GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s for %s", ErrStatus, resp.Status, url)
	}
	total := resp.ContentLength
	if total < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoLength, url)
	}
	body := make([]byte, 0, total)
	buf := make([]byte, 64*1024)
	var read int64
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
			read += int64(n)
			if progress != nil {
				progress(read, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("httpcache: reading %s: %w", url, rerr)
		}
	}
	if cl.Cache != nil {
		if err := cl.Cache.Put(url, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}
