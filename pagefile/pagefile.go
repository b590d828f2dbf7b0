// Copyright (c) 2024 The Clperf Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package pagefile provides the random-access file primitive that backs
// the paged store: absolute-offset reads and writes against a single
// scratch file, with no buffering or caching of its own.
package pagefile

import (
	"io"
	"os"
)

// File is a scratch backing file opened for random-access reads and
// writes at absolute byte offsets. It is not safe for concurrent use.
type File struct {
	f    *os.File
	name string
}

// Create opens (creating if necessary, truncating if present) the file
// at name for read/write random access.
func Create(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{f: f, name: name}, nil
}

// Open opens an existing file at name for read/write random access.
func Open(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{f: f, name: name}, nil
}

// Name returns the path this file was opened with.
func (pf *File) Name() string { return pf.name }

// ReadAt reads len(p) bytes starting at absolute offset off. A short
// read at EOF is reported via the returned n and a nil error (io.EOF
// is never returned), unlike io.ReaderAt: callers (the paged store)
// use the short count to detect the final partial block.
func (pf *File) ReadAt(p []byte, off int64) (int, error) {
	n, err := pread(pf.f, p, off)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// WriteAt writes p at absolute offset off.
func (pf *File) WriteAt(p []byte, off int64) (int, error) {
	return pwrite(pf.f, p, off)
}

// Truncate resizes the file to size bytes.
func (pf *File) Truncate(size int64) error {
	return pf.f.Truncate(size)
}

// Sync flushes the file to stable storage.
func (pf *File) Sync() error {
	return pf.f.Sync()
}

// Close closes the underlying file handle.
func (pf *File) Close() error {
	if pf.f == nil {
		return nil
	}
	err := pf.f.Close()
	pf.f = nil
	return err
}

// Remove deletes the file at its current path. Close should be called
// first; Remove does not close the handle.
func (pf *File) Remove() error {
	return os.Remove(pf.name)
}

// Rename atomically replaces dst with the file at pf's current path,
// and updates pf's recorded name. The caller must have closed any
// other handle to dst first.
func (pf *File) Rename(dst string) error {
	if err := os.Rename(pf.name, dst); err != nil {
		return err
	}
	pf.name = dst
	return nil
}
