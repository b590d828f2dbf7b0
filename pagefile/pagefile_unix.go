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

//go:build linux || darwin || freebsd || openbsd || netbsd

package pagefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// pread/pwrite bypass the file's cursor entirely, so the paged store
// never needs to issue a separate Seek syscall before a random-access
// read or write.
func pread(f *os.File, p []byte, off int64) (int, error) {
	for {
		n, err := unix.Pread(int(f.Fd()), p, off)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

func pwrite(f *os.File, p []byte, off int64) (int, error) {
	for {
		n, err := unix.Pwrite(int(f.Fd()), p, off)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}
