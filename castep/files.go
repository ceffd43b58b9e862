/*
 * files.go, part of gocryst.
 *
 * Copyright 2023 The gocryst developers
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

package castep

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// WriteTextFile writes content to path. A ".zst" suffix on path
// selects zstd compression, which keeps large batches of generated
// seeds manageable.
func WriteTextFile(path, content string) error {
	if !strings.HasSuffix(path, ".zst") {
		return os.WriteFile(path, []byte(content), 0644)
	}
	f, err := os.Create(path)
	if err != nil {
		return errDecorate(err, "WriteTextFile")
	}
	defer f.Close()
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return errDecorate(err, "WriteTextFile")
	}
	if _, err := enc.Write([]byte(content)); err != nil {
		enc.Close()
		return errDecorate(err, "WriteTextFile")
	}
	return enc.Close()
}

// ReadTextFile reads path, transparently decompressing a ".zst"
// suffix.
func ReadTextFile(path string) (string, error) {
	if !strings.HasSuffix(path, ".zst") {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errDecorate(err, "ReadTextFile")
		}
		return string(data), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", errDecorate(err, "ReadTextFile")
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return "", errDecorate(err, "ReadTextFile")
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return "", errDecorate(err, "ReadTextFile")
	}
	return string(data), nil
}
