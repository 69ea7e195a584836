// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
)

// MakeFileOptions are options for MakeTempFile.
type MakeFileOptions struct {
	// Ext is the file extension. Defaults to '.bin'.
	Ext string

	// DictZip indicates that the file should be compressed with DictZip
	// rather than gzip.
	DictZip bool

	// Raw indicates that the data should be written as is without
	// compression.
	Raw bool
}

func (o *MakeFileOptions) getExt() string {
	if o != nil && o.Ext != "" {
		return o.Ext
	}
	return ".bin"
}

// Gzip compresses b with gzip.
func Gzip(t *testing.T, b []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	z, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// MakeTempFile writes the uncompressed stream b to a new file in a temporary
// directory and returns the path. The file is removed when the test
// completes.
func MakeTempFile(t *testing.T, b []byte, opts *MakeFileOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lemmas"+opts.getExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch {
	case opts != nil && opts.Raw:
		_, err = f.Write(b)
	case opts != nil && opts.DictZip:
		z, zErr := dictzip.NewWriter(f)
		if zErr != nil {
			t.Fatal(zErr)
		}
		if _, err = z.Write(b); err != nil {
			t.Fatal(err)
		}
		err = z.Close()
	default:
		_, err = f.Write(Gzip(t, b))
	}
	if err != nil {
		t.Fatal(err)
	}

	return path
}
