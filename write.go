// Copyright 2026 Ian Lewis
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

package lemmas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"

	"github.com/ianlewis/go-lemmas/dict"
	"github.com/ianlewis/go-lemmas/lmdb"
)

// fileMode is the permission of written dictionary files.
const fileMode = 0o644

// WriteOptions are options for WriteFile.
type WriteOptions struct {
	// Level is the deflate compression level. It is ignored when DictZip is
	// true.
	Level int

	// DictZip writes the file in the dictzip format. dictzip files are gzip
	// files and can be read by any gzip reader.
	DictZip bool
}

// DefaultWriteOptions is the default options for WriteFile.
var DefaultWriteOptions = &WriteOptions{
	Level: gzip.BestCompression,
}

// WriteFile writes the dictionary to path. The file is written to a
// temporary file in the same directory and renamed over path only once it is
// complete, so an existing file at path is never left partially written.
func WriteFile(path string, d *dict.Dictionary, options *WriteOptions) (err error) {
	if options == nil {
		options = DefaultWriteOptions
	}

	// Encode before touching the file system so that format errors never
	// create files.
	raw, err := lmdb.AppendRaw(nil, d)
	if err != nil {
		return fmt.Errorf("encoding dictionary: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", &lmdb.IOError{Op: "create", Err: err})
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if options.DictZip {
		err = writeDictZip(tmp, raw)
	} else {
		err = lmdb.Compress(tmp, raw, &lmdb.Options{Level: options.Level})
	}
	if err != nil {
		return fmt.Errorf("writing %q: %w", tmp.Name(), err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("writing %q: %w", tmp.Name(), &lmdb.IOError{Op: "sync", Err: err})
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing %q: %w", tmp.Name(), &lmdb.IOError{Op: "close", Err: err})
	}
	if err = os.Chmod(tmp.Name(), fileMode); err != nil {
		return fmt.Errorf("writing %q: %w", tmp.Name(), &lmdb.IOError{Op: "chmod", Err: err})
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %q: %w", path, &lmdb.IOError{Op: "rename", Err: err})
	}
	return nil
}

func writeDictZip(f *os.File, raw []byte) error {
	z, err := dictzip.NewWriter(f)
	if err != nil {
		return &lmdb.IOError{Op: "write", Err: err}
	}
	_, wErr := z.Write(raw)
	if err := errors.Join(wErr, z.Close()); err != nil {
		return &lmdb.IOError{Op: "write", Err: err}
	}
	return nil
}
