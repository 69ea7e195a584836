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

package lmdb

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/ianlewis/go-lemmas/dict"
)

// ErrInvalidLevel indicates that the compression level is invalid.
var ErrInvalidLevel = errors.New("invalid compression level")

// Options are options for encoding.
type Options struct {
	// Level is the deflate compression level. Valid values are
	// gzip.HuffmanOnly through gzip.BestCompression.
	Level int
}

// DefaultOptions is the default options for encoding.
var DefaultOptions = &Options{
	Level: gzip.BestCompression,
}

// Marshal returns the compressed encoding of d.
func Marshal(d *dict.Dictionary, opts *Options) ([]byte, error) {
	raw, err := AppendRaw(nil, d)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Compress(&buf, raw, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the compressed encoding of d to w. The dictionary is fully
// encoded in memory before anything is written so nothing is written to w if
// d cannot be encoded.
func Encode(w io.Writer, d *dict.Dictionary, opts *Options) error {
	b, err := Marshal(d, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

// Compress writes raw to w compressed with gzip.
func Compress(w io.Writer, raw []byte, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions
	}

	z, err := gzip.NewWriterLevel(w, opts.Level)
	if err != nil {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, opts.Level)
	}
	if _, err := z.Write(raw); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	if err := z.Close(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

// Unmarshal decodes the compressed dictionary in b.
func Unmarshal(b []byte) (*Result, error) {
	return Decode(bytes.NewReader(b))
}

// Decode reads a compressed dictionary from r. The stream is fully
// decompressed into memory before it is decoded.
func Decode(r io.Reader) (*Result, error) {
	raw, err := Decompress(r)
	if err != nil {
		return nil, err
	}
	return DecodeRaw(raw)
}

// Decompress reads the full gzip stream from r and returns the uncompressed
// data. Files written with dictzip are gzip streams and are also accepted.
func Decompress(r io.Reader) ([]byte, error) {
	er := &errReader{r: r}

	z, err := gzip.NewReader(er)
	if err != nil {
		return nil, decompressErr(er, err)
	}
	defer z.Close()

	raw, err := io.ReadAll(z)
	if err != nil {
		return nil, decompressErr(er, err)
	}
	return raw, nil
}

// decompressErr classifies errors from the gzip reader. Errors from the
// underlying reader are IOErrors while errors in the data are FormatErrors.
func decompressErr(er *errReader, err error) error {
	if er.err != nil {
		return &IOError{Op: "read", Err: er.err}
	}

	kind := ErrCorrupt
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		kind = ErrTruncated
	}
	return &FormatError{
		Kind:   kind,
		Field:  "compressed stream",
		Offset: -1,
		Err:    err,
	}
}

// errReader records the first non-EOF error returned by r.
type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && e.err == nil {
		e.err = err
	}
	//nolint:wrapcheck // errors are passed through to the gzip reader.
	return n, err
}
