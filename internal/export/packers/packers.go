// Copyright 2025 the original author or authors.
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

// Package packers provides the compression writers the exporter can wrap its
// output in. Each constructor returns an io.WriteCloser whose Close flushes
// the codec but leaves the underlying writer open.
package packers

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Raw passes bytes through uncompressed.
func Raw(w io.Writer) (io.WriteCloser, error) {
	return nopCloser{Writer: w}, nil
}

// Zstd wraps w in a zstandard encoder.
func Zstd(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

// Lz4 wraps w in an lz4 frame writer.
func Lz4(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

// Xz wraps w in an xz stream writer.
func Xz(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}
