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

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/liines/ames/internal/export/packers"
)

// Compression selects how the exported document is packed on the way out.
type Compression int32

const (
	// None writes the document uncompressed.
	None Compression = iota

	// Zstd packs with zstandard.
	Zstd

	// Lz4 packs with lz4 frames.
	Lz4

	// Xz packs with xz streams.
	Xz
)

var compressionTokens = map[Compression]string{
	None: "none",
	Zstd: "zstd",
	Lz4:  "lz4",
	Xz:   "xz",
}

func (c Compression) String() string {
	if tok, ok := compressionTokens[c]; ok {
		return tok
	}

	return fmt.Sprintf("Compression(%d)", int32(c))
}

// Extension is the filename suffix conventionally used for the codec, empty
// for None.
func (c Compression) Extension() string {
	switch c {
	case Zstd:
		return ".zst"
	case Lz4:
		return ".lz4"
	case Xz:
		return ".xz"
	default:
		return ""
	}
}

// ParseCompression maps a CLI token onto a Compression.
func ParseCompression(tok string) (Compression, error) {
	for c, t := range compressionTokens {
		if t == strings.ToLower(strings.TrimSpace(tok)) {
			return c, nil
		}
	}

	return None, fmt.Errorf("unknown compression %q", tok)
}

// NewWriter wraps w in the codec's writer. The caller must Close the result
// to flush; the underlying writer stays open.
func (c Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case Zstd:
		return packers.Zstd(w)
	case Lz4:
		return packers.Lz4(w)
	case Xz:
		return packers.Xz(w)
	default:
		return packers.Raw(w)
	}
}
