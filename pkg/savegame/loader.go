package savegame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame header every zstd stream starts with.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Load reads and decodes one snapshot file. It rejects files it cannot
// parse, files whose modelVersion this build does not support, and files
// that fail structural validation. Forward compatibility is deliberately
// not attempted: a snapshot from a newer schema fails loudly instead of
// being read with fields silently dropped.
//
// The returned Model has not been materialized; call Materialize to build
// a live game from it.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read savegame: %v", err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		data, err = decompress(data)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	// Version pre-check against a minimal header decode, so incompatible
	// files are rejected without depending on the rest of the document
	// parsing cleanly.
	var header struct {
		ModelVersion int `json:"modelVersion"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !SupportsModelVersion(header.ModelVersion) {
		return nil, &UnsupportedVersionError{Version: header.ModelVersion}
	}

	m := &Model{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func decompress(data []byte) ([]byte, error) {
	reader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer reader.Close()
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress savegame: %v", err)
	}
	return out, nil
}
