package savegame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/hexfieldgame/hexfield/pkg/game"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
)

// CompressedFileSuffix marks zstd-compressed snapshot files. Save
// compresses when the file name carries it; Load sniffs the file contents
// instead of trusting the name.
const CompressedFileSuffix = ".zst"

// Save captures the live game and writes it to dir/fileName as one
// structured document. The directory must already exist; creating it is
// the host's job. The write is atomic: the document goes to a temporary
// file first and is renamed into place, so a crash never leaves a
// half-written snapshot under the final name.
//
// The caller must hold the game's lock so the state cannot change while
// the snapshot is built. Eligibility is checked before anything is
// written; a denied game produces no file at all.
func Save(ga *game.Game, dir, fileName string, gl *gamelist.GameList) error {
	if err := CheckCanSave(ga); err != nil {
		return err
	}
	if gl != nil && !gl.Has(ga.Name()) {
		return fmt.Errorf("game %s is not registered with this server", ga.Name())
	}

	m, err := NewModelFromGame(ga)
	if err != nil {
		return err
	}
	return writeModel(m, dir, fileName)
}

func writeModel(m *Model, dir, fileName string) error {
	data, err := encodeModel(m, strings.HasSuffix(fileName, CompressedFileSuffix))
	if err != nil {
		return err
	}

	path := filepath.Join(dir, fileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write savegame: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize savegame: %v", err)
	}
	return nil
}

func encodeModel(m *Model, compress bool) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode savegame: %v", err)
	}
	data = append(data, '\n')
	if !compress {
		return data, nil
	}

	compressed := bytes.NewBuffer(nil)
	writer, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress savegame: %v", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}
	return compressed.Bytes(), nil
}
