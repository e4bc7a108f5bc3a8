// Package snapshot reads and writes exported board snapshots, either as
// plain JSON or as zstd-compressed JSON.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	diary "github.com/perpetuallyhorni/diary/internal"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Compressed reports whether a snapshot written to name should be compressed.
func Compressed(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zst")
}

// Write encodes snap as indented JSON to w, zstd-compressed when compress is set.
func Write(w io.Writer, snap diary.Snapshot, compress bool) error {
	if !compress {
		return encode(w, snap)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := encode(zw, snap); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish zstd stream: %w", err)
	}
	return nil
}

func encode(w io.Writer, snap diary.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r. Compression is detected from the stream.
// The version is not checked here; restoring the snapshot does that.
func Read(r io.Reader) (diary.Snapshot, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return diary.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return diary.Snapshot{}, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var snap diary.Snapshot
	if err := json.NewDecoder(src).Decode(&snap); err != nil {
		return diary.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
