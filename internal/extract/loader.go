package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"sitrep/internal/log"
	"sitrep/internal/savefile"
)

// Container magic for the wrapped save forms.
var (
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Load reads a save file and returns its text normalized to UTF-8. Three
// on-disk forms are handled transparently: plain text, gzip-compressed
// text, and the zip container the game writes for compressed saves, whose
// gamestate entry holds the actual save.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}

	switch {
	case bytes.HasPrefix(data, zipMagic):
		data, err = unwrapZip(data)
		if err != nil {
			return nil, fmt.Errorf("unwrap zip save %s: %w", path, err)
		}
	case bytes.HasPrefix(data, gzipMagic):
		data, err = unwrapGzip(data)
		if err != nil {
			return nil, fmt.Errorf("unwrap gzip save %s: %w", path, err)
		}
	}

	normalized, err := savefile.NormalizeEncoding(data)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}
	return normalized, nil
}

func unwrapZip(data []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	for _, file := range reader.File {
		if file.Name != "gamestate" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		log.Debug("extracted gamestate from zip container", "bytes", len(content))
		return content, nil
	}
	return nil, fmt.Errorf("container has no gamestate entry")
}

func unwrapGzip(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
