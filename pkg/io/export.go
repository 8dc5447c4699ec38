package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	derrors "github.com/matzehuels/dressform/pkg/errors"
)

// WriteProfile encodes p to w in the given format.
func WriteProfile(p Profile, w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(p); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return derrors.New(derrors.ErrCodeInvalidProfile, "unsupported profile format %q", format)
	}
	return nil
}

// ExportProfile writes p to a file at path. The format follows the extension.
func ExportProfile(p Profile, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteProfile(p, f, format)
}
