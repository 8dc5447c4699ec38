package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	derrors "github.com/matzehuels/dressform/pkg/errors"
)

// ReadProfile decodes a profile from r. Fields absent from the input keep the
// values of [DefaultProfile]. The result is validated.
func ReadProfile(r io.Reader, format Format) (Profile, error) {
	p := DefaultProfile()
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&p)
		if err != nil {
			return Profile{}, derrors.Wrap(derrors.ErrCodeInvalidProfile, err, "decode toml profile")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Profile{}, derrors.New(derrors.ErrCodeInvalidProfile, "unknown profile keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return Profile{}, derrors.Wrap(derrors.ErrCodeInvalidProfile, err, "decode json profile")
		}
	default:
		return Profile{}, derrors.New(derrors.ErrCodeInvalidProfile, "unsupported profile format %q", format)
	}

	p.Figure = p.Figure.Normalized()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ImportProfile reads a profile file. The format follows the extension.
func ImportProfile(path string) (Profile, error) {
	if err := derrors.ValidateProfileFilename(path); err != nil {
		return Profile{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Profile{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "profile %s not found", path)
		}
		return Profile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := ReadProfile(f, format)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
