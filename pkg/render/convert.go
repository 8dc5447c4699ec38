package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrConverterMissing is returned when rsvg-convert is not on PATH.
var ErrConverterMissing = errors.New("rsvg-convert not found (install librsvg: brew install librsvg, apt install librsvg2-bin)")

// converter is the external SVG converter binary.
var converter = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert. Physical units in
// the SVG (width="...mm") are preserved, so tiled pages print at 1:1.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "-f", "pdf")
}

// ToPNG converts an SVG document to PNG with rsvg-convert at the given
// zoom factor.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "-f", "png", "-z", fmt.Sprintf("%.3f", scale))
}

// Available reports whether the external converter can be found.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func convert(svg []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, ErrConverterMissing
	}
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s %s: %s", converter, strings.Join(args, " "), msg)
	}
	return stdout.Bytes(), nil
}
