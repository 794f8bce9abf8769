// Package instance loads linear programs from files and streams.
package instance

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"q.log/twophase/lpparse"
	"q.log/twophase/model"
)

var (
	ErrUnknownFormat  = errors.New("instance: unknown format")
	ErrInvalidProblem = errors.New("instance: invalid problem")
)

// Problem is a loaded program ready for the simplex engine.
type Problem struct {
	Model *model.Model

	// Basis is a starting basis given by the source, if any.
	Basis []int

	// Recovery maps solutions back to the source variables when the source
	// was not already in standard equality form.
	Recovery *model.Recovery
}

// Format names an input layout.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatStream Format = "stream"
	FormatYAML   Format = "yaml"
	FormatMPS    Format = "mps"
	FormatLP     Format = "lp"
)

var Formats = []Format{FormatAuto, FormatStream, FormatYAML, FormatMPS, FormatLP}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownFormat, s, Formats)
}

// DetectFormat picks a format from the file extension, falling back to the
// stream layout.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".mps":
		return FormatMPS
	case ".lp":
		return FormatLP
	default:
		return FormatStream
	}
}

// Load reads the problem at path.
func Load(path string, f Format) (*Problem, error) {
	if f == FormatAuto {
		f = DetectFormat(path)
	}
	if f == FormatMPS {
		return ReadMPS(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open problem file: %w", err)
	}
	defer file.Close()

	return Decode(file, f)
}

// Decode reads a problem from r. FormatAuto means the stream layout. MPS
// input is spooled to a temporary file for the GLPK reader.
func Decode(r io.Reader, f Format) (*Problem, error) {
	switch f {
	case FormatAuto, FormatStream:
		return ReadStream(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatLP:
		prog, err := lpparse.Parse(r)
		if err != nil {
			return nil, err
		}
		return &Problem{Model: prog.Model(), Recovery: prog.Recovery()}, nil
	case FormatMPS:
		tmp, err := os.CreateTemp("", "twophase-*.mps")
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())
		if _, err := io.Copy(tmp, r); err != nil {
			tmp.Close()
			return nil, err
		}
		if err := tmp.Close(); err != nil {
			return nil, err
		}
		return ReadMPS(tmp.Name())
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}
