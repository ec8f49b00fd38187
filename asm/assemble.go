package asm

import (
	"io"
	"sort"
	"strings"
)

// signature marks a binary image as carrying its own load address. Files
// written by the host's "asm" command always carry it; raw dumps loaded
// with an explicit --load address do not.
var signature = [2]byte{'6', 'P'}

// Assembly is the output of assembling a program: its machine-code image,
// the effective address it was assembled to begin at, and any errors
// accumulated along the way.
type Assembly struct {
	Origin  uint16
	Code    []byte
	Errors  []string
	Listing string // populated only when Assemble is called with listing=true
}

// WriteTo writes the assembly as a binary image. If Origin is non-zero the
// image is prefixed with a signature and the origin address, so a later
// load can recover it without an explicit address.
func (a *Assembly) WriteTo(w io.Writer) (n int64, err error) {
	if a.Origin == 0 {
		nn, err := w.Write(a.Code)
		return int64(nn), err
	}
	header := []byte{signature[0], signature[1], byte(a.Origin), byte(a.Origin >> 8)}
	nn, err := w.Write(header)
	if err != nil {
		return int64(nn), err
	}
	mm, err := w.Write(a.Code)
	return int64(nn + mm), err
}

// ReadFrom reads a binary image previously written by WriteTo. Images
// without the signature are read as raw code with Origin left at zero.
func (a *Assembly) ReadFrom(r io.Reader) (n int64, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if len(b) >= 4 && b[0] == signature[0] && b[1] == signature[1] {
		a.Origin = uint16(b[2]) | uint16(b[3])<<8
		a.Code = b[4:]
	} else {
		a.Origin = 0
		a.Code = b
	}
	return int64(len(b)), nil
}

// Resolve runs the lexer and both resolver passes over friendly-form
// source, returning the resolved-form text and a source map (with
// exports for every label defined). It stops short of byte generation,
// so it is also what feeds the self-hosting assembler's input region: the
// same resolved text that AssembleResolved below turns into bytes is what
// gets executed character-by-character on the emulator.
func Resolve(r io.Reader, filename string) (string, *SourceMap, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", nil, err
	}

	units, err := parseUnits(filename, string(b), catalogShape)
	if err != nil {
		return "", nil, err
	}

	labels, err := resolveLabels(units)
	if err != nil {
		return "", nil, err
	}

	resolved, lines, err := renderResolved(units, labels)
	if err != nil {
		return "", nil, err
	}

	sm := &SourceMap{Files: []string{filename}, Lines: lines}
	exportNames := make([]string, 0, len(labels))
	for name := range labels {
		exportNames = append(exportNames, name)
	}
	sort.Strings(exportNames)
	for _, name := range exportNames {
		sm.Exports = append(sm.Exports, Export{Label: name, Addr: labels[name]})
	}

	return resolved, sm, nil
}

// Assemble is the friendly-form entry point: it resolves source into its
// resolved form, then hands that to AssembleResolved for byte generation.
// The listing flag, when set, retains the resolved-form text on the
// returned Assembly for diagnostic output.
func Assemble(r io.Reader, filename string, listing bool) (*Assembly, *SourceMap, error) {
	resolved, sm, err := Resolve(r, filename)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			return &Assembly{Errors: []string{se.Error()}}, nil, err
		}
		return nil, nil, err
	}

	assembly, err := AssembleResolved(strings.NewReader(resolved))
	if err != nil {
		return &Assembly{Errors: []string{err.Error()}}, nil, err
	}
	if listing {
		assembly.Listing = resolved
	}

	return assembly, sm, nil
}
