package maze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileFormat is the TOML maze layout: rows of marker text
type fileFormat struct {
	Rows []string `toml:"rows"`
}

// LoadFile reads a maze from disk
// Files ending in .toml hold a `rows` string array, anything else is plain text with one row per line
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maze: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return DecodeTOML(f)
	}
	return ReadText(f)
}

// DecodeTOML parses a maze from TOML with a top-level `rows` array
func DecodeTOML(r io.Reader) (*Grid, error) {
	var ff fileFormat
	md, err := toml.NewDecoder(r).Decode(&ff)
	if err != nil {
		return nil, fmt.Errorf("%w: maze toml: %v", ErrConfiguration, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: maze toml: unknown key %q", ErrConfiguration, undecoded[0].String())
	}
	return Parse(ff.Rows)
}

// ReadText parses a maze from plain text
// Carriage returns are stripped and trailing blank lines ignored
func ReadText(r io.Reader) (*Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return Parse(lines)
}
