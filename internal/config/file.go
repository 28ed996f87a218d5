package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrParse marks a malformed settings file.
var ErrParse = errors.New("config: parse error")

// File is the on-disk TOML settings file.
//
//	[settings]
//	copy-command = "wl-copy"
//	tab-size = "4"
type File struct {
	Settings map[string]string `toml:"settings"`
}

// LoadFile reads and parses a TOML settings file. A missing file is
// not an error and yields an empty File.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return ParseFile(path, data)
}

// ParseFile parses TOML settings data. source names the origin for
// error messages.
func ParseFile(source string, data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, source, err)
	}
	return &f, nil
}

// Apply copies the file's settings into the registry.
func (f *File) Apply(s *Settings) {
	for k, v := range f.Settings {
		s.Set(k, v)
	}
}
