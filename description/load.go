package description

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geange/dfa"
)

// LoadYAML decodes a definition from YAML. Unknown keys are rejected.
func LoadYAML(data []byte) (dfa.Definition, error) {
	var def dfa.Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return dfa.Definition{}, errors.New("empty YAML document")
		}
		return dfa.Definition{}, fmt.Errorf("decode YAML: %w", err)
	}
	return def, nil
}

// MarshalYAML encodes def as YAML, the inverse of LoadYAML.
func MarshalYAML(def dfa.Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadFile reads a definition from path: .yaml and .yml files are YAML, anything else uses the text
// grammar.
func LoadFile(path string) (dfa.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dfa.Definition{}, err
	}

	var def dfa.Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		def, err = LoadYAML(data)
	default:
		def, err = Parse(string(data))
	}
	if err != nil {
		return dfa.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
