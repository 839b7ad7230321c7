package route

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func DecodeJSON(r io.Reader) (Table, error) {
	var t Table

	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding route table json failed: %w", err)
	}

	return t, nil
}

func EncodeJSON(w io.Writer, t Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding route table json failed: %w", err)
	}

	return nil
}

func DecodeYAML(r io.Reader) (Table, error) {
	var t Table

	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding route table yaml failed: %w", err)
	}

	return t, nil
}

func EncodeYAML(w io.Writer, t Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding route table yaml failed: %w", err)
	}

	return enc.Close()
}
