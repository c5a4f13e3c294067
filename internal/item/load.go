package item

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of an export input. JSON documents are
// accepted too since YAML is a superset.
type Document struct {
	Kind  Kind       `yaml:"kind"`
	Shots []Shot     `yaml:"shots"`
	Items []PullItem `yaml:"items"`
}

// Decode reads a document and adapts its records, preserving their order
func Decode(r io.Reader) ([]ExportableItem, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return doc.Exportable()
}

// Exportable adapts the records of a document. A document without a
// kind is inferred from which list is populated.
func (d Document) Exportable() ([]ExportableItem, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(string(d.Kind))))
	if kind == "" || kind == "shots" {
		kind = KindShot
		if len(d.Shots) == 0 && len(d.Items) > 0 {
			kind = KindPull
		}
	}

	switch kind {
	case KindShot:
		out := make([]ExportableItem, 0, len(d.Shots))
		for _, s := range d.Shots {
			out = append(out, FromShot(s))
		}
		return out, nil
	case KindPull:
		out := make([]ExportableItem, 0, len(d.Items))
		for _, p := range d.Items {
			out = append(out, FromPullItem(p))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown document kind %q", d.Kind)
}

// LoadFile reads and adapts a YAML or JSON items file
func LoadFile(path string) ([]ExportableItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}
