package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/morphstats/stats"
)

// Document is the serialized result of a run: parameter dictionaries keyed
// by feature name, then by Distribution.Key (the neurite type, with the
// variant appended when set).
type Document struct {
	Population string                                `json:"population" yaml:"population"`
	Features   map[string]map[string]stats.ParamDict `json:"features" yaml:"features"`
}

// NewDocument groups dists by feature and neurite type.
func NewDocument(population string, dists []Distribution) Document {
	doc := Document{
		Population: population,
		Features:   make(map[string]map[string]stats.ParamDict),
	}
	for _, d := range dists {
		byType, ok := doc.Features[d.Feature]
		if !ok {
			byType = make(map[string]stats.ParamDict)
			doc.Features[d.Feature] = byType
		}
		byType[d.Key()] = d.Dict
	}
	return doc
}

// Write encodes doc to w as json or yaml.
func (doc Document) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("extract: unsupported output format %q", format)
	}
}
