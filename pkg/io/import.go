package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Format is an event file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell event format of %q (want .json, .yaml, .yml or .csv)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown event format %q", s)
}

type rawEvent struct {
	Start any    `json:"start" yaml:"start"`
	Date  any    `json:"date" yaml:"date"`
	End   any    `json:"end" yaml:"end"`
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

func (r rawEvent) event() timeline.Event {
	start := r.Start
	if start == nil {
		start = r.Date
	}
	return timeline.Event{Start: start, End: r.End, Label: r.Label, Color: r.Color}
}

type document struct {
	Events []rawEvent `json:"events" yaml:"events"`
}

// ReadEvents decodes events in the given format from r. ReadEvents does not
// close r.
func ReadEvents(r io.Reader, format Format) ([]timeline.Event, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatJSON, FormatYAML:
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown event format %q", format)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var raw []rawEvent
	if format == FormatJSON {
		raw, err = decodeJSON(data)
	} else {
		raw, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	events := make([]timeline.Event, len(raw))
	for i, e := range raw {
		events[i] = e.event()
	}
	return events, nil
}

func decodeJSON(data []byte) ([]rawEvent, error) {
	trimmed := bytes.TrimSpace(data)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON events")
		}
		return doc.Events, nil
	}
	var list []rawEvent
	if err := dec.Decode(&list); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON events")
	}
	return list, nil
}

func decodeYAML(data []byte) ([]rawEvent, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML events")
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML events")
		}
		return doc.Events, nil
	}
	var list []rawEvent
	if err := root.Decode(&list); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML events")
	}
	return list, nil
}

// ImportEvents reads an event file, picking the format from its extension.
func ImportEvents(path string) ([]timeline.Event, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	events, err := ReadEvents(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}
