package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/timeline/pkg/timeline"
)

// WriteJSON encodes events as an indented JSON list. The output can be read
// back with [ReadEvents].
func WriteJSON(events []timeline.Event, w io.Writer) error {
	if events == nil {
		events = []timeline.Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes events to a JSON file at path.
func ExportJSON(events []timeline.Event, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(events, f)
}
