package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/instant"
	"github.com/matzehuels/timeline/pkg/timeline"
)

func TestReadEventsJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"list", `[{"start": "2024-01-01T00:10:00Z", "label": "Deploy"}, {"date": 1704068400000, "end": [2024, 1, 2], "label": "Window", "color": "red"}]`},
		{"object", `{"events": [{"start": "2024-01-01T00:10:00Z", "label": "Deploy"}, {"date": 1704068400000, "end": [2024, 1, 2], "label": "Window", "color": "red"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := ReadEvents(strings.NewReader(tt.input), FormatJSON)
			if err != nil {
				t.Fatalf("ReadEvents: %v", err)
			}
			if len(events) != 2 {
				t.Fatalf("got %d events, want 2", len(events))
			}
			if events[0].Label != "Deploy" || events[0].End != nil {
				t.Errorf("event 0 = %+v", events[0])
			}
			if _, ok := events[1].Start.(json.Number); !ok {
				t.Errorf("epoch start decoded as %T, want json.Number", events[1].Start)
			}
			start, err := instant.Parse(events[1].Start, nil)
			if err != nil || start.UnixMilli() != 1704068400000 {
				t.Errorf("start = %v, %v", start, err)
			}
			end, err := instant.Parse(events[1].End, nil)
			if err != nil || end.Day() != 2 {
				t.Errorf("end = %v, %v", end, err)
			}
			if events[1].Color != "red" {
				t.Errorf("color = %q", events[1].Color)
			}
		})
	}
}

func TestReadEventsYAML(t *testing.T) {
	input := `
events:
  - start: "2024-01-01T00:10:00Z"
    label: Deploy
  - start: 2024-01-01 00:20
    end: 2024-01-01 00:40
    label: Migration
`
	events, err := ReadEvents(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 2 || events[1].Label != "Migration" {
		t.Fatalf("events = %+v", events)
	}
	for i, e := range events {
		if _, err := instant.Parse(e.Start, nil); err != nil {
			t.Errorf("event %d start %v: %v", i, e.Start, err)
		}
	}

	list, err := ReadEvents(strings.NewReader("- {start: 2024-01-01, label: a}\n"), FormatYAML)
	if err != nil || len(list) != 1 {
		t.Fatalf("list form: %v, %v", list, err)
	}

	empty, err := ReadEvents(strings.NewReader(""), FormatYAML)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty document: %v, %v", empty, err)
	}
}

func TestReadEventsCSV(t *testing.T) {
	input := "Timestamp, Title, End, Color\n" +
		"2024-01-01T00:10:00Z, Deploy, ,\n" +
		"2024-01-01T00:20:00Z, \"Migration, part 1\", 2024-01-01T00:40:00Z, #c00\n"
	events, err := ReadEvents(strings.NewReader(input), FormatCSV)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].End != nil {
		t.Errorf("empty end should be nil, got %#v", events[0].End)
	}
	if events[1].Label != "Migration, part 1" || events[1].Color != "#c00" || events[1].End != "2024-01-01T00:40:00Z" {
		t.Errorf("event 1 = %+v", events[1])
	}
}

func TestReadEventsErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		code   errors.Code
	}{
		{"bad json", `[{"start": }]`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"bad yaml", "events: [", FormatYAML, errors.ErrCodeInvalidFormat},
		{"csv without start", "label\nx\n", FormatCSV, errors.ErrCodeInvalidFormat},
		{"csv empty start", "start,label\n,x\n", FormatCSV, errors.ErrCodeInvalidInput},
		{"unknown format", "", Format("xml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEvents(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"events.json":     FormatJSON,
		"a/b/EVENTS.YML":  FormatYAML,
		"events.yaml":     FormatYAML,
		"export.2024.csv": FormatCSV,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("events.txt"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("txt: err = %v", err)
	}
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YML) = %q, %v", f, err)
	}
}

func TestImportExportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	in := []timeline.Event{
		{Start: "2024-01-01T00:10:00Z", Label: "Deploy"},
		{Start: "2024-01-01T00:20:00Z", End: "2024-01-01T00:40:00Z", Label: "Migration", Color: "#c00"},
	}
	if err := ExportJSON(in, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	out, err := ImportEvents(path)
	if err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}
	if len(out) != 2 || out[1].End != "2024-01-01T00:40:00Z" || out[1].Color != "#c00" || out[0].End != nil {
		t.Errorf("round trip = %+v", out)
	}

	if _, err := ImportEvents(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV([]timeline.Event{{Start: "2024-01-01", Label: "a, b"}}, &buf)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	events, err := ReadEvents(&buf, FormatCSV)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 1 || events[0].Label != "a, b" || events[0].Start != "2024-01-01" {
		t.Errorf("events = %+v", events)
	}
}

func TestImportEventsCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte("date,label\n2024-01-01,New year\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	events, err := ImportEvents(path)
	if err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}
	if len(events) != 1 || events[0].Label != "New year" {
		t.Errorf("events = %+v", events)
	}
}
