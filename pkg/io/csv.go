package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

var csvColumns = map[string][]string{
	"start": {"start", "date", "timestamp"},
	"end":   {"end"},
	"label": {"label", "title", "name"},
	"color": {"color"},
}

func readCSV(r io.Reader) ([]timeline.Event, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV header")
	}

	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[strings.ToLower(strings.TrimSpace(col))] = i
	}
	cols := make(map[string]int, len(csvColumns))
	for field, names := range csvColumns {
		cols[field] = -1
		for _, n := range names {
			if i, ok := byName[n]; ok {
				cols[field] = i
				break
			}
		}
	}
	if cols["start"] < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "CSV has no start column (want one of %v), got %v", csvColumns["start"], header)
	}

	var events []timeline.Event
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV line %d", line)
		}
		get := func(field string) string {
			i := cols[field]
			if i < 0 || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if get("start") == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "CSV line %d: empty start", line)
		}
		e := timeline.Event{Start: get("start"), Label: get("label"), Color: get("color")}
		if end := get("end"); end != "" {
			e.End = end
		}
		events = append(events, e)
	}
	return events, nil
}

// WriteCSV writes events with a start,end,label,color header. Instants are
// written with fmt's default formatting, so callers should hand in strings.
func WriteCSV(events []timeline.Event, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start", "end", "label", "color"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, e := range events {
		if err := cw.Write([]string{cell(e.Start), cell(e.End), e.Label, e.Color}); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
