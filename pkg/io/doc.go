// Package io reads and writes timeline events.
//
// Three input formats are supported. JSON and YAML files hold either a list
// of events or an object with an "events" list:
//
//	[
//	  {"start": "2024-01-01T00:10:00Z", "label": "Deploy"},
//	  {"start": "2024-01-01T00:20:00Z", "end": "2024-01-01T00:40:00Z", "label": "Migration", "color": "#c00"}
//	]
//
// CSV files need a header row. Column names are matched case-insensitively:
// "start" (or "date", "timestamp"), "end", "label" (or "title", "name") and
// "color". Only the start column is required.
//
// Instants are kept as decoded and parsed later by the renderer, so any
// form accepted by instant.Parse works: RFC 3339 strings, epoch
// milliseconds, [year, month, day] triples or {year, month, date} objects.
// "date" is accepted as an alias for "start".
//
// Use [ReadEvents] for any io.Reader and [ImportEvents] for files; the
// format of a file is taken from its extension (see [FormatFromPath]).
// [WriteJSON] and [ExportJSON] write events back as JSON.
package io
