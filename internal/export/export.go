// Package export converts one filtered result into files for downstream
// tools. Exports are one-shot conversions; the dashboard never reads them
// back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"chatlens/internal/parse"
	"chatlens/internal/pipeline"
	"chatlens/internal/stats"
)

const (
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// WriteFile writes res to path in the named format. The JSON export uses
// the same top-level shape as the input files, so it can be loaded again.
func WriteFile(path, format string, res pipeline.Result) error {
	switch format {
	case FormatSQLite:
		return WriteSQLite(path, res)
	case FormatJSON, FormatCSV:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		var werr error
		if format == FormatJSON {
			werr = WriteJSON(f, res)
		} else {
			werr = WriteCSV(f, res)
		}
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		return werr
	default:
		return fmt.Errorf("unknown export format %q (want json, csv, or sqlite)", format)
	}
}

type jsonMessage struct {
	Timestamp string `json:"timestamp"`
	Author    string `json:"author,omitempty"`
	Content   string `json:"content"`
	Type      string `json:"type"`
}

type jsonTypeStat struct {
	Type      string  `json:"type"`
	Count     int     `json:"count"`
	AvgLength float64 `json:"avg_length"`
}

type jsonAuthorStat struct {
	Author    string  `json:"author"`
	Count     int     `json:"count"`
	Percent   float64 `json:"percent"`
	AvgLength float64 `json:"avg_length"`
}

type jsonTimelineRow struct {
	Day    string `json:"day"`
	Counts []int  `json:"counts"`
}

type jsonTimeline struct {
	Types []string          `json:"types"`
	Rows  []jsonTimelineRow `json:"rows"`
}

type jsonStats struct {
	Total      int              `json:"total"`
	Replies    int              `json:"replies"`
	AvgLength  float64          `json:"avg_length"`
	ActiveDays int              `json:"active_days"`
	PerDay     float64          `json:"per_day"`
	Types      []jsonTypeStat   `json:"types"`
	Authors    []jsonAuthorStat `json:"authors"`
	Timeline   jsonTimeline     `json:"timeline"`
	Hours      [24]int          `json:"hours"`
	Weekdays   [7]int           `json:"weekdays"`
}

type jsonPayload struct {
	Messages []jsonMessage `json:"messages"`
	Stats    jsonStats     `json:"stats"`
}

// WriteJSON writes the filtered messages plus the full aggregate report.
func WriteJSON(w io.Writer, res pipeline.Result) error {
	payload := jsonPayload{
		Messages: make([]jsonMessage, 0, len(res.Messages)),
		Stats:    statsJSON(res.Stats),
	}
	for _, m := range res.Messages {
		payload.Messages = append(payload.Messages, jsonMessage{
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339Nano),
			Author:    m.Author,
			Content:   m.Content,
			Type:      m.Type,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}

// WriteCSV writes one row per filtered message: timestamp, author, type,
// content. encoding/csv handles quoting of embedded commas and newlines.
func WriteCSV(w io.Writer, res pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "author", "type", "content"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range res.Messages {
		rec := []string{
			m.Timestamp.UTC().Format(time.RFC3339Nano),
			m.Author,
			m.Type,
			m.Content,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv export: %w", err)
	}
	return nil
}

func statsJSON(rep stats.Report) jsonStats {
	out := jsonStats{
		Total:      rep.Total,
		Replies:    rep.Replies,
		AvgLength:  rep.AvgLength,
		ActiveDays: rep.Days,
		PerDay:     rep.PerDay,
		Types:      make([]jsonTypeStat, 0, len(rep.Types)),
		Authors:    make([]jsonAuthorStat, 0, len(rep.Authors)),
		Hours:      rep.Hours,
		Weekdays:   rep.Weekdays,
	}
	for _, t := range rep.Types {
		out.Types = append(out.Types, jsonTypeStat{Type: t.Type, Count: t.Count, AvgLength: t.AvgLength})
	}
	for _, a := range rep.Authors {
		out.Authors = append(out.Authors, jsonAuthorStat{
			Author:    a.Author,
			Count:     a.Count,
			Percent:   a.Percent,
			AvgLength: a.AvgLength,
		})
	}
	out.Timeline.Types = rep.Timeline.Types
	for _, r := range rep.Timeline.Rows {
		out.Timeline.Rows = append(out.Timeline.Rows, jsonTimelineRow{
			Day:    r.Day.Format(parse.DayLayout),
			Counts: r.Counts,
		})
	}
	return out
}
