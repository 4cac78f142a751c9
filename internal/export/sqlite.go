package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"chatlens/internal/parse"
	"chatlens/internal/pipeline"
	"chatlens/internal/stats"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS messages (
    id        INTEGER PRIMARY KEY,
    ts        TEXT NOT NULL,
    author    TEXT NOT NULL DEFAULT '',
    type      TEXT NOT NULL,
    content   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS stats (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS type_stats (
    type       TEXT PRIMARY KEY,
    count      INTEGER NOT NULL,
    avg_length REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS author_stats (
    author     TEXT PRIMARY KEY,
    count      INTEGER NOT NULL,
    percent    REAL NOT NULL,
    avg_length REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS timeline (
    day   TEXT NOT NULL,
    type  TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (day, type)
);
`

// WriteSQLite creates path as a fresh SQLite database holding the filtered
// messages and every aggregate table. An existing file at path is replaced,
// not merged.
func WriteSQLite(path string, res pipeline.Result) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replace export db: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open export db: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	if err := insertMessages(tx, res.Messages); err != nil {
		return err
	}
	if err := insertStats(tx, res.Stats); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

func insertMessages(tx *sql.Tx, msgs []parse.Message) error {
	stmt, err := tx.Prepare("INSERT INTO messages (id, ts, author, type, content) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare messages: %w", err)
	}
	defer stmt.Close()

	for i, m := range msgs {
		_, err := stmt.Exec(i+1, m.Timestamp.UTC().Format(time.RFC3339Nano), m.Author, m.Type, m.Content)
		if err != nil {
			return fmt.Errorf("insert message %d: %w", i+1, err)
		}
	}
	return nil
}

func insertStats(tx *sql.Tx, rep stats.Report) error {
	kv := [][2]string{
		{"total", strconv.Itoa(rep.Total)},
		{"replies", strconv.Itoa(rep.Replies)},
		{"avg_length", strconv.FormatFloat(rep.AvgLength, 'f', 1, 64)},
		{"active_days", strconv.Itoa(rep.Days)},
		{"per_day", strconv.FormatFloat(rep.PerDay, 'f', 1, 64)},
	}
	for _, pair := range kv {
		if _, err := tx.Exec("INSERT INTO stats (key, value) VALUES (?, ?)", pair[0], pair[1]); err != nil {
			return fmt.Errorf("insert stat %s: %w", pair[0], err)
		}
	}

	for _, t := range rep.Types {
		_, err := tx.Exec("INSERT INTO type_stats (type, count, avg_length) VALUES (?, ?, ?)",
			t.Type, t.Count, t.AvgLength)
		if err != nil {
			return fmt.Errorf("insert type stat %s: %w", t.Type, err)
		}
	}

	for _, a := range rep.Authors {
		_, err := tx.Exec("INSERT INTO author_stats (author, count, percent, avg_length) VALUES (?, ?, ?, ?)",
			a.Author, a.Count, a.Percent, a.AvgLength)
		if err != nil {
			return fmt.Errorf("insert author stat %s: %w", a.Author, err)
		}
	}

	for _, row := range rep.Timeline.Rows {
		day := row.Day.Format(parse.DayLayout)
		for i, typ := range rep.Timeline.Types {
			if row.Counts[i] == 0 {
				continue
			}
			_, err := tx.Exec("INSERT INTO timeline (day, type, count) VALUES (?, ?, ?)",
				day, typ, row.Counts[i])
			if err != nil {
				return fmt.Errorf("insert timeline %s/%s: %w", day, typ, err)
			}
		}
	}
	return nil
}
