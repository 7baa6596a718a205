package tap

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/drivetap-org/drivetap/drive"
)

const CSVStreamName = "csv_rows"

// ContentSource is the slice of the remote client the stream needs.
// Satisfied by *drive.Drive.
type ContentSource interface {
	ListCsvFiles(folderId string) ([]*drive.Node, error)
	Contents(id string) ([]byte, error)
}

// CSVStream emits one record per data row of every csv file in the
// configured folder. Header cells become column names; file provenance is
// carried in underscore-prefixed metadata columns.
type CSVStream struct {
	source ContentSource
	config *Config
	state  *State
	lg     *zap.Logger
}

func NewCSVStream(source ContentSource, config *Config, state *State, lg *zap.Logger) *CSVStream {
	if lg == nil {
		lg = zap.NewNop()
	}

	return &CSVStream{
		source: source,
		config: config,
		state:  state,
		lg:     lg,
	}
}

// Schema describes the stream. Column sets vary per file, so the fixed
// properties are the provenance columns and row cells come through as
// additional string properties.
func (s *CSVStream) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"_file_id":   map[string]interface{}{"type": "string"},
			"_file_name": map[string]interface{}{"type": "string"},
			"_line":      map[string]interface{}{"type": "integer"},
			"_modified":  map[string]interface{}{"type": []string{"string", "null"}, "format": "date-time"},
		},
		"additionalProperties": map[string]interface{}{"type": []string{"string", "null"}},
	}
}

func (s *CSVStream) KeyProperties() []string {
	return []string{"_file_id", "_line"}
}

// Sync lists the folder's csv files and emits their rows, advancing the
// watermark after each file and checkpointing state.
func (s *CSVStream) Sync(e *Emitter) error {
	folderId, err := s.config.FolderId()
	if err != nil {
		return err
	}

	files, err := s.source.ListCsvFiles(folderId)
	if err != nil {
		return err
	}

	s.lg.Info("discovered csv files", zap.String("folder", folderId), zap.Int("count", len(files)))

	if err := e.Schema(CSVStreamName, s.Schema(), s.KeyProperties()); err != nil {
		return err
	}

	for _, f := range files {
		lg := s.lg.With(zap.String("id", f.Id), zap.String("name", f.Name))

		if s.beforeStartDate(f.ModifiedTime) {
			lg.Debug("file precedes start_date, skipping")
			continue
		}

		if !s.state.ShouldSync(f.Id, f.ModifiedTime) {
			lg.Debug("file unchanged since last run, skipping")
			continue
		}

		if err := s.syncFile(e, f, lg); err != nil {
			return err
		}

		s.state.Advance(f.Id, f.ModifiedTime)

		if err := e.State(s.state); err != nil {
			return err
		}
	}

	return nil
}

func (s *CSVStream) syncFile(e *Emitter, f *drive.Node, lg *zap.Logger) error {
	content, err := s.source.Contents(f.Id)
	if err != nil {
		return err
	}

	// The remote mime type is self-reported, sniff before parsing
	if !looksLikeText(content) {
		lg.Warn("content is not text, skipping", zap.String("detected", mimetype.Detect(content).String()))
		return nil
	}

	rows, err := parseCsv(content)
	if err != nil {
		return fmt.Errorf("failed to parse csv file %s: %s", f.Id, err)
	}

	if len(rows) == 0 {
		lg.Info("empty csv file")
		return nil
	}

	header := rows[0]

	for i, row := range rows[1:] {
		record := map[string]interface{}{
			"_file_id":   f.Id,
			"_file_name": f.Name,
			"_line":      i + 1,
			"_modified":  f.ModifiedTime,
		}
		for col, name := range header {
			if col < len(row) {
				record[name] = row[col]
			}
		}

		if err := e.Record(CSVStreamName, record); err != nil {
			return err
		}
	}

	lg.Info("emitted records", zap.Int("rows", len(rows)-1))
	return nil
}

func (s *CSVStream) beforeStartDate(modifiedTime string) bool {
	if s.config.StartDate == "" {
		return false
	}

	start, err := time.Parse("2006-01-02", s.config.StartDate)
	if err != nil {
		start, err = time.Parse(time.RFC3339, s.config.StartDate)
		if err != nil {
			return false
		}
	}

	modified, err := time.Parse(time.RFC3339, modifiedTime)
	if err != nil {
		return false
	}

	return modified.Before(start)
}

func parseCsv(content []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	// Ragged rows are tolerated; short rows leave columns unset
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func looksLikeText(content []byte) bool {
	mt := mimetype.Detect(content)
	for ; mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") || mt.Is("text/csv") {
			return true
		}
	}
	return false
}
