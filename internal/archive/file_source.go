package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/tOgg1/chrono/internal/logging"
	"github.com/tOgg1/chrono/internal/timeline"
)

// FileSource reads a JSON dataset: either an array of records or an object with
// an "items" array.
type FileSource struct {
	Path string
	log  zerolog.Logger
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, log: logging.Component("archive")}
}

func (s *FileSource) Load(ctx context.Context) ([]timeline.Item, error) {
	records, err := ReadRecords(s.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, rejected := Normalize(records)
	logRejected(s.log, s.Path, len(records), items, rejected)
	return items, nil
}

func (s *FileSource) Close() error { return nil }

type datasetFile struct {
	Items []Record `json:"items"`
}

// ReadRecords decodes the dataset file at path.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return DecodeRecords(data)
}

// DecodeRecords decodes a dataset document.
func DecodeRecords(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Record{}, nil
	}
	if data[0] == '{' {
		var doc datasetFile
		if err := sonic.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
		return doc.Items, nil
	}
	var records []Record
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return records, nil
}

func logRejected(log zerolog.Logger, origin string, total int, items []timeline.Item, rejected []Rejected) {
	for _, r := range rejected {
		log.Debug().
			Str("origin", origin).
			Int("index", r.Index).
			Str("id", r.ID).
			Str("title", r.Title).
			Str("reason", r.Reason).
			Msg("record dropped")
	}
	log.Debug().
		Str("origin", origin).
		Int("records", total).
		Int("items", len(items)).
		Int("rejected", len(rejected)).
		Msg("dataset loaded")
}
