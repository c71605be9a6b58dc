package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// LoadFile reads records from a JSON array, JSON-lines (.jsonl, .ndjson) or
// YAML (.yaml, .yml) file. Other extensions are read as JSON.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records: %w", err)
	}
	defer f.Close()

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		records, err = LoadYAML(f)
	default:
		records, err = LoadJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("records", len(records)).Msg("Loaded records")
	return records, nil
}

// LoadJSON reads either a JSON array of objects or one JSON object per line.
func LoadJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []Record{}, nil
	}

	if trimmed[0] == '[' {
		if !gjson.ValidBytes(trimmed) {
			return nil, fmt.Errorf("records are not valid JSON")
		}
		return collect(gjson.ParseBytes(trimmed).Array())
	}

	var lines []gjson.Result
	gjson.ForEachLine(string(trimmed), func(line gjson.Result) bool {
		lines = append(lines, line)
		return true
	})
	return collect(lines)
}

func collect(results []gjson.Result) ([]Record, error) {
	records := make([]Record, 0, len(results))
	for i, result := range results {
		record, err := NewRecord(result.Raw)
		if err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadYAML reads a YAML sequence of mappings.
func LoadYAML(r io.Reader) ([]Record, error) {
	var docs []map[string]any
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil {
		if err == io.EOF {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to decode YAML records: %w", err)
	}

	records := make([]Record, 0, len(docs))
	for i, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i, err)
		}
		record, err := NewRecord(string(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}
