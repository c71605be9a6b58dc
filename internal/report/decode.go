package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	specs "github.com/chrisconley/tally/specs"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a report definition.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension, defaulting to JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes the report definition at path.
func LoadFile(path string) (specs.ReportSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return specs.ReportSpec{}, fmt.Errorf("failed to read report: %w", err)
	}
	report, err := Decode(data, FormatOf(path))
	if err != nil {
		return specs.ReportSpec{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return report, nil
}

// Decode parses a report definition and checks that it declares statistics.
func Decode(data []byte, format Format) (specs.ReportSpec, error) {
	var report specs.ReportSpec

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&report); err != nil {
			return specs.ReportSpec{}, fmt.Errorf("invalid JSON report: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&report); err != nil {
			return specs.ReportSpec{}, fmt.Errorf("invalid YAML report: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &report)
		if err != nil {
			return specs.ReportSpec{}, fmt.Errorf("invalid TOML report: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return specs.ReportSpec{}, fmt.Errorf("invalid TOML report: unknown key %q", undecoded[0].String())
		}
	default:
		return specs.ReportSpec{}, fmt.Errorf("unsupported report format %q", format)
	}

	if len(report.Statistics) == 0 {
		return specs.ReportSpec{}, fmt.Errorf("report declares no statistics")
	}
	return report, nil
}
