package dataview

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/onepercent/pkg/errors"
)

// Supported input formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer data format from %q (want .csv, .json, .yaml)", path)
	}
}

// FormatFromContentType maps a MIME type to an input format, or "" when the
// type is not recognised.
func FormatFromContentType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(strings.ToLower(mediaType)) {
	case "text/csv":
		return FormatCSV
	case "application/json":
		return FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	default:
		return ""
	}
}

// Sniff guesses the format of data from its first non-blank bytes: a JSON
// object or array, a YAML mapping or sequence, otherwise CSV.
func Sniff(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatJSON
	}
	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	case '-':
		if len(trimmed) > 1 && (trimmed[1] == ' ' || trimmed[1] == '\n') {
			return FormatYAML
		}
	}
	firstLine, _, _ := bytes.Cut(trimmed, []byte("\n"))
	for _, key := range []string{"table:", "rows:", "columns:"} {
		if bytes.HasPrefix(firstLine, []byte(key)) {
			return FormatYAML
		}
	}
	return FormatCSV
}

// Load reads a data view from a file, picking the decoder from its extension.
func Load(path string) (*DataView, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes a data view in the given format.
func Parse(data []byte, format string) (*DataView, error) {
	return Decode(bytes.NewReader(data), format)
}

// Decode reads a data view in the given format from r.
func Decode(r io.Reader, format string) (*DataView, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(r)
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown data format %q (must be csv, json or yaml)", format)
	}
}

func decodeCSV(r io.Reader) (*DataView, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse csv")
	}

	t := &Table{}
	if len(records) > 1 && !hasNumeric(records[0]) {
		t.Columns = records[0]
		records = records[1:]
	}
	for _, rec := range records {
		row := make(Row, len(rec))
		for i, field := range rec {
			if v, ok := ParseNumber(field); ok {
				row[i] = v
			} else {
				row[i] = field
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return &DataView{Table: t}, nil
}

func hasNumeric(fields []string) bool {
	for _, f := range fields {
		if _, ok := ParseNumber(f); ok {
			return true
		}
	}
	return false
}

func decodeJSON(r io.Reader) (*DataView, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &DataView{Table: &Table{}}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse json")
	}
	return fromRaw(raw, "json")
}

func decodeYAML(r io.Reader) (*DataView, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse yaml")
	}
	return fromRaw(raw, "yaml")
}

// fromRaw accepts the three supported document shapes: a table object,
// an array of rows, or a flat array of cells.
func fromRaw(raw any, format string) (*DataView, error) {
	switch v := raw.(type) {
	case nil:
		return &DataView{Table: &Table{}}, nil
	case map[string]any:
		return fromObject(v, format)
	case []any:
		rows, err := rowsFromArray(v)
		if err != nil {
			return nil, err
		}
		return &DataView{Table: &Table{Rows: rows}}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s document must be an object or array, got %T", format, raw)
	}
}

func fromObject(obj map[string]any, format string) (*DataView, error) {
	if inner, ok := obj["table"].(map[string]any); ok {
		obj = inner
	}

	t := &Table{}
	if cols, ok := obj["columns"].([]any); ok {
		for _, c := range cols {
			t.Columns = append(t.Columns, fmt.Sprint(c))
		}
	}

	rawRows, ok := obj["rows"]
	if !ok || rawRows == nil {
		return &DataView{Table: t}, nil
	}
	arr, ok := rawRows.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s field \"rows\" must be an array, got %T", format, rawRows)
	}
	rows, err := rowsFromArray(arr)
	if err != nil {
		return nil, err
	}
	t.Rows = rows
	return &DataView{Table: t}, nil
}

// rowsFromArray treats an array of arrays as rows and a flat array as one row.
func rowsFromArray(arr []any) ([]Row, error) {
	if len(arr) == 0 {
		return nil, nil
	}
	if _, nested := arr[0].([]any); !nested {
		return []Row{normalizeRow(arr)}, nil
	}

	rows := make([]Row, 0, len(arr))
	for i, item := range arr {
		cells, ok := item.([]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d must be an array, got %T", i, item)
		}
		rows = append(rows, normalizeRow(cells))
	}
	return rows, nil
}

type float64er interface {
	Float64() (float64, error)
}

func normalizeRow(cells []any) Row {
	row := make(Row, len(cells))
	for i, c := range cells {
		row[i] = normalizeCell(c)
	}
	return row
}

// normalizeCell converts every numeric representation a decoder may produce
// into float64. Non-finite numbers such as YAML's .nan and .inf become nil.
// Other values pass through untouched.
func normalizeCell(c any) Cell {
	switch v := c.(type) {
	case float64er:
		if f, err := v.Float64(); err == nil {
			return finiteOrNil(f)
		}
		return fmt.Sprint(v)
	case float64:
		return finiteOrNil(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return finiteOrNil(float64(v))
	default:
		return c
	}
}
