package corpus

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Options controls how an input file is read.
type Options struct {
	Sheet    string // xlsx sheet; empty selects the first sheet
	SkipRows int    // legend rows before the header (xlsx/csv only)
	Logger   *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Load reads path according to its extension.
func Load(path string, opts Options) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		t, err = LoadXLSX(path, opts)
	case ".csv":
		t, err = LoadCSV(path, ',', opts)
	case ".tsv":
		t, err = LoadCSV(path, '\t', opts)
	case ".jsonl", ".ndjson":
		t, err = LoadJSONL(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	rows, cols := t.Shape()
	opts.logger().Debug("corpus loaded",
		zap.String("path", path),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Strings("columns", t.Header))
	return t, nil
}

// LoadXLSX reads one sheet of an Excel workbook.
func LoadXLSX(path string, opts Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return NewTable(path, raw, opts.SkipRows)
}

// LoadCSV reads a delimited text file. Rows may have differing lengths.
func LoadCSV(path string, comma rune, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.Comma = comma
	reader.LazyQuotes = true
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewTable(path, raw, opts.SkipRows)
}

// LoadJSONL reads one JSON object per line. The header is the union of keys
// in first-seen order (keys of a single object sorted). Malformed lines are
// skipped with a warning.
func LoadJSONL(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	log := opts.logger()
	var (
		header  []string
		index   = make(map[string]int)
		objects []map[string]any
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			log.Warn("skipping malformed JSON line",
				zap.String("path", path),
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(header)
				header = append(header, k)
			}
		}
		objects = append(objects, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no valid records found in %s", path)
	}

	raw := make([][]string, 0, len(objects)+1)
	raw = append(raw, header)
	for _, obj := range objects {
		row := make([]string, len(header))
		for k, v := range obj {
			row[index[k]] = stringify(v)
		}
		raw = append(raw, row)
	}
	return NewTable(path, raw, 0)
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
