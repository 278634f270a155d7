package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LoadXLSX reads one worksheet of a .xlsx workbook into a Table. The sheet
// is selected by opt.Sheet (name) or opt.SheetIndex (1-based); the default
// is the first sheet.
func LoadXLSX(filePath string, opt LoadOptions) (*Table, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	sheets := parseWorkbook(zipEntry(zr, "xl/workbook.xml"))
	rels := parseRelationships(zipEntry(zr, "xl/_rels/workbook.xml.rels"))
	shared := parseSharedStrings(zipEntry(zr, "xl/sharedStrings.xml"))

	target, err := resolveSheet(sheets, rels, opt, filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	sheetXML := zipEntry(zr, target)
	if sheetXML == nil {
		return nil, fmt.Errorf("worksheet %s not found in workbook", target)
	}

	rows := newSheetRows(sheetXML, shared)
	header, ok := rows.next()
	if !ok || len(header) == 0 {
		return nil, &MissingColumnsError{Columns: RequiredColumns}
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	t := NewTable(filepath.Base(filePath), colNames(cols))
	builder := newRecordBuilder(cols, opt)
	dateIdx, hasDate := cols[ColDate]
	for {
		row, ok := rows.next()
		if !ok {
			break
		}
		// Excel stores dates as day serials; rewrite them before the shared
		// build path tries the text layouts.
		if hasDate && dateIdx < len(row) {
			if serial, err := strconv.ParseFloat(strings.TrimSpace(row[dateIdx]), 64); err == nil {
				row[dateIdx] = excelSerialDate(serial).Format("2006-01-02")
			}
		}
		if rec, ok := builder.build(row); ok {
			t.Records = append(t.Records, rec)
		}
	}
	builder.finish(t)
	return t, nil
}

// excelSerialDate converts an Excel day serial to a calendar date.
// Day 1 is 1900-01-01; the epoch is shifted to absorb the leap-year bug.
func excelSerialDate(serial float64) time.Time {
	epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, 0, int(serial))
}

type workbookSheet struct {
	Name    string
	SheetID int
	RelID   string
}

// resolveSheet maps the requested sheet to its worksheet path inside the
// archive. An unknown sheet name errors with the available names.
func resolveSheet(sheets []workbookSheet, rels map[string]string, opt LoadOptions, source string) (string, error) {
	if opt.Sheet != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.Name, opt.Sheet) {
				if rel, ok := rels[s.RelID]; ok {
					return normalizeRelPath(rel), nil
				}
			}
		}
		names := make([]string, len(sheets))
		for i, s := range sheets {
			names[i] = s.Name
		}
		return "", fmt.Errorf("sheet %q not found in %s (available: %s)",
			opt.Sheet, source, strings.Join(names, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	for _, s := range sheets {
		if s.SheetID == idx {
			if rel, ok := rels[s.RelID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", idx), nil
}

func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return path.Clean(rel)
	}
	return path.Clean("xl/" + rel)
}

func zipEntry(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

// parseWorkbook extracts the sheet list with names and relationship ids.
func parseWorkbook(data []byte) []workbookSheet {
	var sheets []workbookSheet
	forEachElement(data, func(se xml.StartElement) {
		if se.Name.Local != "sheet" {
			return
		}
		var s workbookSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID, _ = strconv.Atoi(a.Value)
			case "id": // r: namespace
				s.RelID = a.Value
			}
		}
		sheets = append(sheets, s)
	})
	return sheets
}

// parseRelationships returns relationship id -> target path.
func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	forEachElement(data, func(se xml.StartElement) {
		if se.Name.Local != "Relationship" {
			return
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	})
	return out
}

func forEachElement(data []byte, fn func(xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok {
			fn(se)
		}
	}
}

// parseSharedStrings flattens the shared string table, concatenating rich
// text runs within each <si>.
func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inText bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "si":
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inText {
				buf.Write(el)
			}
		}
	}
}

// sheetRows streams worksheet rows as string slices, resolving shared
// strings and sparse cell references (A1-style).
type sheetRows struct {
	dec    *xml.Decoder
	shared []string
}

func newSheetRows(data []byte, shared []string) *sheetRows {
	return &sheetRows{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (r *sheetRows) next() ([]string, bool) {
	var row []string
	inRow := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "row":
				inRow = true
				row = nil
			case "c":
				if !inRow {
					continue
				}
				var ref, typ string
				for _, a := range el.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := columnIndex(ref)
				if col < 0 {
					col = len(row)
				}
				for len(row) <= col {
					row = append(row, "")
				}
				row[col] = r.cellValue(typ)
			}
		case xml.EndElement:
			if el.Name.Local == "row" {
				return row, true
			}
		}
	}
}

// cellValue reads the content of one <c> element: <v> for plain and shared
// cells, <is><t> for inline strings.
func (r *sheetRows) cellValue(typ string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "v" || el.Name.Local == "t" {
				val = r.readText(el.Name.Local)
			}
		case xml.EndElement:
			if el.Name.Local == "c" {
				if typ == "s" {
					idx, err := strconv.Atoi(val)
					if err != nil || idx < 0 || idx >= len(r.shared) {
						return ""
					}
					return r.shared[idx]
				}
				return val
			}
		}
	}
}

func (r *sheetRows) readText(closing string) string {
	var sb strings.Builder
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return sb.String()
		}
		switch el := tok.(type) {
		case xml.EndElement:
			if el.Name.Local == closing {
				return sb.String()
			}
		case xml.CharData:
			sb.Write(el)
		}
	}
}

// columnIndex converts an A1-style cell reference to a 0-based column,
// e.g. "C12" -> 2. Returns -1 for an empty reference.
func columnIndex(ref string) int {
	i := 0
	for i < len(ref) && (ref[i]|0x20) >= 'a' && (ref[i]|0x20) <= 'z' {
		i++
	}
	if i == 0 {
		return -1
	}
	idx := 0
	for _, c := range strings.ToUpper(ref[:i]) {
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}
