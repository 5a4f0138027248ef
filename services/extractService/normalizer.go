package extractService

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoDataExtracted is returned when every extraction strategy came back
// empty; it is the only failure the normalizer surfaces to the caller.
var ErrNoDataExtracted = errors.New("no rows could be extracted from the uploaded file")

// Bounds for the cell-by-cell scan so a corrupt dimension record cannot make
// the fallback walk an absurd grid.
const (
	maxScanCols = 64
	maxScanRows = 20000
)

type extractStrategy struct {
	name string
	fn   func([]byte) [][]string
}

func extractStrategies() []extractStrategy {
	return []extractStrategy{
		{"workbook-grid", rowsFromWorkbookGrid},
		{"delimited-text", rowsFromDelimitedText},
		{"cell-scan", rowsFromCellScan},
		{"xml-markup", rowsFromMarkup},
	}
}

// ExtractRows turns a raw export buffer into rows of string cells. The
// strategies are tried in order and the first one that yields data wins;
// a detected header row is dropped from the result.
func ExtractRows(data []byte) ([][]string, error) {
	for _, strat := range extractStrategies() {
		rows := dropBlankRows(strat.fn(data))
		if len(rows) == 0 {
			continue
		}
		log.Printf("Extract: strategy %q produced %d rows", strat.name, len(rows))
		return skipHeaderRow(rows), nil
	}
	return nil, ErrNoDataExtracted
}

// rowsFromWorkbookGrid reads every sheet through the workbook's own cell
// grid, which preserves row and column alignment.
func rowsFromWorkbookGrid(data []byte) [][]string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	defer f.Close()

	var out [][]string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			log.Printf("Extract: grid read failed for sheet %q: %v", sheet, err)
			continue
		}
		out = append(out, rows...)
	}
	return out
}

// rowsFromDelimitedText reparses the buffer as delimited text. Exports that
// are really CSV under an .xls name land here after the workbook open fails.
func rowsFromDelimitedText(data []byte) [][]string {
	text := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	head := bytes.TrimSpace(text)
	if len(head) == 0 || head[0] == '<' || bytes.HasPrefix(head, []byte("PK")) {
		return nil
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(head)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}
		out = append(out, rec)
	}

	// A buffer with no real delimiters parses as one cell per line; treat
	// that as a miss so the later strategies get their turn.
	for _, row := range out {
		populated := 0
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				populated++
			}
		}
		if populated >= 2 {
			return out
		}
	}
	return nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best := ','
	bestCount := 0
	for _, d := range []rune{',', ';', '\t'} {
		if c := bytes.Count(line, []byte(string(d))); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

// rowsFromCellScan rebuilds the grid one cell reference at a time, which
// recovers sparse or irregular sheets the bulk grid read chokes on.
func rowsFromCellScan(data []byte) [][]string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	defer f.Close()

	var out [][]string
	for _, sheet := range f.GetSheetList() {
		dim, err := f.GetSheetDimension(sheet)
		if err != nil {
			continue
		}
		maxCol, maxRow := dimensionBounds(dim)
		if maxCol == 0 || maxRow == 0 {
			continue
		}

		for r := 1; r <= maxRow; r++ {
			row := make([]string, maxCol)
			for c := 1; c <= maxCol; c++ {
				ref, err := excelize.CoordinatesToCellName(c, r)
				if err != nil {
					continue
				}
				v, err := f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
				if err != nil {
					continue
				}
				row[c-1] = v
			}
			out = append(out, row)
		}
	}
	return out
}

func dimensionBounds(dim string) (int, int) {
	parts := strings.Split(dim, ":")
	col, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
	if err != nil {
		return 0, 0
	}
	if col > maxScanCols {
		col = maxScanCols
	}
	if row > maxScanRows {
		row = maxScanRows
	}
	return col, row
}

var (
	markupRowRe  = regexp.MustCompile(`(?is)<Row[^>]*>(.*?)</Row>`)
	markupCellRe = regexp.MustCompile(`(?is)<Cell[^>]*/>|<Cell[^>]*>\s*(?:<Data[^>]*>(.*?)</Data>)?\s*</Cell>`)
	xmlEntities  = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&#39;", "'",
	)
)

// rowsFromMarkup pattern-matches <Row><Cell><Data> markup straight out of
// the raw text. Last resort for the 2003-era XML dialects some books still
// export under an .xls name.
func rowsFromMarkup(data []byte) [][]string {
	text := string(data)
	if !strings.Contains(text, "<Row") {
		return nil
	}

	var out [][]string
	for _, rowMatch := range markupRowRe.FindAllStringSubmatch(text, -1) {
		var row []string
		for _, cellMatch := range markupCellRe.FindAllStringSubmatch(rowMatch[1], -1) {
			row = append(row, xmlEntities.Replace(strings.TrimSpace(cellMatch[1])))
		}
		out = append(out, row)
	}
	return out
}

func dropBlankRows(rows [][]string) [][]string {
	var out [][]string
	for _, row := range rows {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

var headerTokens = []string{"date", "status", "league", "match"}

// skipHeaderRow drops the first row when it reads like a column header
// instead of data.
func skipHeaderRow(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}

	joined := strings.ToLower(strings.Join(rows[0], " "))
	hits := 0
	for _, tok := range headerTokens {
		if strings.Contains(joined, tok) {
			hits++
		}
	}
	if hits >= 2 {
		log.Printf("Extract: dropping header row (%d header tokens)", hits)
		return rows[1:]
	}
	return rows
}
