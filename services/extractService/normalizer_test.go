package extractService

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("building cell reference: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("writing fixture row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing fixture workbook: %v", err)
	}
	return buf.Bytes()
}

func TestExtractRows_Workbook(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"Date", "Status", "League", "Match", "Bet Type"},
		{"9 Feb 2025 @ 4:08pm", "Won", "NBA", "Lakers vs Celtics", "Single"},
		{"10 Feb 2025 @ 1:00pm", "Lost", "NBA", "Heat vs Bulls", "Single"},
	})

	rows, err := ExtractRows(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, 2, len(rows), "row count after header skip")
	assertEqual(t, "Won", rows[0][1], "first data cell")
	assertEqual(t, "Heat vs Bulls", rows[1][3], "second data match")
}

func TestExtractRows_CSV(t *testing.T) {
	csvText := "Date,Status,League,Match,Bet Type\n" +
		"9 Feb 2025 @ 4:08pm,Won,NBA,Lakers vs Celtics,Single\n" +
		"10 Feb 2025 @ 1:00pm,Lost,NBA,Heat vs Bulls,Single\n"

	rows, err := ExtractRows([]byte(csvText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, 2, len(rows), "row count after header skip")
	assertEqual(t, "Lakers vs Celtics", rows[0][3], "match cell")
}

func TestExtractRows_CSVWithBOM(t *testing.T) {
	csvText := "\xEF\xBB\xBFDate,Status,League,Match,Bet Type\n" +
		"9 Feb 2025 @ 4:08pm,Won,NBA,Lakers vs Celtics,Single\n"

	rows, err := ExtractRows([]byte(csvText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEqual(t, 1, len(rows), "row count")
	assertEqual(t, "9 Feb 2025 @ 4:08pm", rows[0][0], "date survives the BOM strip")
}

func TestExtractRows_SemicolonDelimited(t *testing.T) {
	text := "9 Feb 2025 @ 4:08pm;Won;NBA;Lakers vs Celtics;Single\n" +
		"10 Feb 2025 @ 1:00pm;Lost;NBA;Heat vs Bulls;Single\n"

	rows, err := ExtractRows([]byte(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEqual(t, 2, len(rows), "row count")
	assertEqual(t, 5, len(rows[0]), "cells per row")
	assertEqual(t, "NBA", rows[0][2], "league cell")
}

func TestExtractRows_SpreadsheetMarkup(t *testing.T) {
	markup := `<?xml version="1.0"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet ss:Name="Bets">
  <Table>
   <Row>
    <Cell><Data ss:Type="String">Date</Data></Cell>
    <Cell><Data ss:Type="String">Status</Data></Cell>
    <Cell><Data ss:Type="String">League</Data></Cell>
    <Cell><Data ss:Type="String">Match</Data></Cell>
   </Row>
   <Row>
    <Cell><Data ss:Type="String">9 Feb 2025 @ 4:08pm</Data></Cell>
    <Cell><Data ss:Type="String">Won</Data></Cell>
    <Cell/>
    <Cell><Data ss:Type="String">Smith &amp; Sons vs Celtics</Data></Cell>
   </Row>
  </Table>
 </Worksheet>
</Workbook>`

	rows, err := ExtractRows([]byte(markup))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, 1, len(rows), "row count after header skip")
	assertEqual(t, 4, len(rows[0]), "cells incl. the self-closing one")
	assertEqual(t, "", rows[0][2], "self-closing cell is empty")
	assertEqual(t, "Smith & Sons vs Celtics", rows[0][3], "entities decoded")
}

func TestExtractRows_NoData(t *testing.T) {
	inputs := map[string][]byte{
		"free text":      []byte("nothing tabular in here\njust words\n"),
		"binary garbage": {0x00, 0x01, 0x02, 0x03, 0xFF},
		"empty buffer":   {},
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractRows(data)
			if !errors.Is(err, ErrNoDataExtracted) {
				t.Errorf("expected ErrNoDataExtracted, got %v", err)
			}
		})
	}
}

func TestExtractRows_EmptyWorkbook(t *testing.T) {
	data := workbookBytes(t, nil)

	_, err := ExtractRows(data)
	if !errors.Is(err, ErrNoDataExtracted) {
		t.Errorf("expected ErrNoDataExtracted for an empty workbook, got %v", err)
	}
}

func TestRowsFromCellScan(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// A sparse sheet: B1 and D2 set, everything else empty.
	if err := f.SetCellValue("Sheet1", "B1", "Won"); err != nil {
		t.Fatalf("setting cell: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "D2", "Lakers vs Celtics"); err != nil {
		t.Fatalf("setting cell: %v", err)
	}
	if err := f.SetSheetDimension("Sheet1", "A1:D2"); err != nil {
		t.Fatalf("setting dimension: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing fixture workbook: %v", err)
	}

	rows := rowsFromCellScan(buf.Bytes())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	assertEqual(t, 4, len(rows[0]), "cells per row")
	assertEqual(t, "Won", rows[0][1], "B1")
	assertEqual(t, "", rows[0][0], "A1 empty")
	assertEqual(t, "Lakers vs Celtics", rows[1][3], "D2")
}

func TestDimensionBounds(t *testing.T) {
	col, row := dimensionBounds("A1:N42")
	assertEqual(t, 14, col, "columns")
	assertEqual(t, 42, row, "rows")

	col, row = dimensionBounds("A1:ZZ99999")
	assertEqual(t, maxScanCols, col, "columns capped")
	assertEqual(t, maxScanRows, row, "rows capped")

	col, row = dimensionBounds("garbage")
	assertEqual(t, 0, col, "columns on bad input")
	assertEqual(t, 0, row, "rows on bad input")
}

func TestSkipHeaderRow(t *testing.T) {
	t.Run("header dropped", func(t *testing.T) {
		rows := [][]string{
			{"Date", "Status", "League", "Match"},
			{"9 Feb 2025 @ 4:08pm", "Won", "NBA", "Lakers vs Celtics"},
		}
		out := skipHeaderRow(rows)
		assertEqual(t, 1, len(out), "row count")
		assertEqual(t, "Won", out[0][1], "data row kept")
	})

	t.Run("data first row kept", func(t *testing.T) {
		rows := [][]string{
			{"9 Feb 2025 @ 4:08pm", "Won", "NBA", "Lakers vs Celtics"},
		}
		out := skipHeaderRow(rows)
		assertEqual(t, 1, len(out), "row count")
	})

	t.Run("single header token is not enough", func(t *testing.T) {
		rows := [][]string{
			{"9 Feb 2025 @ 4:08pm", "Won", "NBA", "Matchup of the Year"},
		}
		out := skipHeaderRow(rows)
		assertEqual(t, 1, len(out), "row count")
	})
}

func TestSniffDelimiter(t *testing.T) {
	assertEqual(t, ',', sniffDelimiter([]byte("a,b,c\n1,2,3")), "comma")
	assertEqual(t, ';', sniffDelimiter([]byte("a;b;c\n1;2;3")), "semicolon")
	assertEqual(t, '\t', sniffDelimiter([]byte("a\tb\tc")), "tab")
	assertEqual(t, ',', sniffDelimiter([]byte("plain")), "default")
}

func TestDropBlankRows(t *testing.T) {
	rows := [][]string{
		{"", "", ""},
		{"a", "", ""},
		{"   ", "\t", ""},
		{"", "b"},
	}
	out := dropBlankRows(rows)
	assertEqual(t, 2, len(out), "row count")
	assertEqual(t, "a", out[0][0], "first kept row")
	assertEqual(t, "b", out[1][1], "second kept row")
}

func TestRowsFromDelimitedText_RejectsMarkupAndArchives(t *testing.T) {
	if rows := rowsFromDelimitedText([]byte("<Workbook><Row></Row></Workbook>")); rows != nil {
		t.Errorf("expected nil for markup input, got %d rows", len(rows))
	}
	if rows := rowsFromDelimitedText([]byte("PK\x03\x04zipcontent")); rows != nil {
		t.Errorf("expected nil for zip input, got %d rows", len(rows))
	}
	if rows := rowsFromDelimitedText([]byte("one\ntwo\nthree\n")); rows != nil {
		t.Errorf("expected nil for undelimited text, got %d rows", len(rows))
	}
}

func TestExtractRows_HeaderDetectionIsCaseInsensitive(t *testing.T) {
	csvText := "DATE,STATUS,LEAGUE,MATCH,BET TYPE\n" +
		"9 Feb 2025 @ 4:08pm,Won,NBA,Lakers vs Celtics,Single\n"

	rows, err := ExtractRows([]byte(csvText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || !strings.Contains(rows[0][3], "Lakers") {
		t.Errorf("expected only the data row, got %v", rows)
	}
}
