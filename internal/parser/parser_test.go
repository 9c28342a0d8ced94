package parser

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"
)

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

const sampleCSV = "Movement_ID,Time,Legs_Energy\nsw1,0.0,100.5\nsw1,0.1,200.25\n"

func TestDecodePlainText(t *testing.T) {
	text, err := Decode([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if text != sampleCSV {
		t.Errorf("plain text should pass through unchanged")
	}
}

func TestDecodeGzipTransparent(t *testing.T) {
	plain, err := Decode([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Decode plain: %v", err)
	}
	compressed, err := Decode(gzipBytes(t, sampleCSV))
	if err != nil {
		t.Fatalf("Decode gzip: %v", err)
	}
	if plain != compressed {
		t.Errorf("gzip input must decode to the same text as the uncompressed equivalent")
	}

	plainRows := ParseRows(plain)
	gzRows := ParseRows(compressed)
	if len(plainRows) != len(gzRows) {
		t.Fatalf("row counts differ: %d vs %d", len(plainRows), len(gzRows))
	}
	for i := range plainRows {
		if plainRows[i].Str("legs_energy") != gzRows[i].Str("legs_energy") {
			t.Errorf("row %d differs between gzip and plain", i)
		}
	}
}

func TestDecodeCorruptGzipFails(t *testing.T) {
	// Valid magic, garbage payload.
	if _, err := Decode([]byte{0x1f, 0x8b, 0x00, 0x01, 0x02}); err == nil {
		t.Error("expected error for corrupt gzip payload")
	}
}

func TestTruncateNeverSplitsLine(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("movement_id,time,legs_energy\n")
	for i := 0; i < 500; i++ {
		sb.WriteString("sw1,0.1,123.456789\n")
	}
	full := sb.String()
	fullRows := ParseRows(full)

	// Cap the document at several arbitrary byte budgets; the parsed rows
	// must always be a strict prefix of the uncapped rows.
	for _, limit := range []int{40, 100, 333, 1000, len(full) - 1} {
		capped, err := DecodeLimit([]byte(full), limit)
		if err != nil {
			t.Fatalf("DecodeLimit(%d): %v", limit, err)
		}
		rows := ParseRows(capped)
		if len(rows) >= len(fullRows) {
			t.Errorf("limit %d: expected fewer rows than %d, got %d", limit, len(fullRows), len(rows))
		}
		for i := range rows {
			if rows[i].Str("legs_energy") != fullRows[i].Str("legs_energy") {
				t.Errorf("limit %d: row %d corrupted by truncation", limit, i)
			}
		}
	}
}

func TestDecodeUnderLimitUntouched(t *testing.T) {
	text, err := DecodeLimit([]byte(sampleCSV), len(sampleCSV))
	if err != nil {
		t.Fatalf("DecodeLimit: %v", err)
	}
	if text != sampleCSV {
		t.Error("document at exactly the limit must pass through unchanged")
	}
}

func TestParseRowsHeaderNormalization(t *testing.T) {
	rows := ParseRows("\"Movement_ID\", Time ,LEGS_ENERGY\nsw1,0.5,300\n")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Str("movement_id") != "sw1" {
		t.Errorf("quoted header not lower-cased/stripped: %v", rows[0])
	}
	if rows[0].Str("legs_energy") != "300" {
		t.Errorf("upper-case header not normalized: %v", rows[0])
	}
	if v := rows[0].Float("time"); v != 0.5 {
		t.Errorf("time = %v, want 0.5", v)
	}
}

func TestParseRowsShortLineFillsEmpty(t *testing.T) {
	rows := ParseRows("movement_id,time,legs_energy\nsw1,0.1\n")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0].Str("legs_energy"); got != "" {
		t.Errorf("missing column should read as empty string, got %q", got)
	}
	if rows[0].Float("legs_energy") != 0 {
		t.Error("missing numeric column should coerce to 0")
	}
}

func TestParseRowsDropsBlankLines(t *testing.T) {
	rows := ParseRows("movement_id,time\n\nsw1,0.1\n\r\nsw1,0.2\n\n")
	if len(rows) != 2 {
		t.Errorf("expected 2 rows after dropping blanks, got %d", len(rows))
	}
}
