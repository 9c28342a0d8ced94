package parser

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/hitworks/swingmetrics/internal/model"
)

// MaxChars caps the decoded text size of a single CSV resource. Oversized
// exports are cut at the last complete line at-or-before the cap so the final
// record is never split mid-row.
const MaxChars = 2_000_000

// Decode turns a raw resource payload into bounded CSV text. Gzip and zstd
// payloads are detected by magic bytes and decompressed transparently;
// anything else is treated as plain text.
func Decode(raw []byte) (string, error) {
	return DecodeLimit(raw, MaxChars)
}

// DecodeLimit is Decode with an explicit character budget.
func DecodeLimit(raw []byte, maxChars int) (string, error) {
	var src io.Reader = bytes.NewReader(raw)
	switch {
	case len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b:
		gz, err := gzip.NewReader(src)
		if err != nil {
			return "", fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	case len(raw) >= 4 && raw[0] == 0x28 && raw[1] == 0xb5 && raw[2] == 0x2f && raw[3] == 0xfd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return "", fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	// Read one byte past the budget so truncation is detectable.
	data, err := io.ReadAll(io.LimitReader(src, int64(maxChars)+1))
	if err != nil {
		return "", fmt.Errorf("read resource: %w", err)
	}
	return truncateAtLine(string(data), maxChars), nil
}

// truncateAtLine cuts s at the last newline at-or-before maxChars. A document
// under budget passes through untouched.
func truncateAtLine(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	cut := strings.LastIndexByte(s[:maxChars], '\n')
	if cut < 0 {
		// One giant line with no boundary to cut at; nothing salvageable.
		return ""
	}
	return s[:cut]
}

// ParseRows parses CSV text into row mappings keyed by lower-cased,
// quote-stripped header names. Short or misaligned lines fill missing columns
// with "" rather than failing; blank lines are dropped.
func ParseRows(text string) []model.RawFrame {
	lines := strings.Split(text, "\n")

	var header []string
	var rows []model.RawFrame
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitLine(line)
		if header == nil {
			header = make([]string, len(cells))
			for i, c := range cells {
				header[i] = strings.ToLower(c)
			}
			continue
		}
		row := make(model.RawFrame, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// splitLine splits a CSV line on commas and strips surrounding quotes and
// whitespace from each cell. Capture exports never embed commas in cells, so
// a positional split is sufficient (and tolerant of ragged rows, which
// encoding/csv is not).
func splitLine(line string) []string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		c = strings.TrimSpace(c)
		c = strings.Trim(c, `"'`)
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
