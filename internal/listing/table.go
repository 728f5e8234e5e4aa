package listing

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	tablePadding = 2
	maxTextWidth = 80
)

func writeTableListing(out io.Writer, listing Listing) error {
	headers := []string{"#", "Name", "Text", "Type", "B", "I", "U"}
	rows := make([][]string, len(listing.Paragraphs))
	for i, row := range listing.Paragraphs {
		rows[i] = []string{
			strconv.Itoa(row.Index),
			row.Style,
			runewidth.Truncate(row.Text, maxTextWidth, "…"),
			row.Type,
			mark(row.Bold),
			mark(row.Italic),
			mark(row.Underline),
		}
	}

	writer := bufio.NewWriter(out)
	if err := writeAligned(writer, headers, rows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "\n%d paragraphs in %s\n", listing.ParagraphCount, listing.File); err != nil {
		return err
	}
	return writer.Flush()
}

func writeAligned(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	update := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if dw := runewidth.StringWidth(cell); dw > widths[i] {
				widths[i] = dw
			}
		}
	}
	update(headers)
	for _, row := range rows {
		update(row)
	}

	writeRow := func(row []string) error {
		var b strings.Builder
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < len(headers)-1 {
				padding := widths[i] - runewidth.StringWidth(cell)
				b.WriteString(strings.Repeat(" ", padding+tablePadding))
			}
		}
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if err := writeRow(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func mark(v bool) string {
	if v {
		return "✓"
	}
	return ""
}
