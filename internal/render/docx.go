// Package render adapts the compose Writer surface onto go-docx.
package render

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// Table width in twips; go-docx spreads columns evenly across it.
const tableWidth = 8600

// Document is a .docx under construction. It implements compose.Writer and
// io.WriterTo; one Document per build call.
type Document struct {
	doc *docx.Docx
}

// NewDocument creates an empty document with the default theme.
func NewDocument() *Document {
	return &Document{doc: docx.New().WithDefaultTheme()}
}

// AddHeading writes a styled heading. Level 0 is the document title.
func (d *Document) AddHeading(text string, level int) {
	d.doc.AddParagraph().Style(headingStyle(level)).AddText(text)
}

// AddParagraph writes a plain paragraph.
func (d *Document) AddParagraph(text string) {
	d.doc.AddParagraph().AddText(text)
}

// AddTable writes a header row followed by data rows. Rows are assumed to
// match the column count; short rows pad with empty cells rather than
// panicking.
func (d *Document) AddTable(columns []string, rows [][]string) {
	if len(columns) == 0 {
		return
	}
	tbl := d.doc.AddTable(len(rows)+1, len(columns), tableWidth, nil)

	fillRow := func(r int, cells []string) {
		if r >= len(tbl.TableRows) {
			return
		}
		row := tbl.TableRows[r]
		for c := range row.TableCells {
			var v string
			if c < len(cells) {
				v = cells[c]
			}
			row.TableCells[c].AddParagraph().AddText(v)
		}
	}

	fillRow(0, columns)
	for i, cells := range rows {
		fillRow(i+1, cells)
	}
}

// AddPicture embeds image bytes as an inline drawing in a new paragraph.
func (d *Document) AddPicture(data []byte) error {
	if _, err := d.doc.AddParagraph().AddInlineDrawing(data); err != nil {
		return fmt.Errorf("add inline drawing: %w", err)
	}
	return nil
}

// WriteTo serializes the document as a .docx archive.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

func headingStyle(level int) string {
	switch level {
	case 0:
		return "Title"
	case 1:
		return "Heading1"
	case 2:
		return "Heading2"
	case 3:
		return "Heading3"
	default:
		return fmt.Sprintf("Heading%d", level)
	}
}
