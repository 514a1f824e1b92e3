// Package export renders a task list as a PDF document.
package export

import (
	_ "embed"
	"fmt"
	"io"

	"todo-list/internal/domain"
	"todo-list/internal/errors"

	"github.com/go-pdf/fpdf"
)

const (
	// MainListTitle is the title of a main list export.
	MainListTitle = "A to-do list"

	titleFontSize = 14
	rowHeight     = 20
	fontFamily    = "DejaVu"
)

// Embedded so text beyond Latin-1 prints as typed.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// Row is one exported task.
type Row struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Document is everything that goes on the page.
type Document struct {
	Title   string `json:"title"`
	Rows    []Row  `json:"rows"`
	BigTask string `json:"bigTask,omitempty"`
}

// Rows builds the document for the main list (empty projectID) or one project.
// The main list leaves out tasks that carry a project marker; a project
// export lists all of the project's own items.
func Rows(board *domain.Board, projectID string) (Document, error) {
	if projectID == "" {
		doc := Document{Title: MainListTitle, Rows: []Row{}}
		for _, t := range board.Items {
			if t.ProjectID != "" {
				continue
			}
			doc.Rows = append(doc.Rows, Row{Text: t.Text, Done: t.Done})
		}
		return doc, nil
	}

	project, ok := board.FindProject(projectID)
	if !ok {
		return Document{}, errors.NewNotFoundError("project", projectID)
	}
	doc := Document{Title: "Project: " + project.Name, Rows: make([]Row, 0, len(project.Items))}
	for _, t := range project.Items {
		doc.Rows = append(doc.Rows, Row{Text: t.Text, Done: t.Done})
	}
	return doc, nil
}

// Writer renders documents with fpdf.
type Writer struct {
	FontSize float64
	Compress bool
}

// NewWriter returns a Writer using the given body font size.
func NewWriter(fontSize float64) *Writer {
	return &Writer{FontSize: fontSize, Compress: true}
}

// Write renders doc as PDF into w. Done rows are struck through.
func (pw *Writer) Write(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(pw.Compress)
	pdf.SetTitle(doc.Title, true)
	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", titleFontSize)
	pdf.CellFormat(0, titleFontSize+10, doc.Title, "", 1, "L", false, 0, "")

	for i, row := range doc.Rows {
		style := ""
		if row.Done {
			style = "S"
		}
		pdf.SetFont(fontFamily, style, pw.FontSize)
		pdf.CellFormat(0, rowHeight, fmt.Sprintf("%d. %s", i+1, row.Text), "", 1, "L", false, 0, "")
	}

	if doc.BigTask != "" {
		pdf.Ln(10)
		pdf.SetFont(fontFamily, "", pw.FontSize)
		pdf.MultiCell(0, rowHeight, "Big task: "+doc.BigTask, "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to render PDF")
	}
	return nil
}
