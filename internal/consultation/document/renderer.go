package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/c14220110/clinic-backend/internal/consultation/models"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Renderer turns a record into a printable document.
type Renderer interface {
	Render(r *models.Record) ([]byte, error)
	ContentType() string
	Extension() string
}

// HTMLRenderer renders the consultation summary as a standalone HTML page.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("record.html.tmpl").
		Funcs(template.FuncMap{
			"date": func(t time.Time) string { return t.UTC().Format("02 Jan 2006 15:04 MST") },
		}).
		ParseFS(templates, "templates/record.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse record template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (h *HTMLRenderer) Render(r *models.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("render record %d: %w", r.ID, err)
	}
	return buf.Bytes(), nil
}

func (h *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (h *HTMLRenderer) Extension() string { return ".html" }

// FileName names the rendered document after the record's PDF file name,
// swapping the extension for ext.
func FileName(r *models.Record, ext string) string {
	stem := strings.TrimSuffix(r.PDFFileName, ".pdf")
	if stem == "" {
		stem = "record_" + strconv.FormatInt(r.ID, 10)
	}
	return stem + ext
}
