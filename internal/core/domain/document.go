package domain

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

var supportedFormats = []Format{FormatPDF, FormatDOC, FormatDOCX, FormatTXT}

// ParseFormat accepts "pdf", ".PDF" or a filename such as "cv.pdf".
func ParseFormat(value string) (Format, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if ext := filepath.Ext(v); ext != "" {
		v = ext
	}
	v = strings.TrimPrefix(v, ".")
	for _, f := range supportedFormats {
		if string(f) == v {
			return f, true
		}
	}
	return Format(v), false
}

func SupportedFormats() []Format {
	out := make([]Format, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

// Document is an uploaded file. It is read by the extractor once and never mutated.
type Document struct {
	Filename string
	Format   Format
	Data     []byte
}

func NewDocument(filename string, data []byte) Document {
	format, _ := ParseFormat(filename)
	return Document{
		Filename: filename,
		Format:   format,
		Data:     data,
	}
}

type ExtractedText struct {
	Text      string `json:"-"`
	PageCount int    `json:"page_count"`
	Strategy  string `json:"strategy"`
}
