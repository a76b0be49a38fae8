// Package document reads resumes, job descriptions and reference files from
// disk as plain text.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned for files that hold no extractable text.
var ErrNoText = errors.New("no text content found")

// Content is the text of a loaded file.
type Content struct {
	Text      string
	PageCount int
	FilePath  string
}

// Load reads path as text. Files ending in .pdf go through the PDF text
// extractor; anything else is read as UTF-8.
func Load(path string) (*Content, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text := CleanText(string(data))
	if text == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoText)
	}

	return &Content{Text: text, PageCount: 1, FilePath: path}, nil
}

// LoadText is Load for callers that only need the text. An empty path yields
// an empty string.
func LoadText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	c, err := Load(path)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

func loadPDF(path string) (*Content, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages the extractor cannot decode.
			continue
		}

		b.WriteString(text)
		b.WriteString("\n\n")
	}

	text := CleanText(b.String())
	if text == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoText)
	}

	return &Content{Text: text, PageCount: total, FilePath: path}, nil
}

// CleanText trims every line and collapses runs of blank lines into one, so
// paragraph breaks survive for the chunker.
func CleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
