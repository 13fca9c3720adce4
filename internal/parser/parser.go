package parser

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tmc/langchaingo/llms"

	"github.com/fewie27/ultimate/internal/llmservice"
)

// ExtractionError is a typed extraction failure. It is returned instead of
// smuggling error text into the document content, so callers can tell
// "the document says this" apart from "extraction failed".
type ExtractionError struct {
	Format string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extracting %s: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("extracting %s: %s", e.Format, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

// Extractor converts raw document bytes into a single normalized text blob.
// Paragraph boundaries are a single newline; no other structural markers are
// introduced.
type Extractor struct {
	vision  llms.Model
	timeout time.Duration
}

// NewExtractor creates an extractor. The vision model is used for OCR on
// image uploads and may be nil, in which case images fail with a typed error.
func NewExtractor(vision llms.Model, timeout time.Duration) *Extractor {
	return &Extractor{vision: vision, timeout: timeout}
}

// Extract dispatches on the file extension of nameHint.
func (p *Extractor) Extract(ctx context.Context, data []byte, nameHint string) (string, error) {
	ext := strings.ToLower(filepath.Ext(nameHint))
	switch {
	case ext == ".pdf":
		return extractPDF(data)
	case ext == ".docx" || ext == ".doc":
		return extractDOCX(data)
	default:
		if mime, ok := imageMIMETypes[ext]; ok {
			return p.extractImage(ctx, mime, data)
		}
		return extractText(data)
	}
}

// extractPDF pulls text page by page and re-joins lines belonging to the
// same paragraph. Raw page extraction breaks lines at the page's visual
// width, which would otherwise corrupt sentence segmentation.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Reason: "unreadable document", Err: err}
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Format: "pdf", Reason: fmt.Sprintf("page %d", i), Err: err}
		}
		text.WriteString(reconstructParagraphs(pageText))
	}
	return text.String(), nil
}

// reconstructParagraphs joins runs of non-blank lines into one paragraph,
// emitting a line break only at a blank-line boundary or end of page.
func reconstructParagraphs(pageText string) string {
	var out strings.Builder
	var paragraph strings.Builder
	flush := func() {
		if paragraph.Len() > 0 {
			out.WriteString(strings.TrimSpace(paragraph.String()))
			out.WriteString("\n")
			paragraph.Reset()
		}
	}
	for _, line := range strings.Split(pageText, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			flush()
			continue
		}
		paragraph.WriteString(stripped)
		paragraph.WriteString(" ")
	}
	flush()
	return out.String()
}

var (
	docxParagraphRe = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*)?/>|<w:p(?:\s[^>]*)?>.*?</w:p>`)
	docxRunRe       = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
)

// extractDOCX emits one output line per structural paragraph; an empty
// paragraph becomes a single blank line so the segmenter keeps paragraph
// boundaries.
func extractDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Reason: "unreadable document", Err: err}
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return docxContentToText(content), nil
}

func docxContentToText(content string) string {
	var text strings.Builder
	for _, para := range docxParagraphRe.FindAllString(content, -1) {
		runs := docxRunRe.FindAllStringSubmatch(para, -1)
		var line strings.Builder
		for _, run := range runs {
			line.WriteString(unescapeXML(run[1]))
		}
		text.WriteString(strings.TrimSpace(line.String()))
		text.WriteString("\n")
	}
	return text.String()
}

func unescapeXML(s string) string {
	r := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
	return r.Replace(s)
}

// extractImage runs OCR through the vision model. No paragraph
// reconstruction is performed; OCR paragraph fidelity is out of our control.
func (p *Extractor) extractImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	if p.vision == nil {
		return "", &ExtractionError{Format: "image", Reason: "no vision model configured"}
	}
	text, err := llmservice.OCR(ctx, p.vision, p.timeout, mimeType, data)
	if err != nil {
		return "", &ExtractionError{Format: "image", Reason: "ocr failed", Err: err}
	}
	return normalizeNewlines(text), nil
}

// extractText reads the bytes as UTF-8 text verbatim.
func extractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ExtractionError{Format: "text", Reason: "not valid UTF-8"}
	}
	return normalizeNewlines(string(data)), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
