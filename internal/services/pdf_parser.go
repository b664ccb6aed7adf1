package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractFile(filePath string) (string, error)
	ExtractFileWithMetaData(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct {
	storage StorageService
}

func NewPDFParserService(storage StorageService) PDFParserService {
	return &pdfParserService{storage: storage}
}

// ExtractText spools data to a scratch file, extracts it and removes the file
// on every path out.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	filePath, release, err := p.storage.Spool(data)
	defer release()
	if err != nil {
		return "", fmt.Errorf("failed to stage PDF: %w", err)
	}

	return p.ExtractFile(filePath)
}

func (p *pdfParserService) ExtractFile(filePath string) (string, error) {
	content, err := p.ExtractFileWithMetaData(filePath)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractFileWithMetaData concatenates the text of every page in order. Pages
// that yield no text contribute an empty string; only an unreadable document
// is an error.
func (p *pdfParserService) ExtractFileWithMetaData(filePath string) (content *PDFContent, err error) {
	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		return nil, &ExtractionError{Err: fmt.Errorf("file does not exist: %s", filePath)}
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &ExtractionError{Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		textBuilder.WriteString(pageText(r.Page(pageIndex)))
	}

	return &PDFContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
