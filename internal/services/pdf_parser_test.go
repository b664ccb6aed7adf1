package services

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-assistant/internal/testutil"
)

func newTestParser(t *testing.T) (PDFParserService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewPDFParserService(NewStorageService(dir)), dir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch files must be removed")
}

func TestExtractTextConcatenatesPagesInOrder(t *testing.T) {
	parser, dir := newTestParser(t)

	text, err := parser.ExtractText(testutil.BuildPDF("Hello", "", "World"))
	require.NoError(t, err)

	hello := strings.Index(text, "Hello")
	world := strings.Index(text, "World")
	require.NotEqual(t, -1, hello)
	require.NotEqual(t, -1, world)
	assert.Less(t, hello, world)
	assertDirEmpty(t, dir)
}

func TestExtractTextWithoutTextIsNotAnError(t *testing.T) {
	parser, dir := newTestParser(t)

	text, err := parser.ExtractText(testutil.BuildPDF(""))
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(text))
	assertDirEmpty(t, dir)
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	parser, dir := newTestParser(t)

	_, err := parser.ExtractText([]byte("this is definitely not a PDF document"))
	require.Error(t, err)

	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
	assertDirEmpty(t, dir)
}

func TestExtractTextCorruptedHeader(t *testing.T) {
	parser, dir := newTestParser(t)

	data := testutil.BuildPDF("Hello")
	copy(data, "%XYZ")

	_, err := parser.ExtractText(data)
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
	assertDirEmpty(t, dir)
}

func TestExtractFileWithMetaData(t *testing.T) {
	parser, dir := newTestParser(t)
	path := dir + "/two.pdf"
	require.NoError(t, os.WriteFile(path, testutil.BuildPDF("One", "Two"), 0600))

	content, err := parser.ExtractFileWithMetaData(path)
	require.NoError(t, err)
	assert.Equal(t, 2, content.PageCount)
	assert.Contains(t, content.Text, "One")
	assert.Contains(t, content.Text, "Two")
}

func TestExtractFileMissing(t *testing.T) {
	parser, dir := newTestParser(t)

	_, err := parser.ExtractFile(dir + "/missing.pdf")
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}
