package services

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-assistant/internal/models"
	"alfredoptarigan/cv-assistant/internal/repositories"
	"alfredoptarigan/cv-assistant/internal/testutil"
)

func newTestEvaluator(t *testing.T, llm TextCompleter) (EvaluatorService, repositories.SessionRepository) {
	t.Helper()
	repo := repositories.NewSessionRepository()
	parser := NewPDFParserService(NewStorageService(t.TempDir()))
	return NewEvaluatorService(repo, llm, parser, DefaultExcerptLimit, nil), repo
}

func TestEvaluateWithoutCVs(t *testing.T) {
	llm := &testutil.FakeCompleter{Reply: "unused"}
	evaluator, _ := newTestEvaluator(t, llm)

	_, err := evaluator.Evaluate(context.Background(), nil, "Backend Engineer", []string{"Go"})
	assert.ErrorIs(t, err, ErrNoCVs)

	_, err = evaluator.EvaluateStored(context.Background(), "nobody", "Backend Engineer", "Go")
	assert.ErrorIs(t, err, ErrNoCVs)

	assert.Empty(t, llm.Prompts, "no upstream call without CVs")
}

func TestEvaluateStoredRoundTrip(t *testing.T) {
	llm := &testutil.FakeCompleter{Reply: "Alice: 9/10, Strong Yes"}
	evaluator, repo := newTestEvaluator(t, llm)
	repo.AddCV("u1", "alice.pdf", "Python, 5 years experience")

	evaluation, err := evaluator.EvaluateStored(context.Background(), "u1", "Backend Engineer", "Python required")
	require.NoError(t, err)
	assert.Equal(t, "Alice: 9/10, Strong Yes", evaluation)

	require.Len(t, llm.Prompts, 1)
	prompt := llm.Prompts[0]
	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Python required")
	assert.Contains(t, prompt, "alice.pdf")
	assert.Contains(t, prompt, "Python, 5 years experience")
}

func TestEvaluateSingleCallInUploadOrder(t *testing.T) {
	llm := &testutil.FakeCompleter{Reply: "ranked"}
	evaluator, repo := newTestEvaluator(t, llm)
	repo.AddCV("u1", "alice.pdf", "alice text")
	repo.AddCV("u1", "bob.pdf", "bob text")
	repo.AddCV("u1", "carol.pdf", "carol text")

	_, err := evaluator.EvaluateStored(context.Background(), "u1", "Data Engineer", "SQL\n\n  Spark  \r\nAirflow")
	require.NoError(t, err)

	require.Len(t, llm.Prompts, 1)
	prompt := llm.Prompts[0]

	alice := strings.Index(prompt, "alice.pdf")
	bob := strings.Index(prompt, "bob.pdf")
	carol := strings.Index(prompt, "carol.pdf")
	assert.True(t, alice < bob && bob < carol, "CVs keep upload order")

	assert.Contains(t, prompt, "- SQL\n- Spark\n- Airflow\n")
}

// CV text beyond 5000 characters is dropped from the prompt and the caller is
// not told. This bound is intentional.
func TestEvaluateTruncatesCVTextAt5000Characters(t *testing.T) {
	llm := &testutil.FakeCompleter{Reply: "ok"}
	evaluator, _ := newTestEvaluator(t, llm)

	kept := strings.Repeat("é", 5000)
	cv := models.CV{Filename: "long.pdf", Text: kept + "TAIL_MARKER"}

	out, err := evaluator.Evaluate(context.Background(), []models.CV{cv}, "QA", []string{"testing"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	prompt := llm.Prompts[0]
	assert.Contains(t, prompt, kept)
	assert.NotContains(t, prompt, "TAIL_MARKER")
	assert.NotContains(t, prompt, kept+"é")
}

func TestEvaluatePropagatesUpstreamError(t *testing.T) {
	llm := &testutil.FakeCompleter{Err: &UpstreamError{Detail: "unavailable"}}
	evaluator, repo := newTestEvaluator(t, llm)
	repo.AddCV("u1", "alice.pdf", "text")

	_, err := evaluator.EvaluateStored(context.Background(), "u1", "QA", "testing")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Len(t, llm.Prompts, 1)
}

func TestAnalyzeDecodesInlineText(t *testing.T) {
	llm := &testutil.FakeCompleter{Reply: "1. bob.txt"}
	evaluator, repo := newTestEvaluator(t, llm)

	out, err := evaluator.Analyze(context.Background(), "Senior Go developer", []string{"Go", "Kubernetes"}, []models.InlineCV{
		{Filename: "alice.txt", Content: base64.StdEncoding.EncodeToString([]byte("Java developer")), FileType: "text/plain"},
		{Filename: "bob.txt", Content: base64.StdEncoding.EncodeToString([]byte("Go and Kubernetes")), FileType: "txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1. bob.txt", out)

	require.Len(t, llm.Prompts, 1)
	prompt := llm.Prompts[0]
	assert.Contains(t, prompt, "Senior Go developer")
	assert.Contains(t, prompt, "1. Go\n2. Kubernetes\n")
	assert.Contains(t, prompt, "Java developer")
	assert.Contains(t, prompt, "Go and Kubernetes")
	assert.Less(t, strings.Index(prompt, "alice.txt"), strings.Index(prompt, "bob.txt"))

	assert.Empty(t, repo.CVsFor(""), "analysis does not touch the session store")
}

func TestAnalyzeDecodesInlinePDF(t *testing.T) {
	llm := &testutil.FakeCompleter{Reply: "ok"}
	evaluator, _ := newTestEvaluator(t, llm)

	_, err := evaluator.Analyze(context.Background(), "Role", nil, []models.InlineCV{
		{Filename: "cv.pdf", Content: base64.StdEncoding.EncodeToString(testutil.BuildPDF("Hello")), FileType: "application/pdf"},
	})
	require.NoError(t, err)
	assert.Contains(t, llm.Prompts[0], "Hello")
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	llm := &testutil.FakeCompleter{Reply: "ok"}
	evaluator, _ := newTestEvaluator(t, llm)

	_, err := evaluator.Analyze(context.Background(), "Role", nil, nil)
	assert.ErrorIs(t, err, ErrNoCVs)

	_, err = evaluator.Analyze(context.Background(), "Role", nil, []models.InlineCV{
		{Filename: "bad.txt", Content: "***not base64***"},
	})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = evaluator.Analyze(context.Background(), "Role", nil, []models.InlineCV{
		{Filename: "bad.pdf", Content: base64.StdEncoding.EncodeToString([]byte("plain text")), FileType: "pdf"},
	})
	var extraction *ExtractionError
	assert.ErrorAs(t, err, &extraction)

	assert.Empty(t, llm.Prompts)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", Excerpt("abcdef", 3))
	assert.Equal(t, "abc", Excerpt("abc", 3))
	assert.Equal(t, "ab", Excerpt("ab", 3))
	assert.Equal(t, "日本", Excerpt("日本語", 2))
	assert.Equal(t, "", Excerpt("", 5))
}

func TestSplitRequirements(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, SplitRequirements("Go\r\n\n  SQL  \n"))
	assert.Empty(t, SplitRequirements("\n \n"))
}
