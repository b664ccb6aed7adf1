package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/cv-assistant/internal/models"
)

// DefaultExcerptLimit is how many characters of each CV reach the LLM. Text
// beyond it is dropped without telling the caller.
const DefaultExcerptLimit = 5000

type PromptBuilder struct {
	excerptLimit int
}

func NewPromptBuilder(excerptLimit int) *PromptBuilder {
	if excerptLimit <= 0 {
		excerptLimit = DefaultExcerptLimit
	}
	return &PromptBuilder{excerptLimit: excerptLimit}
}

// BuildCVRankingPrompt creates the composite prompt for stored CVs. CVs appear
// in the order given.
func (pb *PromptBuilder) BuildCVRankingPrompt(jobTitle string, criteria []string, cvs []models.CV) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an expert HR recruiter evaluating candidate CVs for a %s position.\n\n", jobTitle)

	sb.WriteString("JOB REQUIREMENTS:\n")
	for _, line := range criteria {
		fmt.Fprintf(&sb, "- %s\n", line)
	}

	sb.WriteString("\nCANDIDATE CVS:\n")
	for i, cv := range cvs {
		fmt.Fprintf(&sb, "\n--- CV %d: %s ---\n", i+1, cv.Filename)
		sb.WriteString(Excerpt(cv.Text, pb.excerptLimit))
		sb.WriteString("\n")
	}

	sb.WriteString(`
For each CV, in the order given above, provide:
1. Strengths - how the candidate meets the requirements
2. Weaknesses - missing skills or gaps
3. Score - a match score from 1 to 10
4. Recommendation - one of: Strong Yes / Yes / Maybe / No

Finish with a ranking of all candidates from best to worst match. Refer to each candidate by file name.`)

	return sb.String()
}

// BuildAnalysisPrompt creates the prompt for CVs supplied inline with the
// request.
func (pb *PromptBuilder) BuildAnalysisPrompt(jobDescription string, criteria []string, cvs []models.CV) string {
	var sb strings.Builder

	sb.WriteString("You are a recruitment assistant ranking job applicants.\n\n")

	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(strings.TrimSpace(jobDescription))
	sb.WriteString("\n\n")

	if len(criteria) > 0 {
		sb.WriteString("RANKING CRITERIA:\n")
		for i, c := range criteria {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, c)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("CANDIDATES:\n")
	for i, cv := range cvs {
		fmt.Fprintf(&sb, "\n### Candidate %d (%s)\n", i+1, cv.Filename)
		sb.WriteString(Excerpt(cv.Text, pb.excerptLimit))
		sb.WriteString("\n")
	}

	sb.WriteString(`
Rank the candidates from most to least suitable. For each candidate give the file name, a score out of 10, the criteria they meet, the criteria they miss, and a one-sentence justification.`)

	return sb.String()
}

// Excerpt returns the first limit characters (runes) of text.
func Excerpt(text string, limit int) string {
	if limit <= 0 {
		return text
	}

	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}

// SplitRequirements turns newline separated requirements into criteria lines,
// dropping blank ones.
func SplitRequirements(requirements string) []string {
	var lines []string
	for _, line := range strings.Split(requirements, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
