package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/prompts"
)

// FollowUpPrefix is the sentinel the model uses to signal it needs more
// context before writing the letter.
const FollowUpPrefix = "FOLLOW-UP:"

// fallbackQuestions is returned verbatim whenever a sentinel payload fails
// to parse. The parse error is never propagated to the caller.
var fallbackQuestions = []string{
	"What draws you to this company or role personally?",
	"Are there any projects from your resume you'd like to emphasize more?",
	"What tone do you prefer — professional, friendly, or passionate?",
	"Are there any achievements or skills you'd like highlighted more?",
}

// FallbackQuestions returns a copy of the fixed follow-up question list.
func FallbackQuestions() []string {
	out := make([]string, len(fallbackQuestions))
	copy(out, fallbackQuestions)
	return out
}

// CoverLetterInput carries the structured fields for a cover letter prompt.
type CoverLetterInput struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
	CompanyName    string

	// Optional context, omitted from the prompt when empty
	Tone                  string
	PersonalNote          string
	PortfolioURL          string
	EmphasizedSkills      []string
	EmphasizedProjects    []string
	EmphasizedExperiences []string

	// Answers to earlier follow-up questions; when set the final letter is
	// generated directly
	FollowUpAnswers string
}

// InitialResult is the outcome of the sentinel-protocol first call: either
// follow-up questions or the finished letter, never both.
type InitialResult struct {
	FollowUpNeeded bool     `json:"follow_up_needed"`
	Questions      []string `json:"questions,omitempty"`
	CoverLetter    string   `json:"cover_letter,omitempty"`
}

// BuildInitialPrompt assembles the first-call prompt. The model is asked to
// either write the letter or reply with the sentinel plus questions.
func BuildInitialPrompt(in CoverLetterInput, ragContext string) (system, user string) {
	system = prompts.MustGet("generation.json", "cover-letter-system")

	var sb strings.Builder
	sb.WriteString(prompts.MustGet("generation.json", "cover-letter-initial-instructions"))
	sb.WriteString("\n\n")
	writeCoverLetterFields(&sb, in)
	if ragContext != "" {
		sb.WriteString(ragContext)
	}
	return system, sb.String()
}

// BuildFinalPrompt assembles the prompt for the final letter, including the
// applicant's follow-up answers.
func BuildFinalPrompt(in CoverLetterInput, ragContext string) (system, user string) {
	system = prompts.MustGet("generation.json", "cover-letter-final-system")

	var sb strings.Builder
	sb.WriteString("Write a personalized, engaging cover letter (max 1 page) using the following information:\n\n")
	writeCoverLetterFields(&sb, in)
	if in.FollowUpAnswers != "" {
		sb.WriteString(fmt.Sprintf("Additional context (follow-up answers):\n%s\n\n", in.FollowUpAnswers))
	}
	if ragContext != "" {
		sb.WriteString(ragContext)
		sb.WriteString("\n")
	}
	sb.WriteString(prompts.MustGet("generation.json", "cover-letter-final-requirements"))
	return system, sb.String()
}

func writeCoverLetterFields(sb *strings.Builder, in CoverLetterInput) {
	sb.WriteString(fmt.Sprintf("Resume:\n%s\n\n", in.ResumeText))
	sb.WriteString(fmt.Sprintf("Job Description:\n%s\n\n", in.JobDescription))

	if in.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Job title: %s\n", in.JobTitle))
	}
	if in.CompanyName != "" {
		sb.WriteString(fmt.Sprintf("Company name: %s\n", in.CompanyName))
	}
	if in.Tone != "" {
		sb.WriteString(fmt.Sprintf("Tone: %s\n", in.Tone))
	}
	if len(in.EmphasizedProjects) > 0 {
		sb.WriteString(fmt.Sprintf("Projects to emphasize: %s\n", strings.Join(in.EmphasizedProjects, ", ")))
	}
	if len(in.EmphasizedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills to emphasize: %s\n", strings.Join(in.EmphasizedSkills, ", ")))
	}
	if len(in.EmphasizedExperiences) > 0 {
		sb.WriteString(fmt.Sprintf("Experiences to emphasize: %s\n", strings.Join(in.EmphasizedExperiences, ", ")))
	}
	if in.PersonalNote != "" {
		sb.WriteString(fmt.Sprintf("Additional context from the applicant: %s\n", in.PersonalNote))
	}
	if in.PortfolioURL != "" {
		sb.WriteString(fmt.Sprintf("Portfolio URL to include: %s\n", in.PortfolioURL))
	}
	sb.WriteString("\n")
}

// ParseInitialResponse negotiates the sentinel protocol. Output starting
// with the sentinel is parsed as a JSON array of questions; any parse
// failure (or an implausible question count) falls back to the fixed
// question list. Output without the sentinel is the finished letter.
func ParseInitialResponse(output string) *InitialResult {
	output = strings.TrimSpace(output)

	if !strings.HasPrefix(output, FollowUpPrefix) {
		return &InitialResult{FollowUpNeeded: false, CoverLetter: output}
	}

	payload := strings.TrimSpace(strings.TrimPrefix(output, FollowUpPrefix))
	var questions []string
	if err := json.Unmarshal([]byte(payload), &questions); err != nil || len(questions) < 2 || len(questions) > 4 {
		return &InitialResult{FollowUpNeeded: true, Questions: FallbackQuestions()}
	}
	return &InitialResult{FollowUpNeeded: true, Questions: questions}
}

// GenerateInitial performs the first cover-letter call.
func GenerateInitial(ctx context.Context, client llm.Client, in CoverLetterInput, ragContext string) (*InitialResult, error) {
	system, user := BuildInitialPrompt(in, ragContext)

	raw, err := client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	return ParseInitialResponse(raw), nil
}

// GenerateFinal writes the final letter using the follow-up answers.
func GenerateFinal(ctx context.Context, client llm.Client, in CoverLetterInput, ragContext string) (string, error) {
	system, user := BuildFinalPrompt(in, ragContext)

	raw, err := client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
