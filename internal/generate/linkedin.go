package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/prompts"
)

// MessageType selects the flavor of LinkedIn outreach.
type MessageType string

// Supported LinkedIn message types.
const (
	ConnectionRequest MessageType = "connection_request"
	JobInquiry        MessageType = "job_inquiry"
)

// LinkedIn enforces a hard character limit on connection messages.
const (
	MaxMessageLength = 300
	// When truncating, prefer to end at sentence punctuation found within
	// this many characters of the cut point.
	punctuationWindow = 20
)

// LinkedInInput carries the structured fields for a LinkedIn message prompt.
type LinkedInInput struct {
	Type          MessageType
	TargetName    string
	TargetTitle   string
	TargetCompany string
	AboutSection  string

	// Job inquiry context, taken from the owning job application
	JobTitle       string
	CompanyName    string
	JobDescription string
}

// Message is a generated, length-capped LinkedIn message.
type Message struct {
	Text           string `json:"text"`
	CharacterCount int    `json:"character_count"`
}

// BuildLinkedInPrompt assembles the system and user messages for a LinkedIn
// generation. Optional fields are omitted entirely when empty so the model
// never echoes placeholders.
func BuildLinkedInPrompt(in LinkedInInput, ragContext string) (system, user string) {
	var sb strings.Builder

	switch in.Type {
	case JobInquiry:
		system = prompts.MustGet("generation.json", "linkedin-inquiry-system")
		sb.WriteString(fmt.Sprintf("Write a short LinkedIn connection request to %s regarding a job application.\n\n", in.TargetName))
	default:
		system = prompts.MustGet("generation.json", "linkedin-connection-system")
		sb.WriteString(fmt.Sprintf("Write a personalized LinkedIn connection request to %s.\n\n", in.TargetName))
	}

	if in.TargetTitle != "" {
		sb.WriteString(fmt.Sprintf("Their title: %s\n", in.TargetTitle))
	}
	if in.TargetCompany != "" {
		sb.WriteString(fmt.Sprintf("Their company: %s\n", in.TargetCompany))
	}
	if in.AboutSection != "" {
		sb.WriteString(fmt.Sprintf("Their About section: %s\n", in.AboutSection))
	}
	if in.Type == JobInquiry {
		if in.JobTitle != "" {
			sb.WriteString(fmt.Sprintf("Job title I applied for: %s\n", in.JobTitle))
		}
		if in.CompanyName != "" {
			sb.WriteString(fmt.Sprintf("Company name: %s\n", in.CompanyName))
		}
		if in.JobDescription != "" {
			sb.WriteString(fmt.Sprintf("Job posting details: %s\n", in.JobDescription))
		}
	}
	sb.WriteString("\n")

	if in.Type == JobInquiry {
		sb.WriteString(prompts.MustGet("generation.json", "linkedin-inquiry-requirements"))
	} else {
		sb.WriteString(prompts.MustGet("generation.json", "linkedin-connection-requirements"))
	}

	if ragContext != "" {
		sb.WriteString("\n\n")
		sb.WriteString(ragContext)
	}

	return system, sb.String()
}

// GenerateMessage builds the prompt, performs the completion, and enforces
// the 300-character cap on the result.
func GenerateMessage(ctx context.Context, client llm.Client, in LinkedInInput, ragContext string) (*Message, error) {
	system, user := BuildLinkedInPrompt(in, ragContext)

	raw, err := client.Complete(ctx, llm.Request{
		System:          system,
		User:            user,
		Temperature:     0.7,
		MaxOutputTokens: 300,
	})
	if err != nil {
		return nil, err
	}

	text := TruncateMessage(strings.TrimSpace(raw))
	return &Message{
		Text:           text,
		CharacterCount: len([]rune(text)),
	}, nil
}

// TruncateMessage enforces the 300-character LinkedIn limit. Overlong
// messages are cut to the limit, right-trimmed, then shortened to the last
// sentence-ending punctuation found while scanning back through the final
// characters of the window; if none is found the hard cut stands.
func TruncateMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= MaxMessageLength {
		return message
	}

	runes = []rune(strings.TrimRight(string(runes[:MaxMessageLength]), " \t\n"))
	low := len(runes) - punctuationWindow
	if low < 0 {
		low = 0
	}
	for i := len(runes) - 1; i > low; i-- {
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			return string(runes[:i+1])
		}
	}
	return string(runes)
}
