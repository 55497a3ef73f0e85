package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient returns canned responses for prompt-level tests.
type stubClient struct {
	response string
	err      error
	calls    int
	lastReq  llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubClient) Close() error { return nil }

func TestTruncateMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		check   func(*testing.T, string)
	}{
		{
			name:    "short message unchanged",
			message: "Hi Dana, I enjoyed your talk!",
			check: func(t *testing.T, got string) {
				assert.Equal(t, "Hi Dana, I enjoyed your talk!", got)
			},
		},
		{
			name:    "exactly at limit unchanged",
			message: strings.Repeat("a", 300),
			check: func(t *testing.T, got string) {
				assert.Len(t, got, 300)
			},
		},
		{
			name:    "overlong cuts at sentence punctuation in window",
			message: strings.Repeat("a", 290) + ". " + strings.Repeat("b", 40),
			check: func(t *testing.T, got string) {
				assert.LessOrEqual(t, len([]rune(got)), 300)
				assert.True(t, strings.HasSuffix(got, "."))
				assert.Len(t, got, 291)
			},
		},
		{
			name:    "overlong without punctuation hard cuts at limit",
			message: strings.Repeat("a", 350),
			check: func(t *testing.T, got string) {
				assert.Len(t, got, 300)
			},
		},
		{
			name:    "punctuation outside window is ignored",
			message: strings.Repeat("a", 250) + "." + strings.Repeat("b", 100),
			check: func(t *testing.T, got string) {
				assert.Len(t, got, 300)
				assert.False(t, strings.HasSuffix(got, "."))
			},
		},
		{
			name:    "question mark accepted",
			message: strings.Repeat("a", 285) + "? " + strings.Repeat("b", 40),
			check: func(t *testing.T, got string) {
				assert.True(t, strings.HasSuffix(got, "?"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMessage(tt.message)
			assert.LessOrEqual(t, len([]rune(got)), MaxMessageLength)
			tt.check(t, got)
		})
	}
}

func TestBuildLinkedInPromptOmitsEmptyFields(t *testing.T) {
	_, user := BuildLinkedInPrompt(LinkedInInput{
		Type:       ConnectionRequest,
		TargetName: "Dana",
	}, "")

	assert.Contains(t, user, "Dana")
	assert.NotContains(t, user, "Their title:")
	assert.NotContains(t, user, "Their company:")
	assert.NotContains(t, user, "Their About section:")

	_, user = BuildLinkedInPrompt(LinkedInInput{
		Type:        ConnectionRequest,
		TargetName:  "Dana",
		TargetTitle: "Staff Engineer",
	}, "")
	assert.Contains(t, user, "Their title: Staff Engineer")
}

func TestBuildLinkedInPromptJobInquiry(t *testing.T) {
	system, user := BuildLinkedInPrompt(LinkedInInput{
		Type:           JobInquiry,
		TargetName:     "Sam",
		JobTitle:       "Senior Software Developer",
		CompanyName:    "Acme",
		JobDescription: "Build backend services in Go.",
	}, "")

	assert.Contains(t, system, "job inquiry")
	assert.Contains(t, user, "Job title I applied for: Senior Software Developer")
	assert.Contains(t, user, "Company name: Acme")
	assert.Contains(t, user, "already applied")
}

func TestBuildLinkedInPromptIncludesRAGContext(t *testing.T) {
	ragContext := "Here are some examples of previous successful connection requests:\n\nExample 1: Hi!\n\n"
	_, user := BuildLinkedInPrompt(LinkedInInput{Type: ConnectionRequest, TargetName: "Dana"}, ragContext)
	assert.Contains(t, user, "Example 1: Hi!")
}

func TestGenerateMessageEnforcesLimit(t *testing.T) {
	client := &stubClient{response: strings.Repeat("x", 285) + ". " + strings.Repeat("y", 60)}

	msg, err := GenerateMessage(context.Background(), client, LinkedInInput{
		Type:       ConnectionRequest,
		TargetName: "Dana",
	}, "")
	require.NoError(t, err)

	assert.LessOrEqual(t, msg.CharacterCount, MaxMessageLength)
	assert.Equal(t, len([]rune(msg.Text)), msg.CharacterCount)
	assert.True(t, strings.HasSuffix(msg.Text, "."))
	assert.Equal(t, 1, client.calls)
}
