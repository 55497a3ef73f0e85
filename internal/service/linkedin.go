package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/atharvakapadnis/JobCraftAI/internal/db"
	"github.com/atharvakapadnis/JobCraftAI/internal/generate"
	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
)

// linkedinExamples is how many prior messages are retrieved as context.
const linkedinExamples = 3

// LinkedInRequest carries the user-supplied message parameters.
type LinkedInRequest struct {
	MessageType   string
	TargetName    string
	TargetTitle   string
	TargetCompany string
	AboutSection  string
}

// LinkedInService generates and persists LinkedIn outreach messages.
// Connection requests and job inquiries draw context from separate
// collections.
type LinkedInService struct {
	store       Store
	llm         llm.Client
	connections Examples
	inquiries   Examples
}

// NewLinkedInService wires the LinkedIn message generation flow.
func NewLinkedInService(store Store, client llm.Client, connections, inquiries Examples) *LinkedInService {
	return &LinkedInService{store: store, llm: client, connections: connections, inquiries: inquiries}
}

// Generate produces a length-capped message for the application and persists
// it.
func (s *LinkedInService) Generate(ctx context.Context, userID, applicationID uuid.UUID, req LinkedInRequest) (*db.LinkedInMessage, error) {
	app, err := s.store.GetApplication(ctx, userID, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &NotFoundError{Resource: "job application", ID: applicationID.String()}
	}

	ragContext := s.retrieveContext(ctx, app, req)

	input := generate.LinkedInInput{
		Type:          generate.MessageType(req.MessageType),
		TargetName:    req.TargetName,
		TargetTitle:   req.TargetTitle,
		TargetCompany: req.TargetCompany,
		AboutSection:  req.AboutSection,
	}
	if req.MessageType == db.MessageJobInquiry {
		input.JobTitle = app.JobTitle
		input.CompanyName = app.CompanyName
		input.JobDescription = app.JobDescription
	}

	msg, err := generate.GenerateMessage(ctx, s.llm, input, ragContext)
	if err != nil {
		return nil, err
	}

	record := &db.LinkedInMessage{
		JobApplicationID: app.ID,
		TargetName:       req.TargetName,
		MessageType:      req.MessageType,
		GeneratedMessage: msg.Text,
		CharacterCount:   msg.CharacterCount,
	}
	if req.TargetTitle != "" {
		record.TargetTitle = &req.TargetTitle
	}
	if req.TargetCompany != "" {
		record.TargetCompany = &req.TargetCompany
	}
	if req.AboutSection != "" {
		record.AboutSection = &req.AboutSection
	}

	created, err := s.store.CreateLinkedInMessage(ctx, record)
	if err != nil {
		return nil, err
	}

	addExample(ctx, s.collectionFor(req.MessageType), msg.Text, map[string]string{
		"message_id":         created.ID.String(),
		"job_application_id": app.ID.String(),
		"message_type":       req.MessageType,
		"target_company":     req.TargetCompany,
	})

	return created, nil
}

// MarkSent flips the is_sent flag on a persisted message. Only messages on
// the user's own applications are visible; anything else reports not found.
// The flag can be cleared as well as set so a mistaken mark can be undone.
func (s *LinkedInService) MarkSent(ctx context.Context, userID, id uuid.UUID, isSent bool) (*db.LinkedInMessage, error) {
	msg, err := s.store.SetLinkedInMessageSent(ctx, userID, id, isSent)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, &NotFoundError{Resource: "linkedin message", ID: id.String()}
	}
	return msg, nil
}

// retrieveContext fetches prior messages of the same type. Connection
// requests are additionally filtered to the same target company when known.
func (s *LinkedInService) retrieveContext(ctx context.Context, app *db.JobApplication, req LinkedInRequest) string {
	query := ragQuery(app)
	var filter map[string]string

	intro := "Here are some examples of previous successful job inquiry messages:"
	if req.MessageType == db.MessageConnectionRequest {
		intro = "Here are some examples of previous successful connection requests:"
		query = fmt.Sprintf("%s %s %s", req.TargetName, req.TargetTitle, req.TargetCompany)
		if req.TargetCompany != "" {
			filter = map[string]string{"target_company": req.TargetCompany}
		}
	}

	examples, err := s.collectionFor(req.MessageType).Retrieve(ctx, query, linkedinExamples, filter)
	if err != nil {
		return ""
	}
	return generate.RenderContext(intro, examples)
}

func (s *LinkedInService) collectionFor(messageType string) Examples {
	if messageType == db.MessageJobInquiry {
		return s.inquiries
	}
	return s.connections
}
