package request

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type LinkEventRequest struct {
	Code string `json:"code"`
}

func (req *LinkEventRequest) Validate() error {
	req.Code = strings.TrimSpace(req.Code)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(4, 0)),
	)
}

type CreateEventRequest struct {
	Name          string `json:"name"`
	GuideMarkdown string `json:"guide_markdown"`
}

func (req *CreateEventRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(3, 0)),
	)
}

type GenerateInviteRequest struct {
	ExpiresAt string `json:"expires_at"`
}

func (req *GenerateInviteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ExpiresAt, validation.Date(time.RFC3339)),
	)
}

// ParsedExpiresAt returns the optional expiry, nil when absent.
// Validate must have passed first.
func (req *GenerateInviteRequest) ParsedExpiresAt() *time.Time {
	if strings.TrimSpace(req.ExpiresAt) == "" {
		return nil
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil
	}

	return &expiresAt
}

type PublishAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (req *PublishAnnouncementRequest) Validate() error {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 0)),
		validation.Field(&req.Content, validation.Required, validation.Length(3, 0)),
	)
}

type UpdateGuideRequest struct {
	GuideMarkdown string `json:"guide_markdown"`
}

func (req *UpdateGuideRequest) Validate() error {
	// The guide is optional free text; clearing it is allowed.
	return nil
}

type DeclareWinnerRequest struct {
	ProjectID uint `json:"project_id"`
}

func (req *DeclareWinnerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProjectID, validation.Required),
	)
}
