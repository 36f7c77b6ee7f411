package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/pkg/invitecode"
	"github.com/hackathonspt/attendee-hq/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrInviteNotFound    = repository.ErrInviteNotFound
	ErrInviteCodeExists  = repository.ErrInviteCodeExists
	ErrProjectNotInEvent = errors.New("project is not part of the event")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindByParticipant(ctx context.Context, userID uint) ([]domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	UpdateGuide(ctx context.Context, eventID uint, guideMarkdown string) error
	UpdateWinner(ctx context.Context, eventID, projectID uint) error
	CreateInvite(ctx context.Context, invite domain.Invite) (domain.Invite, error)
	FindInviteByCode(ctx context.Context, code string) (domain.Invite, error)
	AddParticipant(ctx context.Context, eventID, userID uint) error
	IsParticipant(ctx context.Context, eventID, userID uint) (bool, error)
	CreateAnnouncement(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error)
}

type WinnerProjectRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Project, error)
}

type EventService struct {
	repo     EventRepository
	projects WinnerProjectRepository
}

func NewEventService(repo EventRepository, projects WinnerProjectRepository) *EventService {
	return &EventService{
		repo:     repo,
		projects: projects,
	}
}

// LinkEvent redeems an invite code for the user and returns the joined
// event. Redeeming the same code twice is a no-op success.
//
// TODO: reject codes past expires_at once expiry enforcement is decided.
func (s *EventService) LinkEvent(ctx context.Context, code string, userID uint) (domain.Event, error) {
	invite, err := s.repo.FindInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrInviteNotFound) {
			return domain.Event{}, ErrInviteNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindInviteByCode -> %w", err)
	}

	if err = s.repo.AddParticipant(ctx, invite.EventID, userID); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.AddParticipant -> %w", err)
	}

	event, err := s.repo.FindByID(ctx, invite.EventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetJoinedEvents(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := s.repo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByParticipant -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetAllEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) IsParticipant(ctx context.Context, eventID, userID uint) (bool, error) {
	joined, err := s.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.IsParticipant -> %w", err)
	}

	return joined, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GenerateInvite creates a fresh invite code for the event. The code
// suffix is random without a collision retry; a collision surfaces as
// ErrInviteCodeExists from the store's unique constraint.
func (s *EventService) GenerateInvite(ctx context.Context, eventID uint, expiresAt *time.Time, createdByID uint) (domain.Invite, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Invite{}, ErrEventNotFound
		}

		return domain.Invite{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	code, err := invitecode.Generate()
	if err != nil {
		return domain.Invite{}, fmt.Errorf("invitecode.Generate -> %w", err)
	}

	invite, err := s.repo.CreateInvite(ctx, domain.Invite{
		Code:        code,
		EventID:     eventID,
		ExpiresAt:   expiresAt,
		CreatedByID: createdByID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInviteCodeExists) {
			return domain.Invite{}, ErrInviteCodeExists
		}

		return domain.Invite{}, fmt.Errorf("s.repo.CreateInvite -> %w", err)
	}

	return invite, nil
}

func (s *EventService) UpdateGuide(ctx context.Context, eventID uint, guideMarkdown string) error {
	if err := s.repo.UpdateGuide(ctx, eventID, guideMarkdown); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.UpdateGuide -> %w", err)
	}

	return nil
}

// PublishAnnouncement creates an announcement for the event. There is
// no update path; announcements are immutable once published.
func (s *EventService) PublishAnnouncement(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error) {
	if _, err := s.repo.FindByID(ctx, announcement.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Announcement{}, ErrEventNotFound
		}

		return domain.Announcement{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.CreateAnnouncement(ctx, announcement)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.CreateAnnouncement -> %w", err)
	}

	return created, nil
}

// DeclareWinner sets the event's winning project after checking the
// project actually belongs to the event. Calling it again overwrites
// the previous winner; last write wins.
func (s *EventService) DeclareWinner(ctx context.Context, eventID, projectID uint) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotInEvent
		}

		return fmt.Errorf("s.projects.FindByID -> %w", err)
	}

	if project.EventID != eventID {
		return ErrProjectNotInEvent
	}

	if err = s.repo.UpdateWinner(ctx, eventID, projectID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.UpdateWinner -> %w", err)
	}

	return nil
}
