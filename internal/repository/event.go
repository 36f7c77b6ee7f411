package repository

import (
	"context"
	"fmt"

	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/repository/dao"
)

var (
	ErrEventNotFound    = dao.ErrEventNotFound
	ErrInviteNotFound   = dao.ErrInviteNotFound
	ErrInviteCodeExists = dao.ErrInviteCodeExists
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindByParticipant(ctx context.Context, userID uint) ([]dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	UpdateGuide(ctx context.Context, eventID uint, guideMarkdown string) error
	UpdateWinner(ctx context.Context, eventID, projectID uint) error
	InsertInvite(ctx context.Context, invite dao.Invite) (dao.Invite, error)
	FindInviteByCode(ctx context.Context, code string) (dao.Invite, error)
	UpsertParticipant(ctx context.Context, participant dao.EventParticipant) error
	ParticipantExists(ctx context.Context, eventID, userID uint) (bool, error)
	FindParticipantsByEvent(ctx context.Context, eventID uint) ([]dao.EventParticipant, error)
	InsertAnnouncement(ctx context.Context, announcement dao.Announcement) (dao.Announcement, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Name:          event.Name,
		GuideMarkdown: event.GuideMarkdown,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.eventDaoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.eventDaoToDomain(found), nil
}

func (r *EventRepository) FindByParticipant(ctx context.Context, userID uint) ([]domain.Event, error) {
	found, err := r.dao.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, event := range found {
		events[i] = r.eventDaoToDomain(event)
	}

	return events, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, event := range found {
		events[i] = r.eventDaoToDomain(event)
	}

	return events, nil
}

func (r *EventRepository) UpdateGuide(ctx context.Context, eventID uint, guideMarkdown string) error {
	if err := r.dao.UpdateGuide(ctx, eventID, guideMarkdown); err != nil {
		return fmt.Errorf("r.dao.UpdateGuide -> %w", err)
	}

	return nil
}

func (r *EventRepository) UpdateWinner(ctx context.Context, eventID, projectID uint) error {
	if err := r.dao.UpdateWinner(ctx, eventID, projectID); err != nil {
		return fmt.Errorf("r.dao.UpdateWinner -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateInvite(ctx context.Context, invite domain.Invite) (domain.Invite, error) {
	created, err := r.dao.InsertInvite(ctx, dao.Invite{
		Code:        invite.Code,
		EventID:     invite.EventID,
		ExpiresAt:   invite.ExpiresAt,
		CreatedByID: invite.CreatedByID,
	})
	if err != nil {
		return domain.Invite{}, fmt.Errorf("r.dao.InsertInvite -> %w", err)
	}

	return r.inviteDaoToDomain(created), nil
}

func (r *EventRepository) FindInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	found, err := r.dao.FindInviteByCode(ctx, code)
	if err != nil {
		return domain.Invite{}, fmt.Errorf("r.dao.FindInviteByCode -> %w", err)
	}

	return r.inviteDaoToDomain(found), nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID uint) error {
	err := r.dao.UpsertParticipant(ctx, dao.EventParticipant{
		UserID:  userID,
		EventID: eventID,
	})
	if err != nil {
		return fmt.Errorf("r.dao.UpsertParticipant -> %w", err)
	}

	return nil
}

func (r *EventRepository) IsParticipant(ctx context.Context, eventID, userID uint) (bool, error) {
	exists, err := r.dao.ParticipantExists(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ParticipantExists -> %w", err)
	}

	return exists, nil
}

func (r *EventRepository) FindParticipants(ctx context.Context, eventID uint) ([]domain.User, error) {
	found, err := r.dao.FindParticipantsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipantsByEvent -> %w", err)
	}

	users := make([]domain.User, len(found))
	for i, participant := range found {
		users[i] = domain.User{
			ID:        participant.UserID,
			Email:     participant.User.Email,
			Name:      participant.User.Name,
			CreatedAt: participant.User.CreatedAt,
			UpdatedAt: participant.User.UpdatedAt,
		}
	}

	return users, nil
}

func (r *EventRepository) CreateAnnouncement(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error) {
	created, err := r.dao.InsertAnnouncement(ctx, dao.Announcement{
		EventID:     announcement.EventID,
		Title:       announcement.Title,
		Content:     announcement.Content,
		CreatedByID: announcement.CreatedByID,
	})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.InsertAnnouncement -> %w", err)
	}

	return domain.Announcement{
		ID:          created.ID,
		EventID:     created.EventID,
		Title:       created.Title,
		Content:     created.Content,
		CreatedByID: created.CreatedByID,
		CreatedAt:   created.CreatedAt,
	}, nil
}

func (r *EventRepository) eventDaoToDomain(e dao.Event) domain.Event {
	participants := make([]domain.User, len(e.Participants))
	for i, participant := range e.Participants {
		participants[i] = domain.User{
			ID:        participant.UserID,
			Email:     participant.User.Email,
			Name:      participant.User.Name,
			CreatedAt: participant.User.CreatedAt,
			UpdatedAt: participant.User.UpdatedAt,
		}
	}

	projects := make([]domain.Project, len(e.Projects))
	for i, project := range e.Projects {
		projects[i] = projectDaoToDomain(project)
	}

	announcements := make([]domain.Announcement, len(e.Announcements))
	for i, announcement := range e.Announcements {
		announcements[i] = domain.Announcement{
			ID:          announcement.ID,
			EventID:     announcement.EventID,
			Title:       announcement.Title,
			Content:     announcement.Content,
			CreatedByID: announcement.CreatedByID,
			CreatedAt:   announcement.CreatedAt,
		}
	}

	invites := make([]domain.Invite, len(e.Invites))
	for i, invite := range e.Invites {
		invites[i] = r.inviteDaoToDomain(invite)
	}

	return domain.Event{
		ID:               e.ID,
		Name:             e.Name,
		GuideMarkdown:    e.GuideMarkdown,
		WinningProjectID: e.WinningProjectID,
		Participants:     participants,
		Projects:         projects,
		Announcements:    announcements,
		Invites:          invites,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (r *EventRepository) inviteDaoToDomain(i dao.Invite) domain.Invite {
	return domain.Invite{
		ID:          i.ID,
		Code:        i.Code,
		EventID:     i.EventID,
		ExpiresAt:   i.ExpiresAt,
		CreatedByID: i.CreatedByID,
		CreatedAt:   i.CreatedAt,
	}
}
