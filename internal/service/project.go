package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/repository"
)

var (
	ErrProjectNotFound     = repository.ErrProjectNotFound
	ErrNotEventParticipant = errors.New("user has not joined the event")
)

// ParticipantsNotLinkedError reports listed project members that are
// not participants of the event.
type ParticipantsNotLinkedError struct {
	UserIDs []uint
}

func (e *ParticipantsNotLinkedError) Error() string {
	ids := make([]string, len(e.UserIDs))
	for i, id := range e.UserIDs {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}

	return fmt.Sprintf("these participant ids are not linked to the event yet: %v", strings.Join(ids, ", "))
}

type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	FindByID(ctx context.Context, id uint) (domain.Project, error)
	CastVote(ctx context.Context, vote domain.Vote) error
	FindVotesByVoter(ctx context.Context, voterID uint) ([]domain.Vote, error)
}

type ProjectEventRepository interface {
	IsParticipant(ctx context.Context, eventID, userID uint) (bool, error)
	FindParticipants(ctx context.Context, eventID uint) ([]domain.User, error)
}

type ProjectService struct {
	repo   ProjectRepository
	events ProjectEventRepository
}

func NewProjectService(repo ProjectRepository, events ProjectEventRepository) *ProjectService {
	return &ProjectService{
		repo:   repo,
		events: events,
	}
}

// SubmitProject validates membership before writing anything: the
// submitter must have joined the event, and so must every listed
// participant id. The submitter is not added implicitly; their id has
// to be listed to be part of the project.
func (s *ProjectService) SubmitProject(ctx context.Context, project domain.Project) (domain.Project, error) {
	joined, err := s.events.IsParticipant(ctx, project.EventID, project.CreatedByID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.events.IsParticipant -> %w", err)
	}
	if !joined {
		return domain.Project{}, ErrNotEventParticipant
	}

	members, err := s.events.FindParticipants(ctx, project.EventID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.events.FindParticipants -> %w", err)
	}

	memberIDs := make(map[uint]struct{}, len(members))
	for _, member := range members {
		memberIDs[member.ID] = struct{}{}
	}

	var notLinked []uint
	for _, userID := range project.ParticipantIDs {
		if _, ok := memberIDs[userID]; !ok {
			notLinked = append(notLinked, userID)
		}
	}
	if len(notLinked) > 0 {
		return domain.Project{}, &ParticipantsNotLinkedError{UserIDs: notLinked}
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// CastVote records the voter's vote for the project. A voter holds at
// most one vote per event; voting again in the same event moves the
// vote to the new project.
func (s *ProjectService) CastVote(ctx context.Context, projectID, voterID uint) (domain.Project, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}

		return domain.Project{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	joined, err := s.events.IsParticipant(ctx, project.EventID, voterID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.events.IsParticipant -> %w", err)
	}
	if !joined {
		return domain.Project{}, ErrNotEventParticipant
	}

	err = s.repo.CastVote(ctx, domain.Vote{
		EventID:   project.EventID,
		VoterID:   voterID,
		ProjectID: project.ID,
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.CastVote -> %w", err)
	}

	return project, nil
}

func (s *ProjectService) GetVotesByVoter(ctx context.Context, voterID uint) ([]domain.Vote, error) {
	votes, err := s.repo.FindVotesByVoter(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindVotesByVoter -> %w", err)
	}

	return votes, nil
}
