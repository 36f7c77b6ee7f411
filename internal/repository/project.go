package repository

import (
	"context"
	"fmt"

	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/repository/dao"
)

var (
	ErrProjectNotFound = dao.ErrProjectNotFound
)

type ProjectDAO interface {
	Insert(ctx context.Context, project dao.Project) (dao.Project, error)
	FindByID(ctx context.Context, id uint) (dao.Project, error)
	UpsertVote(ctx context.Context, vote dao.Vote) error
	FindVotesByVoter(ctx context.Context, voterID uint) ([]dao.Vote, error)
}

type ProjectRepository struct {
	dao ProjectDAO
}

func NewProjectRepository(dao ProjectDAO) *ProjectRepository {
	return &ProjectRepository{
		dao: dao,
	}
}

// Create persists the project together with one participant row per
// listed user id, as a single compound write.
func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	participants := make([]dao.ProjectParticipant, len(project.ParticipantIDs))
	for i, userID := range project.ParticipantIDs {
		participants[i] = dao.ProjectParticipant{UserID: userID}
	}

	created, err := r.dao.Insert(ctx, dao.Project{
		EventID:      project.EventID,
		Name:         project.Name,
		GithubURL:    project.GithubURL,
		PlayableURL:  project.PlayableURL,
		CreatedByID:  project.CreatedByID,
		Participants: participants,
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return projectDaoToDomain(created), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (domain.Project, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return projectDaoToDomain(found), nil
}

func (r *ProjectRepository) CastVote(ctx context.Context, vote domain.Vote) error {
	err := r.dao.UpsertVote(ctx, dao.Vote{
		EventID:   vote.EventID,
		VoterID:   vote.VoterID,
		ProjectID: vote.ProjectID,
	})
	if err != nil {
		return fmt.Errorf("r.dao.UpsertVote -> %w", err)
	}

	return nil
}

func (r *ProjectRepository) FindVotesByVoter(ctx context.Context, voterID uint) ([]domain.Vote, error) {
	found, err := r.dao.FindVotesByVoter(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindVotesByVoter -> %w", err)
	}

	votes := make([]domain.Vote, len(found))
	for i, vote := range found {
		votes[i] = domain.Vote{
			EventID:   vote.EventID,
			VoterID:   vote.VoterID,
			ProjectID: vote.ProjectID,
			CreatedAt: vote.CreatedAt,
			UpdatedAt: vote.UpdatedAt,
		}
	}

	return votes, nil
}

func projectDaoToDomain(p dao.Project) domain.Project {
	participantIDs := make([]uint, len(p.Participants))
	for i, participant := range p.Participants {
		participantIDs[i] = participant.UserID
	}

	return domain.Project{
		ID:             p.ID,
		EventID:        p.EventID,
		Name:           p.Name,
		GithubURL:      p.GithubURL,
		PlayableURL:    p.PlayableURL,
		CreatedByID:    p.CreatedByID,
		ParticipantIDs: participantIDs,
		VoteCount:      len(p.Votes),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
