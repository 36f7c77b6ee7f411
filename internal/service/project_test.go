package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/repository"
)

type voteKey struct {
	eventID uint
	voterID uint
}

type fakeProjectRepository struct {
	projects map[uint]domain.Project
	votes    map[voteKey]domain.Vote
	nextID   uint
}

func newFakeProjectRepository() *fakeProjectRepository {
	return &fakeProjectRepository{
		projects: make(map[uint]domain.Project),
		votes:    make(map[voteKey]domain.Vote),
		nextID:   1,
	}
}

func (f *fakeProjectRepository) Create(_ context.Context, project domain.Project) (domain.Project, error) {
	project.ID = f.nextID
	f.nextID++
	f.projects[project.ID] = project

	return project, nil
}

func (f *fakeProjectRepository) FindByID(_ context.Context, id uint) (domain.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return domain.Project{}, repository.ErrProjectNotFound
	}

	return project, nil
}

// CastVote mirrors the store's upsert on (event_id, voter_id).
func (f *fakeProjectRepository) CastVote(_ context.Context, vote domain.Vote) error {
	f.votes[voteKey{eventID: vote.EventID, voterID: vote.VoterID}] = vote

	return nil
}

func (f *fakeProjectRepository) FindVotesByVoter(_ context.Context, voterID uint) ([]domain.Vote, error) {
	var votes []domain.Vote
	for key, vote := range f.votes {
		if key.voterID == voterID {
			votes = append(votes, vote)
		}
	}

	return votes, nil
}

func setupProjectService(t *testing.T) (*ProjectService, *fakeProjectRepository, *fakeEventRepository) {
	t.Helper()

	repo := newFakeProjectRepository()
	events := newFakeEventRepository()

	return NewProjectService(repo, events), repo, events
}

func TestSubmitProject(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the project when everyone has joined", func(t *testing.T) {
		svc, _, events := setupProjectService(t)
		require.NoError(t, events.AddParticipant(ctx, 1, 10))
		require.NoError(t, events.AddParticipant(ctx, 1, 11))

		created, err := svc.SubmitProject(ctx, domain.Project{
			EventID:        1,
			Name:           "Pixel Pets",
			GithubURL:      "https://github.com/ten/pixel-pets",
			CreatedByID:    10,
			ParticipantIDs: []uint{10, 11},
		})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, []uint{10, 11}, created.ParticipantIDs)
	})

	t.Run("submitter outside the event is rejected", func(t *testing.T) {
		svc, repo, _ := setupProjectService(t)

		_, err := svc.SubmitProject(ctx, domain.Project{
			EventID:        1,
			Name:           "Pixel Pets",
			CreatedByID:    10,
			ParticipantIDs: []uint{10},
		})

		assert.ErrorIs(t, err, ErrNotEventParticipant)
		assert.Empty(t, repo.projects)
	})

	t.Run("one unlinked member blocks the whole submission", func(t *testing.T) {
		svc, repo, events := setupProjectService(t)
		require.NoError(t, events.AddParticipant(ctx, 1, 10))
		require.NoError(t, events.AddParticipant(ctx, 1, 11))

		_, err := svc.SubmitProject(ctx, domain.Project{
			EventID:        1,
			Name:           "Pixel Pets",
			CreatedByID:    10,
			ParticipantIDs: []uint{10, 11, 12, 13},
		})

		var notLinked *ParticipantsNotLinkedError
		require.ErrorAs(t, err, &notLinked)
		assert.ElementsMatch(t, []uint{12, 13}, notLinked.UserIDs)
		assert.Empty(t, repo.projects)
	})

	t.Run("the submitter is not added to the team implicitly", func(t *testing.T) {
		svc, _, events := setupProjectService(t)
		require.NoError(t, events.AddParticipant(ctx, 1, 10))
		require.NoError(t, events.AddParticipant(ctx, 1, 11))

		created, err := svc.SubmitProject(ctx, domain.Project{
			EventID:        1,
			Name:           "Solo-less",
			CreatedByID:    10,
			ParticipantIDs: []uint{11},
		})

		require.NoError(t, err)
		assert.Equal(t, []uint{11}, created.ParticipantIDs)
	})
}

func TestCastVote(t *testing.T) {
	ctx := context.Background()

	t.Run("records the vote for a joined voter", func(t *testing.T) {
		svc, repo, events := setupProjectService(t)
		require.NoError(t, events.AddParticipant(ctx, 1, 20))
		project, err := repo.Create(ctx, domain.Project{EventID: 1, Name: "Pixel Pets"})
		require.NoError(t, err)

		voted, err := svc.CastVote(ctx, project.ID, 20)

		require.NoError(t, err)
		assert.Equal(t, "Pixel Pets", voted.Name)

		votes, err := svc.GetVotesByVoter(ctx, 20)
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, project.ID, votes[0].ProjectID)
	})

	t.Run("voting again in the same event moves the vote", func(t *testing.T) {
		svc, repo, events := setupProjectService(t)
		require.NoError(t, events.AddParticipant(ctx, 1, 20))
		first, err := repo.Create(ctx, domain.Project{EventID: 1, Name: "First"})
		require.NoError(t, err)
		second, err := repo.Create(ctx, domain.Project{EventID: 1, Name: "Second"})
		require.NoError(t, err)

		_, err = svc.CastVote(ctx, first.ID, 20)
		require.NoError(t, err)
		_, err = svc.CastVote(ctx, second.ID, 20)
		require.NoError(t, err)

		votes, err := svc.GetVotesByVoter(ctx, 20)
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, second.ID, votes[0].ProjectID)
	})

	t.Run("votes in different events are independent", func(t *testing.T) {
		svc, repo, events := setupProjectService(t)
		require.NoError(t, events.AddParticipant(ctx, 1, 20))
		require.NoError(t, events.AddParticipant(ctx, 2, 20))
		first, err := repo.Create(ctx, domain.Project{EventID: 1, Name: "First"})
		require.NoError(t, err)
		second, err := repo.Create(ctx, domain.Project{EventID: 2, Name: "Second"})
		require.NoError(t, err)

		_, err = svc.CastVote(ctx, first.ID, 20)
		require.NoError(t, err)
		_, err = svc.CastVote(ctx, second.ID, 20)
		require.NoError(t, err)

		votes, err := svc.GetVotesByVoter(ctx, 20)
		require.NoError(t, err)
		assert.Len(t, votes, 2)
	})

	t.Run("unknown project returns ErrProjectNotFound", func(t *testing.T) {
		svc, _, _ := setupProjectService(t)

		_, err := svc.CastVote(ctx, 999, 20)

		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("voter outside the event is rejected", func(t *testing.T) {
		svc, repo, _ := setupProjectService(t)
		project, err := repo.Create(ctx, domain.Project{EventID: 1, Name: "Pixel Pets"})
		require.NoError(t, err)

		_, err = svc.CastVote(ctx, project.ID, 20)

		assert.ErrorIs(t, err, ErrNotEventParticipant)
	})
}
