package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB spins up a throwaway Postgres container and migrates the
// schema into it. Tests are skipped when Docker is not around.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("skipping: could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("skipping: could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=attendee_hq_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge resource: %v", err)
		}
	})

	require.NoError(t, resource.Expire(120))

	dsn := fmt.Sprintf(
		"host=localhost port=%s user=test password=test dbname=attendee_hq_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func TestUserDAO(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userDAO := NewUserDAO(db)

	t.Run("insert and find back", func(t *testing.T) {
		created, err := userDAO.Insert(ctx, User{Email: "ada@example.com", Password: "hash", Name: "Ada"})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		byID, err := userDAO.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", byID.Email)

		byEmail, err := userDAO.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
	})

	t.Run("duplicate email maps to ErrUserEmailExists", func(t *testing.T) {
		_, err := userDAO.Insert(ctx, User{Email: "dup@example.com", Password: "hash", Name: "First"})
		require.NoError(t, err)

		_, err = userDAO.Insert(ctx, User{Email: "dup@example.com", Password: "hash", Name: "Second"})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("unknown lookups map to ErrUserNotFound", func(t *testing.T) {
		_, err := userDAO.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = userDAO.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestEventDAO(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	eventDAO := NewEventDAO(db)
	userDAO := NewUserDAO(db)

	user, err := userDAO.Insert(ctx, User{Email: "ada@example.com", Password: "hash", Name: "Ada"})
	require.NoError(t, err)

	event, err := eventDAO.Insert(ctx, Event{Name: "Scrapyard Lisbon"})
	require.NoError(t, err)
	require.NotZero(t, event.ID)

	t.Run("duplicate invite code maps to ErrInviteCodeExists", func(t *testing.T) {
		_, err := eventDAO.InsertInvite(ctx, Invite{Code: "HACK-SAME00", EventID: event.ID, CreatedByID: user.ID})
		require.NoError(t, err)

		_, err = eventDAO.InsertInvite(ctx, Invite{Code: "HACK-SAME00", EventID: event.ID, CreatedByID: user.ID})

		assert.ErrorIs(t, err, ErrInviteCodeExists)
	})

	t.Run("find invite by code", func(t *testing.T) {
		_, err := eventDAO.InsertInvite(ctx, Invite{Code: "HACK-FIND01", EventID: event.ID, CreatedByID: user.ID})
		require.NoError(t, err)

		invite, err := eventDAO.FindInviteByCode(ctx, "HACK-FIND01")
		require.NoError(t, err)
		assert.Equal(t, event.ID, invite.EventID)

		_, err = eventDAO.FindInviteByCode(ctx, "HACK-NOPE00")
		assert.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("participant upsert is idempotent", func(t *testing.T) {
		participant := EventParticipant{UserID: user.ID, EventID: event.ID}
		require.NoError(t, eventDAO.UpsertParticipant(ctx, participant))
		require.NoError(t, eventDAO.UpsertParticipant(ctx, participant))

		exists, err := eventDAO.ParticipantExists(ctx, event.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		participants, err := eventDAO.FindParticipantsByEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, participants, 1)
	})

	t.Run("joined events are found by participant", func(t *testing.T) {
		require.NoError(t, eventDAO.UpsertParticipant(ctx, EventParticipant{UserID: user.ID, EventID: event.ID}))

		events, err := eventDAO.FindByParticipant(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Scrapyard Lisbon", events[0].Name)
	})

	t.Run("guide and winner updates require an existing event", func(t *testing.T) {
		require.NoError(t, eventDAO.UpdateGuide(ctx, event.ID, "# Welcome"))
		assert.ErrorIs(t, eventDAO.UpdateGuide(ctx, 99999, "# Welcome"), ErrEventNotFound)

		require.NoError(t, eventDAO.UpdateWinner(ctx, event.ID, 7))
		assert.ErrorIs(t, eventDAO.UpdateWinner(ctx, 99999, 7), ErrEventNotFound)

		got, err := eventDAO.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "# Welcome", got.GuideMarkdown)
		require.NotNil(t, got.WinningProjectID)
		assert.Equal(t, uint(7), *got.WinningProjectID)
	})

	t.Run("announcements come back newest first", func(t *testing.T) {
		_, err := eventDAO.InsertAnnouncement(ctx, Announcement{EventID: event.ID, Title: "First", Content: "a", CreatedByID: user.ID, CreatedAt: time.Now().Add(-time.Hour)})
		require.NoError(t, err)
		_, err = eventDAO.InsertAnnouncement(ctx, Announcement{EventID: event.ID, Title: "Second", Content: "b", CreatedByID: user.ID, CreatedAt: time.Now()})
		require.NoError(t, err)

		got, err := eventDAO.FindByID(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, got.Announcements, 2)
		assert.Equal(t, "Second", got.Announcements[0].Title)
	})
}

func TestProjectDAO(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	projectDAO := NewProjectDAO(db)
	eventDAO := NewEventDAO(db)
	userDAO := NewUserDAO(db)

	user, err := userDAO.Insert(ctx, User{Email: "ada@example.com", Password: "hash", Name: "Ada"})
	require.NoError(t, err)
	event, err := eventDAO.Insert(ctx, Event{Name: "Juice"})
	require.NoError(t, err)

	t.Run("insert writes participant rows alongside the project", func(t *testing.T) {
		created, err := projectDAO.Insert(ctx, Project{
			EventID:     event.ID,
			Name:        "Pixel Pets",
			GithubURL:   "https://github.com/ten/pixel-pets",
			PlayableURL: "https://pixel-pets.example.com",
			CreatedByID: user.ID,
			Participants: []ProjectParticipant{
				{UserID: user.ID},
			},
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := projectDAO.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, got.Participants, 1)
		assert.Equal(t, user.ID, got.Participants[0].UserID)
	})

	t.Run("vote upsert keeps one row per voter and event", func(t *testing.T) {
		first, err := projectDAO.Insert(ctx, Project{EventID: event.ID, Name: "First", GithubURL: "https://github.com/a/b", PlayableURL: "https://a.example.com", CreatedByID: user.ID})
		require.NoError(t, err)
		second, err := projectDAO.Insert(ctx, Project{EventID: event.ID, Name: "Second", GithubURL: "https://github.com/c/d", PlayableURL: "https://c.example.com", CreatedByID: user.ID})
		require.NoError(t, err)

		require.NoError(t, projectDAO.UpsertVote(ctx, Vote{EventID: event.ID, VoterID: user.ID, ProjectID: first.ID}))
		require.NoError(t, projectDAO.UpsertVote(ctx, Vote{EventID: event.ID, VoterID: user.ID, ProjectID: second.ID}))

		votes, err := projectDAO.FindVotesByVoter(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, second.ID, votes[0].ProjectID)
	})

	t.Run("unknown project maps to ErrProjectNotFound", func(t *testing.T) {
		_, err := projectDAO.FindByID(ctx, 99999)

		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}
