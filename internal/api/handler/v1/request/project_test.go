package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectRequestValidate(t *testing.T) {
	valid := CreateProjectRequest{
		Name:         "Pixel Pets",
		GithubURL:    "https://github.com/ten/pixel-pets",
		PlayableURL:  "https://pixel-pets.example.com",
		Participants: "10, 11",
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid

		assert.NoError(t, req.Validate())
	})

	t.Run("github url must be a url", func(t *testing.T) {
		req := valid
		req.GithubURL = "not a url"

		assert.Error(t, req.Validate())
	})

	t.Run("participants are required", func(t *testing.T) {
		req := valid
		req.Participants = ""

		assert.Error(t, req.Validate())
	})
}

func TestCreateProjectRequestParticipantIDs(t *testing.T) {
	t.Run("splits on commas", func(t *testing.T) {
		req := CreateProjectRequest{Participants: "10, 11,12"}

		ids, err := req.ParticipantIDs()

		require.NoError(t, err)
		assert.Equal(t, []uint{10, 11, 12}, ids)
	})

	t.Run("splits on newlines", func(t *testing.T) {
		req := CreateProjectRequest{Participants: "10\n11\n\n12"}

		ids, err := req.ParticipantIDs()

		require.NoError(t, err)
		assert.Equal(t, []uint{10, 11, 12}, ids)
	})

	t.Run("mixed separators and stray whitespace", func(t *testing.T) {
		req := CreateProjectRequest{Participants: " 10 ,\n 11 "}

		ids, err := req.ParticipantIDs()

		require.NoError(t, err)
		assert.Equal(t, []uint{10, 11}, ids)
	})

	t.Run("non numeric entries fail with the offending entry", func(t *testing.T) {
		req := CreateProjectRequest{Participants: "10, ada"}

		_, err := req.ParticipantIDs()

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"ada"`)
	})

	t.Run("only separators fails", func(t *testing.T) {
		req := CreateProjectRequest{Participants: ",,\n,"}

		_, err := req.ParticipantIDs()

		assert.ErrorIs(t, err, errNoParticipants)
	})
}
