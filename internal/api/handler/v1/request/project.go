package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errNoParticipants = errors.New("list at least one participant id")

type CreateProjectRequest struct {
	Name        string `json:"name"`
	GithubURL   string `json:"github_url"`
	PlayableURL string `json:"playable_url"`

	// Free text, ids separated by commas or newlines.
	Participants string `json:"participants"`
}

func (req *CreateProjectRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.GithubURL = strings.TrimSpace(req.GithubURL)
	req.PlayableURL = strings.TrimSpace(req.PlayableURL)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(3, 0)),
		validation.Field(&req.GithubURL, validation.Required, is.URL),
		validation.Field(&req.PlayableURL, validation.Required, is.URL),
		validation.Field(&req.Participants, validation.Required),
	)
	if err != nil {
		return err
	}

	_, err = req.ParticipantIDs()

	return err
}

// ParticipantIDs splits the participants field on commas and newlines
// and parses each entry as a user id. Entries are not deduplicated.
func (req *CreateProjectRequest) ParticipantIDs() ([]uint, error) {
	entries := strings.FieldsFunc(req.Participants, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	var ids []uint
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, err := strconv.ParseUint(entry, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid participant id %q", entry)
		}

		ids = append(ids, uint(id))
	}

	if len(ids) == 0 {
		return nil, errNoParticipants
	}

	return ids, nil
}
