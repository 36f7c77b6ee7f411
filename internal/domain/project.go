package domain

import "time"

type Project struct {
	ID             uint      `json:"id"`
	EventID        uint      `json:"event_id"`
	Name           string    `json:"name"`
	GithubURL      string    `json:"github_url"`
	PlayableURL    string    `json:"playable_url"`
	CreatedByID    uint      `json:"created_by_id"`
	ParticipantIDs []uint    `json:"participant_ids,omitempty"`
	VoteCount      int       `json:"vote_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Vote struct {
	EventID   uint      `json:"event_id"`
	VoterID   uint      `json:"voter_id"`
	ProjectID uint      `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
