package domain

import "time"

type Event struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	GuideMarkdown    string         `json:"guide_markdown,omitempty"`
	WinningProjectID *uint          `json:"winning_project_id,omitempty"`
	Participants     []User         `json:"participants,omitempty"`
	Projects         []Project      `json:"projects,omitempty"`
	Announcements    []Announcement `json:"announcements,omitempty"`
	Invites          []Invite       `json:"invites,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type Invite struct {
	ID          uint       `json:"id"`
	Code        string     `json:"code"`
	EventID     uint       `json:"event_id"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedByID uint       `json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

type EventParticipant struct {
	UserID   uint      `json:"user_id"`
	EventID  uint      `json:"event_id"`
	JoinedAt time.Time `json:"joined_at"`
}
