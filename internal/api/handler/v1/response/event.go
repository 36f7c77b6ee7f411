package response

import "github.com/hackathonspt/attendee-hq/internal/domain"

// EventResponse is an event as the attendee home view needs it: the
// winner resolved to a project and the caller's current vote attached.
type EventResponse struct {
	domain.Event

	WinningProject    *domain.Project `json:"winning_project,omitempty"`
	UserVoteProjectID *uint           `json:"user_vote_project_id,omitempty"`
}

// NewEventResponse builds the aggregate. userVotes maps event id to
// the project id the caller voted for.
func NewEventResponse(event domain.Event, userVotes map[uint]uint) EventResponse {
	resp := EventResponse{Event: event}

	if event.WinningProjectID != nil {
		for i := range event.Projects {
			if event.Projects[i].ID == *event.WinningProjectID {
				resp.WinningProject = &event.Projects[i]
				break
			}
		}
	}

	if projectID, ok := userVotes[event.ID]; ok {
		id := projectID
		resp.UserVoteProjectID = &id
	}

	return resp
}

func NewEventResponses(events []domain.Event, userVotes map[uint]uint) []EventResponse {
	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = NewEventResponse(event, userVotes)
	}

	return responses
}
