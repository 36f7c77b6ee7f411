package response

import "github.com/hackathonspt/attendee-hq/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
