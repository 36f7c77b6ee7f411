package domain

import "time"

// Announcements are immutable once published; there is no update or
// delete path anywhere in the stack.
type Announcement struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}
