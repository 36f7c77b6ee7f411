package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInviteNotFound   = errors.New("invite not found")
	ErrInviteCodeExists = errors.New("invite code already exists")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name          string `gorm:"not null"`
	GuideMarkdown string

	// Plain column on purpose. Re-declaring a winner overwrites it,
	// so no FK constraint is attached here.
	WinningProjectID *uint

	Participants  []EventParticipant `gorm:"foreignKey:EventID"`
	Projects      []Project          `gorm:"foreignKey:EventID"`
	Announcements []Announcement     `gorm:"foreignKey:EventID"`
	Invites       []Invite           `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Invite struct {
	ID uint `gorm:"primaryKey"`

	Code        string `gorm:"unique;not null"`
	EventID     uint   `gorm:"not null;index"`
	ExpiresAt   *time.Time
	CreatedByID uint `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type EventParticipant struct {
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`
	EventID uint `gorm:"primaryKey;autoIncrement:false"`

	User User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
}

type Announcement struct {
	ID uint `gorm:"primaryKey"`

	EventID     uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"not null"`
	CreatedByID uint   `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.preloaded(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByParticipant(ctx context.Context, userID uint) ([]Event, error) {
	var events []Event

	result := d.preloaded(ctx).
		Joins("JOIN event_participants ON event_participants.event_id = events.id").
		Where("event_participants.user_id = ?", userID).
		Order("events.created_at ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.preloaded(ctx).
		Preload("Invites", func(db *gorm.DB) *gorm.DB {
			return db.Order("invites.created_at DESC")
		}).
		Order("events.created_at ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) preloaded(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Preload("Participants.User").
		Preload("Announcements", func(db *gorm.DB) *gorm.DB {
			return db.Order("announcements.created_at DESC")
		}).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.created_at ASC")
		}).
		Preload("Projects.Participants").
		Preload("Projects.Votes")
}

func (d *EventDAO) UpdateGuide(ctx context.Context, eventID uint, guideMarkdown string) error {
	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		Update("guide_markdown", guideMarkdown)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) UpdateWinner(ctx context.Context, eventID, projectID uint) error {
	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		Update("winning_project_id", projectID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) InsertInvite(ctx context.Context, invite Invite) (Invite, error) {
	result := d.db.WithContext(ctx).Create(&invite)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Invite{}, ErrInviteCodeExists
		}

		return Invite{}, result.Error
	}

	return invite, nil
}

func (d *EventDAO) FindInviteByCode(ctx context.Context, code string) (Invite, error) {
	var invite Invite

	result := d.db.WithContext(ctx).First(&invite, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invite{}, ErrInviteNotFound
		}

		return Invite{}, result.Error
	}

	return invite, nil
}

// UpsertParticipant inserts the (user, event) membership row, or does
// nothing when it already exists. Joining twice is a no-op.
func (d *EventDAO) UpsertParticipant(ctx context.Context, participant EventParticipant) error {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&participant)

	return result.Error
}

func (d *EventDAO) ParticipantExists(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *EventDAO) FindParticipantsByEvent(ctx context.Context, eventID uint) ([]EventParticipant, error) {
	var participants []EventParticipant

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *EventDAO) InsertAnnouncement(ctx context.Context, announcement Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Create(&announcement)
	if result.Error != nil {
		return Announcement{}, result.Error
	}

	return announcement, nil
}
