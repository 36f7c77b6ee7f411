package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

type Project struct {
	ID uint `gorm:"primaryKey"`

	EventID     uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	GithubURL   string `gorm:"not null"`
	PlayableURL string `gorm:"not null"`
	CreatedByID uint   `gorm:"not null"`

	Participants []ProjectParticipant `gorm:"foreignKey:ProjectID"`
	Votes        []Vote               `gorm:"foreignKey:ProjectID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProjectParticipant struct {
	ProjectID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
}

type Vote struct {
	EventID   uint `gorm:"primaryKey;autoIncrement:false"`
	VoterID   uint `gorm:"primaryKey;autoIncrement:false"`
	ProjectID uint `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProjectDAO struct {
	db *gorm.DB
}

func NewProjectDAO(db *gorm.DB) *ProjectDAO {
	return &ProjectDAO{
		db: db,
	}
}

// Insert writes the project and its participant rows as one create,
// so a failure on any row leaves no project behind.
func (d *ProjectDAO) Insert(ctx context.Context, project Project) (Project, error) {
	result := d.db.WithContext(ctx).Create(&project)
	if result.Error != nil {
		return Project{}, result.Error
	}

	return project, nil
}

func (d *ProjectDAO) FindByID(ctx context.Context, id uint) (Project, error) {
	var project Project

	result := d.db.WithContext(ctx).
		Preload("Participants").
		Preload("Votes").
		First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Project{}, ErrProjectNotFound
		}

		return Project{}, result.Error
	}

	return project, nil
}

// UpsertVote inserts the voter's vote for the event, or redirects an
// existing one to the new project. One row per (event, voter) always.
func (d *ProjectDAO) UpsertVote(ctx context.Context, vote Vote) error {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "voter_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"project_id", "updated_at"}),
		}).
		Create(&vote)

	return result.Error
}

func (d *ProjectDAO) FindVotesByVoter(ctx context.Context, voterID uint) ([]Vote, error) {
	var votes []Vote

	result := d.db.WithContext(ctx).Where("voter_id = ?", voterID).Find(&votes)
	if result.Error != nil {
		return nil, result.Error
	}

	return votes, nil
}
