package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
		&Invite{},
		&EventParticipant{},
		&Project{},
		&ProjectParticipant{},
		&Vote{},
		&Announcement{},
	)
}
