package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;default:uuid_generate_v4()"`
	Username  string
	Email     string
}
