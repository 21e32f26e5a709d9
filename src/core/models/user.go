package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Email     string    `gorm:"column:email;type:text;unique;not null" json:"email"`
	Password  string    `gorm:"column:password;type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
