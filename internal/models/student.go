package models

import "time"

// Student represents a learner enrolled in a grade and optionally a class.
// The grade/class link drives which assignments are visible to them.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	GradeID   *uint     `gorm:"index" json:"grade_id"`
	ClassID   *uint     `gorm:"index" json:"class_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
