package model

import "time"

type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	User        string    `gorm:"size:64;not null;index" json:"user"` // owning username, denormalized
	RecipeName  string    `gorm:"size:128;not null" json:"recipe_name"`
	Category    string    `gorm:"size:64;not null;index" json:"category"`
	Serving     string    `gorm:"size:32" json:"serving"`
	Duration    string    `gorm:"size:32" json:"duration"`
	Desc        string    `gorm:"size:512" json:"desc"`
	Ingredients string    `gorm:"type:text" json:"ingredients"`
	Directions  string    `gorm:"type:text" json:"directions"`
	RecipePic   string    `gorm:"size:255" json:"recipe_pic"` // empty means no picture
	DateCreated string    `gorm:"size:10;not null" json:"date_created"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
