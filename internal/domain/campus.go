package domain

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Date        time.Time `gorm:"index" json:"date"`
	Time        string    `gorm:"size:64" json:"time"`
	Venue       string    `gorm:"size:256" json:"venue"`
	Description string    `gorm:"type:text" json:"description"`
	Organizer   string    `gorm:"size:256" json:"organizer"`
	Category    string    `gorm:"size:64;index" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessMenu is one day's mess plan; seven rows cover the week.
type MessMenu struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"size:16;uniqueIndex;not null" json:"day"`
	Breakfast string    `gorm:"type:text" json:"breakfast"`
	Lunch     string    `gorm:"type:text" json:"lunch"`
	Snacks    string    `gorm:"type:text" json:"snacks"`
	Dinner    string    `gorm:"type:text" json:"dinner"`
	Timing    string    `gorm:"size:64" json:"timing"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Hostel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// College holds the single institution profile. Stats and Facilities are
// JSON-encoded arrays, decoded at the handler boundary.
type College struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:256;not null" json:"name"`
	Tagline    string    `gorm:"size:512" json:"tagline"`
	Location   string    `gorm:"size:256" json:"location"`
	About      string    `gorm:"type:text" json:"about"`
	Stats      string    `gorm:"type:text" json:"-"`
	Facilities string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
