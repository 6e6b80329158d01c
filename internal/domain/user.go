package domain

import "time"

// User is a credential-store record. PasswordHash is a bcrypt hash and is
// never serialized. ResetToken/ResetTokenExpiry hold at most one outstanding
// password-reset challenge; issuing a new one overwrites the old.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:256;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	Name         string `gorm:"size:256;not null" json:"name"`

	RollNumber   string `gorm:"size:64" json:"rollNumber,omitempty"`
	Branch       string `gorm:"size:128" json:"branch,omitempty"`
	Semester     string `gorm:"size:32" json:"semester,omitempty"`
	Section      string `gorm:"size:32" json:"section,omitempty"`
	Skills       string `gorm:"type:text" json:"-"`
	Achievements string `gorm:"type:text" json:"-"`
	ProfileImage string `gorm:"size:512" json:"profileImage,omitempty"`

	ResetToken       *string    `gorm:"size:128;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SafeUser is the public projection returned by auth endpoints.
type SafeUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Safe() SafeUser {
	return SafeUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
