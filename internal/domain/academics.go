package domain

import "time"

type Semester struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Credits     int       `json:"credits"`
	Duration    string    `gorm:"size:64" json:"duration"`
	Subjects    []Subject `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Subject struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"size:256;not null" json:"name"`
	Code          string   `gorm:"size:32;uniqueIndex;not null" json:"code"`
	SemesterID    uint     `gorm:"index;not null" json:"semesterId"`
	TeacherID     *uint    `gorm:"index" json:"teacherId,omitempty"`
	Teacher       *Teacher `json:"teacher,omitempty"`
	LabTeacherID  *uint    `gorm:"index" json:"labTeacherId,omitempty"`
	LabTeacher    *Teacher `json:"labTeacher,omitempty"`
	Credits       int      `json:"credits"`
	Prerequisites string   `gorm:"size:512" json:"prerequisites"`
	Syllabus      string   `gorm:"type:text" json:"syllabus"`
	Topics        string   `gorm:"type:text" json:"topics"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Teacher struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:256;not null" json:"name"`
	Email          string    `gorm:"size:256;uniqueIndex;not null" json:"email"`
	Department     string    `gorm:"size:128" json:"department"`
	Designation    string    `gorm:"size:128" json:"designation"`
	Qualification  string    `gorm:"size:256" json:"qualification"`
	Experience     string    `gorm:"size:64" json:"experience"`
	Phone          string    `gorm:"size:32" json:"phone"`
	LinkedIn       string    `gorm:"size:512" json:"linkedin"`
	Specialization string    `gorm:"size:512" json:"specialization"`
	Bio            string    `gorm:"type:text" json:"bio"`
	OfficeHours    string    `gorm:"size:128" json:"officeHours"`
	ResearchAreas  string    `gorm:"type:text" json:"researchAreas"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TeacherRef is the trimmed teacher projection embedded in subject listings.
type TeacherRef struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

func (t *Teacher) Ref() TeacherRef {
	return TeacherRef{ID: t.ID, Name: t.Name, Designation: t.Designation, Department: t.Department}
}
