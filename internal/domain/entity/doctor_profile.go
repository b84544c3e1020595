package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data.
// Appointments reference a doctor by this profile's UserID.
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DepartmentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"department_id"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualifications string    `gorm:"type:text" json:"qualifications,omitempty"`
	Experience     string    `gorm:"type:varchar(100)" json:"experience,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department   Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
