package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Department represents a hospital department
type Department struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	ContactPerson string         `gorm:"type:varchar(255)" json:"contact_person,omitempty"`
	ContactPhone  string         `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	Services      pq.StringArray `gorm:"type:text[]" json:"services,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []DoctorProfile `gorm:"foreignKey:DepartmentID" json:"doctors,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
