package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PatientRecord is the longitudinal medical record of a patient: history
// entries, prescriptions, and lab reports. Staff create and maintain records;
// patients can only read their own.
type PatientRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	MedicalHistory pq.StringArray `gorm:"type:text[]" json:"medical_history,omitempty"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient       User           `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:RecordID" json:"prescriptions,omitempty"`
	LabReports    []LabReport    `gorm:"foreignKey:RecordID" json:"lab_reports,omitempty"`
}

func (PatientRecord) TableName() string {
	return "patient_records"
}

// Prescription is a single prescription entry on a patient record. The
// prescribing doctor is optional so admin-entered historical data fits too.
type Prescription struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"record_id"`
	DoctorID    *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Date        *time.Time `gorm:"type:date" json:"date,omitempty"`
	Description string     `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// LabReport is a single lab result entry on a patient record.
type LabReport struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"record_id"`
	Date      *time.Time `gorm:"type:date" json:"date,omitempty"`
	Type      string     `gorm:"type:varchar(100);not null" json:"type"`
	Result    string     `gorm:"type:text" json:"result,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (LabReport) TableName() string {
	return "lab_reports"
}
