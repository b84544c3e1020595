package usecase

import (
	"context"
	"testing"

	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := f.users[id]; !ok {
		return 0, nil
	}
	delete(f.users, id)
	return 1, nil
}

type fakePatientRecordRepo struct {
	records map[uuid.UUID]*entity.PatientRecord
}

func newFakePatientRecordRepo() *fakePatientRecordRepo {
	return &fakePatientRecordRepo{records: map[uuid.UUID]*entity.PatientRecord{}}
}

func (f *fakePatientRecordRepo) Create(db *gorm.DB, record *entity.PatientRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	stored := *record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakePatientRecordRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	found := *record
	found.Prescriptions = append([]entity.Prescription(nil), record.Prescriptions...)
	found.LabReports = append([]entity.LabReport(nil), record.LabReports...)
	return &found, nil
}

func (f *fakePatientRecordRepo) FindAll(db *gorm.DB) ([]entity.PatientRecord, error) {
	var out []entity.PatientRecord
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakePatientRecordRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PatientRecord, error) {
	var out []entity.PatientRecord
	for _, r := range f.records {
		if r.PatientID == patientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePatientRecordRepo) Update(db *gorm.DB, record *entity.PatientRecord) error {
	stored, ok := f.records[record.ID]
	if !ok {
		return nil
	}
	stored.MedicalHistory = record.MedicalHistory
	stored.Notes = record.Notes
	return nil
}

func (f *fakePatientRecordRepo) AddPrescription(db *gorm.DB, prescription *entity.Prescription) error {
	if prescription.ID == uuid.Nil {
		prescription.ID = uuid.New()
	}
	record, ok := f.records[prescription.RecordID]
	if !ok {
		return nil
	}
	record.Prescriptions = append(record.Prescriptions, *prescription)
	return nil
}

func (f *fakePatientRecordRepo) AddLabReport(db *gorm.DB, report *entity.LabReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	record, ok := f.records[report.RecordID]
	if !ok {
		return nil
	}
	record.LabReports = append(record.LabReports, *report)
	return nil
}

type recordFixture struct {
	usecase    PatientRecordUsecase
	recordRepo *fakePatientRecordRepo
	userRepo   *fakeUserRepo
	doctorRepo *fakeDoctorRepo
	patientID  uuid.UUID
	doctorID   uuid.UUID
	adminID    uuid.UUID
}

func newRecordFixture(t *testing.T) *recordFixture {
	t.Helper()

	recordRepo := newFakePatientRecordRepo()
	userRepo := newFakeUserRepo()
	doctorRepo := newFakeDoctorRepo()

	patientID := uuid.New()
	require.NoError(t, userRepo.Create(nil, &entity.User{ID: patientID, RoleID: entity.RoleIDPatient, Email: "patient@example.com"}))

	doctorID := uuid.New()
	require.NoError(t, userRepo.Create(nil, &entity.User{ID: doctorID, RoleID: entity.RoleIDDoctor, Email: "doctor@example.com"}))
	require.NoError(t, doctorRepo.Create(nil, &entity.DoctorProfile{UserID: doctorID, Specialization: "Cardiologist"}))

	u := NewPatientRecordUsecase(testDB(), testLogger(), recordRepo, userRepo, doctorRepo, nil)

	return &recordFixture{
		usecase:    u,
		recordRepo: recordRepo,
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		patientID:  patientID,
		doctorID:   doctorID,
		adminID:    uuid.New(),
	}
}

func (f *recordFixture) create(t *testing.T) *dto.PatientRecordResponse {
	t.Helper()
	resp, err := f.usecase.CreateRecord(context.Background(), f.doctorID, &dto.CreatePatientRecordRequest{
		PatientID:      f.patientID,
		MedicalHistory: []string{"hypertension"},
		Notes:          "Annual check-up",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func TestCreateRecord(t *testing.T) {
	f := newRecordFixture(t)

	resp := f.create(t)

	assert.Equal(t, f.patientID, resp.PatientID)
	assert.Equal(t, []string{"hypertension"}, resp.MedicalHistory)
	assert.Equal(t, "Annual check-up", resp.Notes)
}

func TestCreateRecordUnknownPatient(t *testing.T) {
	f := newRecordFixture(t)

	_, err := f.usecase.CreateRecord(context.Background(), f.doctorID, &dto.CreatePatientRecordRequest{
		PatientID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestCreateRecordRejectsNonPatientUser(t *testing.T) {
	f := newRecordFixture(t)

	// A doctor's user ID is not a valid record subject.
	_, err := f.usecase.CreateRecord(context.Background(), f.doctorID, &dto.CreatePatientRecordRequest{
		PatientID: f.doctorID,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestGetRecordOwnership(t *testing.T) {
	f := newRecordFixture(t)

	resp := f.create(t)

	// The owning patient and staff can read the record.
	_, err := f.usecase.GetRecord(context.Background(), resp.ID, f.patientID, entity.RoleIDPatient)
	assert.NoError(t, err)
	_, err = f.usecase.GetRecord(context.Background(), resp.ID, f.doctorID, entity.RoleIDDoctor)
	assert.NoError(t, err)

	// Another patient cannot.
	_, err = f.usecase.GetRecord(context.Background(), resp.ID, uuid.New(), entity.RoleIDPatient)
	assert.ErrorIs(t, err, ErrPatientRecordNotOwned)
}

func TestGetRecordNotFound(t *testing.T) {
	f := newRecordFixture(t)

	_, err := f.usecase.GetRecord(context.Background(), uuid.New(), f.patientID, entity.RoleIDPatient)
	assert.ErrorIs(t, err, ErrPatientRecordNotFound)
}

func TestListRecordsRoleScoping(t *testing.T) {
	f := newRecordFixture(t)

	f.create(t)

	otherPatient := uuid.New()
	require.NoError(t, f.userRepo.Create(nil, &entity.User{ID: otherPatient, RoleID: entity.RoleIDPatient, Email: "other@example.com"}))
	_, err := f.usecase.CreateRecord(context.Background(), f.doctorID, &dto.CreatePatientRecordRequest{PatientID: otherPatient})
	require.NoError(t, err)

	staffList, err := f.usecase.ListRecords(context.Background(), f.doctorID, entity.RoleIDDoctor)
	require.NoError(t, err)
	assert.Equal(t, 2, staffList.Total)

	patientList, err := f.usecase.ListRecords(context.Background(), f.patientID, entity.RoleIDPatient)
	require.NoError(t, err)
	require.Equal(t, 1, patientList.Total)
	assert.Equal(t, f.patientID, patientList.Records[0].PatientID)
}

func TestUpdateRecordPartial(t *testing.T) {
	f := newRecordFixture(t)

	resp := f.create(t)

	// Only history is replaced; notes stay untouched.
	updated, err := f.usecase.UpdateRecord(context.Background(), resp.ID, f.doctorID, &dto.UpdatePatientRecordRequest{
		MedicalHistory: []string{"hypertension", "diabetes"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hypertension", "diabetes"}, updated.MedicalHistory)
	assert.Equal(t, "Annual check-up", updated.Notes)

	notes := "Stable"
	updated, err = f.usecase.UpdateRecord(context.Background(), resp.ID, f.doctorID, &dto.UpdatePatientRecordRequest{
		Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "Stable", updated.Notes)
}

func TestAddPrescriptionRecordsDoctor(t *testing.T) {
	f := newRecordFixture(t)

	resp := f.create(t)

	updated, err := f.usecase.AddPrescription(context.Background(), resp.ID, f.doctorID, &dto.AddPrescriptionRequest{
		Date:        "2026-09-01",
		Description: "Lisinopril 10mg daily",
	})
	require.NoError(t, err)
	require.Len(t, updated.Prescriptions, 1)
	assert.Equal(t, "Lisinopril 10mg daily", updated.Prescriptions[0].Description)
	assert.Equal(t, "2026-09-01", updated.Prescriptions[0].Date)

	stored := f.recordRepo.records[resp.ID]
	require.NotNil(t, stored.Prescriptions[0].DoctorID)
	assert.Equal(t, f.doctorID, *stored.Prescriptions[0].DoctorID)
}

func TestAddPrescriptionByAdminHasNoDoctor(t *testing.T) {
	f := newRecordFixture(t)

	resp := f.create(t)

	// The admin has no doctor profile, so no prescribing doctor is recorded.
	_, err := f.usecase.AddPrescription(context.Background(), resp.ID, f.adminID, &dto.AddPrescriptionRequest{
		Description: "Imported from paper records",
	})
	require.NoError(t, err)

	stored := f.recordRepo.records[resp.ID]
	require.Len(t, stored.Prescriptions, 1)
	assert.Nil(t, stored.Prescriptions[0].DoctorID)
}

func TestAddPrescriptionUnknownRecord(t *testing.T) {
	f := newRecordFixture(t)

	_, err := f.usecase.AddPrescription(context.Background(), uuid.New(), f.doctorID, &dto.AddPrescriptionRequest{
		Description: "Lisinopril 10mg daily",
	})
	assert.ErrorIs(t, err, ErrPatientRecordNotFound)
}

func TestAddLabReport(t *testing.T) {
	f := newRecordFixture(t)

	resp := f.create(t)

	updated, err := f.usecase.AddLabReport(context.Background(), resp.ID, f.doctorID, &dto.AddLabReportRequest{
		Date:   "2026-08-20",
		Type:   "Blood Panel",
		Result: "Within normal limits",
	})
	require.NoError(t, err)
	require.Len(t, updated.LabReports, 1)
	assert.Equal(t, "Blood Panel", updated.LabReports[0].Type)
	assert.Equal(t, "2026-08-20", updated.LabReports[0].Date)
}
