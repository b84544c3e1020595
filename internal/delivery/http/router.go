package http

import (
	"net/http"

	"family-care-api/internal/delivery/http/handler"
	"family-care-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	doctorHandler        *handler.DoctorHandler
	departmentHandler    *handler.DepartmentHandler
	feedbackHandler      *handler.FeedbackHandler
	patientRecordHandler *handler.PatientRecordHandler
	emergencyHandler     *handler.EmergencyHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	departmentHandler *handler.DepartmentHandler,
	feedbackHandler *handler.FeedbackHandler,
	patientRecordHandler *handler.PatientRecordHandler,
	emergencyHandler *handler.EmergencyHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		doctorHandler:        doctorHandler,
		departmentHandler:    departmentHandler,
		feedbackHandler:      feedbackHandler,
		patientRecordHandler: patientRecordHandler,
		emergencyHandler:     emergencyHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public catalog routes
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/departments", r.departmentHandler.ListDepartments).Methods(http.MethodGet)
	api.HandleFunc("/departments/{id}", r.departmentHandler.GetDepartment).Methods(http.MethodGet)
	api.HandleFunc("/feedback", r.feedbackHandler.ListFeedback).Methods(http.MethodGet)

	// Appointment routes (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)

	appointmentsPatient := api.PathPrefix("/appointments").Subrouter()
	appointmentsPatient.Use(r.authMiddleware.Authenticate)
	appointmentsPatient.Use(middleware.RequirePatient)
	appointmentsPatient.HandleFunc("", r.appointmentHandler.Book).Methods(http.MethodPost)
	appointmentsPatient.HandleFunc("/{id}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)
	appointmentsPatient.HandleFunc("/{id}/reschedule", r.appointmentHandler.Reschedule).Methods(http.MethodPatch)

	appointmentsStaff := api.PathPrefix("/appointments").Subrouter()
	appointmentsStaff.Use(r.authMiddleware.Authenticate)
	appointmentsStaff.Use(middleware.RequireAdminOrDoctor)
	appointmentsStaff.HandleFunc("/{id}", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)

	// Emergency submission is open to guests
	api.HandleFunc("/emergency", r.emergencyHandler.Submit).Methods(http.MethodPost)

	// Patient record routes (protected)
	records := api.PathPrefix("/patient-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("", r.patientRecordHandler.ListRecords).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.patientRecordHandler.GetRecord).Methods(http.MethodGet)

	recordsStaff := api.PathPrefix("/patient-records").Subrouter()
	recordsStaff.Use(r.authMiddleware.Authenticate)
	recordsStaff.Use(middleware.RequireAdminOrDoctor)
	recordsStaff.HandleFunc("", r.patientRecordHandler.CreateRecord).Methods(http.MethodPost)
	recordsStaff.HandleFunc("/{id}", r.patientRecordHandler.UpdateRecord).Methods(http.MethodPut)
	recordsStaff.HandleFunc("/{id}/prescriptions", r.patientRecordHandler.AddPrescription).Methods(http.MethodPost)
	recordsStaff.HandleFunc("/{id}/lab-reports", r.patientRecordHandler.AddLabReport).Methods(http.MethodPost)

	// Feedback routes (protected - patients)
	feedback := api.PathPrefix("/feedback").Subrouter()
	feedback.Use(r.authMiddleware.Authenticate)
	feedback.Use(middleware.RequirePatient)
	feedback.HandleFunc("", r.feedbackHandler.CreateFeedback).Methods(http.MethodPost)
	feedback.HandleFunc("/mine", r.feedbackHandler.ListMyFeedback).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Department management (admin)
	admin.HandleFunc("/departments", r.departmentHandler.CreateDepartment).Methods(http.MethodPost)
	admin.HandleFunc("/departments/{id}", r.departmentHandler.UpdateDepartment).Methods(http.MethodPut)
	admin.HandleFunc("/departments/{id}", r.departmentHandler.DeleteDepartment).Methods(http.MethodDelete)

	// Emergency dispatch (admin)
	admin.HandleFunc("/emergency", r.emergencyHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/emergency/{id}", r.emergencyHandler.UpdateStatus).Methods(http.MethodPut)

	// Audit logs (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
