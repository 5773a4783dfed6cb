package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/attendance"
	"github.com/kitabonkesaar/attendance-app-saas/internal/handler/http/response"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	CreateManual(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// employeeIDFromClaims reads the caller's own employee id; punches are
// always recorded against the authenticated profile, never a form
// field.
func employeeIDFromClaims(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	employeeID, _ := claims["employee_id"].(string)
	return employeeID
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee profile linked to this account")
		return
	}

	var req attendance.PunchInRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Photo is optional at transport level; the service enforces the
	// photo_mandatory rule.
	file, fileHeader, err := r.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	req.EmployeeID = employeeID

	result, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch in successful", result)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee profile linked to this account")
		return
	}

	var req attendance.PunchOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch out successful", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee profile linked to this account")
		return
	}

	result, err := h.attendanceService.Today(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromClaims(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee profile linked to this account")
		return
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), employeeID, parseAttendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseAttendanceFilter(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.EditedBy = userIDFromClaims(r)

	result, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance corrected", result)
}

// CreateManual implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EditedBy = userIDFromClaims(r)

	result, err := h.attendanceService.CreateManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual entry created", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.attendanceService.Delete(r.Context(), chi.URLParam(r, "id"), userIDFromClaims(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

func parseAttendanceFilter(r *http.Request) attendance.AttendanceFilter {
	filter := attendance.AttendanceFilter{
		Status: r.URL.Query().Get("status"),
		Page:   getIntQueryParam(r, "page", 1),
		Limit:  getIntQueryParam(r, "limit", 20),
	}

	if from := r.URL.Query().Get("date_from"); from != "" {
		if t, err := time.Parse(time.DateOnly, from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		if t, err := time.Parse(time.DateOnly, to); err == nil {
			filter.DateTo = &t
		}
	}

	return filter
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
