package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/spreadsheet"
)

type AttendanceHandler interface {
	GetDaily(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)
	PreviewBiometric(w http.ResponseWriter, r *http.Request)
	ImportBiometric(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	maxUploadBytes    int64
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, maxUploadMB int64) AttendanceHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		maxUploadBytes:    maxUploadMB << 20,
	}
}

// GetDaily implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	records, err := a.attendanceService.GetDailyAttendance(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetMonthly implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	pakCode := chi.URLParam(r, "pakCode")
	if pakCode == "" {
		response.BadRequest(w, "PAK code is required", nil)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "Query parameter 'month' is required", nil)
		return
	}

	records, err := a.attendanceService.GetMonthlyAttendance(r.Context(), pakCode, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// PreviewBiometric implements AttendanceHandler.
func (a *AttendanceHandlerImpl) PreviewBiometric(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeBiometric(w, r)
	if !ok {
		return
	}

	result, err := a.attendanceService.PreviewBiometric(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ImportBiometric implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ImportBiometric(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeBiometric(w, r)
	if !ok {
		return
	}

	result, err := a.attendanceService.ImportBiometric(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Biometric attendance imported", result)
}

// decodeBiometric accepts either a multipart upload in field "file" or a JSON
// body of pre-parsed rows. Query parameters date and date_format override
// whatever the body carries.
func (a *AttendanceHandlerImpl) decodeBiometric(w http.ResponseWriter, r *http.Request) (attendance.BiometricImportRequest, bool) {
	var req attendance.BiometricImportRequest

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
			if isTooLarge(err) {
				response.PayloadTooLarge(w, "Uploaded file is too large")
				return req, false
			}
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return req, false
		}

		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "Field 'file' is required", nil)
			return req, false
		}
		defer file.Close()

		rows, err := spreadsheet.ReadRows(fileHeader.Filename, file)
		if err != nil {
			slog.Error("Failed to read biometric upload", "filename", fileHeader.Filename, "error", err)
			response.HandleError(w, err)
			return req, false
		}
		req.Rows = rows

		if date := r.FormValue("date"); date != "" {
			req.TargetDate = &date
		}
		if layout := r.FormValue("date_format"); layout != "" {
			req.DateFormat = &layout
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if isTooLarge(err) {
				response.PayloadTooLarge(w, "Request body is too large")
				return req, false
			}
			response.BadRequest(w, "Invalid request format", nil)
			return req, false
		}
	}

	if date := r.URL.Query().Get("date"); date != "" {
		req.TargetDate = &date
	}
	if layout := r.URL.Query().Get("date_format"); layout != "" {
		req.DateFormat = &layout
	}

	return req, true
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
