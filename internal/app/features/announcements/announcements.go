// internal/app/features/announcements/announcements.go
package announcements

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/schoolboard/internal/app/store/announcement"
	"github.com/dalemusser/schoolboard/internal/app/system/htmlsanitize"
	"github.com/dalemusser/schoolboard/internal/app/system/httpjson"
	"github.com/dalemusser/schoolboard/internal/app/system/isodate"
	"github.com/dalemusser/schoolboard/internal/app/system/timeouts"
	"github.com/dalemusser/schoolboard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// announcementRow is an announcement as serialized in responses. The store
// identifier is always a plain string field "_id", regardless of its
// native representation.
type announcementRow struct {
	ID        string  `json:"_id"`
	Message   string  `json:"message"`
	StartDate *string `json:"start_date"`
	EndDate   string  `json:"end_date"`
	CreatedBy string  `json:"created_by"`
	CreatedAt string  `json:"created_at"`
	Active    bool    `json:"active"`
}

func rowFromModel(ann models.Announcement) announcementRow {
	return announcementRow{
		ID:        ann.ID.Hex(),
		Message:   ann.Message,
		StartDate: ann.StartDate,
		EndDate:   ann.EndDate,
		CreatedBy: ann.CreatedBy,
		CreatedAt: ann.CreatedAt,
		Active:    ann.IsActive(),
	}
}

// requireTeacher resolves the teacher_username request parameter against
// the teacher directory. On failure it writes the response (401 for an
// unknown teacher, 500 for a directory error) and returns ok=false.
func (h *Handler) requireTeacher(w http.ResponseWriter, r *http.Request) (string, bool) {
	username := r.FormValue("teacher_username")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := h.Teachers.Exists(ctx, username)
	if err != nil {
		h.Log.Error("teacher lookup failed", zap.Error(err), zap.String("path", r.URL.Path))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to verify teacher")
		return "", false
	}
	if !exists {
		httpjson.Error(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return username, true
}

// ListActive handles GET /active.
//
// Public. Returns announcements whose manual switch is on and whose date
// window contains the current instant, newest first. Internal failures are
// logged server-side and never surface to the caller: display breakage
// must not turn into a visible error, so the response is an empty list.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	anns, err := h.Store.Active(ctx, isodate.Now())
	if err != nil {
		h.Log.Error("failed to fetch active announcements", zap.Error(err))
		httpjson.Write(w, http.StatusOK, []announcementRow{})
		return
	}

	rows := make([]announcementRow, 0, len(anns))
	for _, ann := range anns {
		rows = append(rows, rowFromModel(ann))
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// ListAll handles GET /all.
//
// Requires teacher authentication. Returns every announcement, newest
// first, including inactive and expired ones.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireTeacher(w, r); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	anns, err := h.Store.List(ctx)
	if err != nil {
		h.Log.Error("failed to list announcements", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch announcements")
		return
	}

	rows := make([]announcementRow, 0, len(anns))
	for _, ann := range anns {
		rows = append(rows, rowFromModel(ann))
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// Create handles POST /create.
//
// Requires teacher authentication. end_date is required and must parse as
// ISO-8601 (a trailing Z is accepted as UTC shorthand); start_date is
// optional but validated the same way when present. The message is trimmed
// and sanitized. New announcements start active with created_by and
// created_at assigned server-side.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireTeacher(w, r)
	if !ok {
		return
	}

	endDate := r.FormValue("end_date")
	if err := isodate.Validate(endDate); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid date format")
		return
	}
	var startDate *string
	if raw := r.FormValue("start_date"); raw != "" {
		if err := isodate.Validate(raw); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		startDate = &raw
	}

	message := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("message")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ann, err := h.Store.Create(ctx, announcement.CreateInput{
		Message:   message,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedBy: username,
	})
	if err != nil {
		h.Log.Error("failed to create announcement", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create announcement")
		return
	}

	h.Log.Info("announcement created", zap.String("teacher", username), zap.String("id", ann.ID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":      "Announcement created successfully",
		"announcement": rowFromModel(ann),
	})
}

// Update handles PUT /update/{id}.
//
// Requires teacher authentication. Replaces message, start_date, end_date,
// and active on the matching record; created_by, created_at, and the ID
// are untouched. An omitted active parameter defaults to true, so an
// update that doesn't carry the flag reactivates a deactivated record. An
// omitted start_date clears any stored lower bound.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireTeacher(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	endDate := r.FormValue("end_date")
	if err := isodate.Validate(endDate); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid date format")
		return
	}
	var startDate *string
	if raw := r.FormValue("start_date"); raw != "" {
		if err := isodate.Validate(raw); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		startDate = &raw
	}

	active := true
	if raw := r.FormValue("active"); raw != "" {
		active, err = strconv.ParseBool(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid value for active")
			return
		}
	}

	message := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("message")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Store.Update(ctx, objID, announcement.UpdateInput{
		Message:   message,
		StartDate: startDate,
		EndDate:   endDate,
		Active:    active,
	})
	if errors.Is(err, announcement.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "Announcement not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to update announcement", zap.Error(err), zap.String("id", id))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update announcement")
		return
	}

	h.Log.Info("announcement updated", zap.String("teacher", username), zap.String("id", id))
	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "Announcement updated successfully",
	})
}

// Delete handles DELETE /delete/{id}.
//
// Requires teacher authentication. Physical removal; there is no
// soft-delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireTeacher(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Store.Delete(ctx, objID)
	if errors.Is(err, announcement.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "Announcement not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to delete announcement", zap.Error(err), zap.String("id", id))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete announcement")
		return
	}

	h.Log.Info("announcement deleted", zap.String("teacher", username), zap.String("id", id))
	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "Announcement deleted successfully",
	})
}

// Toggle handles PUT /toggle/{id}.
//
// Requires teacher authentication. Reads the record, flips the manual
// switch, and returns the new value. A record missing the flag reads as
// active, so toggling it turns it off.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	username, ok := h.requireTeacher(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ann, err := h.Store.GetByID(ctx, objID)
	if errors.Is(err, announcement.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "Announcement not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to load announcement", zap.Error(err), zap.String("id", id))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to toggle announcement status")
		return
	}

	newStatus := !ann.IsActive()
	if err := h.Store.SetActive(ctx, objID, newStatus); err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Announcement not found")
			return
		}
		h.Log.Error("failed to toggle announcement", zap.Error(err), zap.String("id", id))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to toggle announcement status")
		return
	}

	statusText := "deactivated"
	if newStatus {
		statusText = "activated"
	}
	h.Log.Info("announcement "+statusText, zap.String("teacher", username), zap.String("id", id))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Announcement " + statusText + " successfully",
		"active":  newStatus,
	})
}
