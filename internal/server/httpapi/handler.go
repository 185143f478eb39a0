package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"gradinghub/internal/service"
	"gradinghub/pkg/logger"
)

// Handler is the JSON surface consumed by the desktop GUI layer.
type Handler struct {
	ingest service.IngestionServiceInterface
	coord  service.CoordinationServiceInterface
	audit  service.AuditServiceInterface
	logger *logger.Logger
}

func NewHandler(
	ingest service.IngestionServiceInterface,
	coord service.CoordinationServiceInterface,
	audit service.AuditServiceInterface,
	log *logger.Logger,
) *Handler {
	return &Handler{
		ingest: ingest,
		coord:  coord,
		audit:  audit,
		logger: log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/assignments/{assignment_id}/ingest", h.Ingest)
	r.Get("/assignments/{assignment_id}/queue", h.ListQueue)
	r.Get("/assignments/{assignment_id}/unmatched", h.ListUnmatched)
	r.Get("/assignments/{assignment_id}/bookmark", h.Bookmark)

	r.Post("/submissions/{submission_id}/claim", h.Claim)
	r.Post("/submissions/{submission_id}/release", h.Release)
	r.Post("/submissions/{submission_id}/force-claim", h.ForceClaim)
	r.Post("/submissions/{submission_id}/status", h.UpdateStatus)
	r.Post("/submissions/{submission_id}/match", h.ManualMatch)
	r.Post("/submissions/{submission_id}/quarantine", h.Quarantine)
	r.Post("/submissions/{submission_id}/touch", h.Touch)

	r.Get("/audit", h.GetAudit)
	r.Post("/archives/validate", h.ValidateArchive)
}

func parsePathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

type ingestRequest struct {
	ArchivePaths []string `json:"archive_paths"`
}

func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := parsePathUUID(r, "assignment_id")
	if !ok {
		writeBadRequest(w, "invalid assignment id")
		return
	}

	var req ingestRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if len(req.ArchivePaths) == 0 {
		writeBadRequest(w, "archive_paths must not be empty")
		return
	}

	results, err := h.ingest.Ingest(r.Context(), assignmentID, req.ArchivePaths)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

type queueItemResponse struct {
	ID          string     `json:"id"`
	StudentID   *string    `json:"student_id"`
	StudentName *string    `json:"student_name"`
	Status      string     `json:"status"`
	ClaimedBy   *string    `json:"claimed_by"`
	ClaimedAt   *time.Time `json:"claimed_at"`
}

func (h *Handler) ListQueue(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := parsePathUUID(r, "assignment_id")
	if !ok {
		writeBadRequest(w, "invalid assignment id")
		return
	}

	items, err := h.coord.ListQueue(r.Context(), assignmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]queueItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, queueItemResponse{
			ID:          item.ID.String(),
			StudentID:   item.StudentID,
			StudentName: item.StudentName,
			Status:      string(item.Status),
			ClaimedBy:   item.ClaimedBy,
			ClaimedAt:   item.ClaimedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type unmatchedItemResponse struct {
	ID             string `json:"id"`
	SourceDigest   string `json:"source_digest"`
	ExtractionPath string `json:"extraction_path"`
	Status         string `json:"status"`
}

func (h *Handler) ListUnmatched(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := parsePathUUID(r, "assignment_id")
	if !ok {
		writeBadRequest(w, "invalid assignment id")
		return
	}

	submissions, err := h.coord.ListUnmatched(r.Context(), assignmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]unmatchedItemResponse, 0, len(submissions))
	for _, submission := range submissions {
		resp = append(resp, unmatchedItemResponse{
			ID:             submission.ID.String(),
			SourceDigest:   submission.SourceDigest,
			ExtractionPath: submission.ExtractionPath,
			Status:         string(submission.Status),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type bookmarkResponse struct {
	SubmissionID *string    `json:"submission_id"`
	LastOpenedAt *time.Time `json:"last_opened_at"`
}

func (h *Handler) Bookmark(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := parsePathUUID(r, "assignment_id")
	if !ok {
		writeBadRequest(w, "invalid assignment id")
		return
	}
	actor := r.URL.Query().Get("actor")
	if actor == "" {
		writeBadRequest(w, "actor is required")
		return
	}

	bookmark, err := h.audit.Bookmark(r.Context(), actor, assignmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := bookmarkResponse{LastOpenedAt: bookmark.LastOpenedAt}
	if bookmark.SubmissionID != nil {
		id := bookmark.SubmissionID.String()
		resp.SubmissionID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

type actorRequest struct {
	Actor string `json:"actor"`
}

func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	h.actorAction(w, r, h.coord.Claim)
}

func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	h.actorAction(w, r, h.coord.Release)
}

func (h *Handler) ForceClaim(w http.ResponseWriter, r *http.Request) {
	h.actorAction(w, r, h.coord.ForceClaim)
}

// actorAction is the shared shape of claim, release and force-claim:
// a submission id in the path, an actor in the body, no response payload.
func (h *Handler) actorAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id uuid.UUID, actor string) error) {
	submissionID, ok := parsePathUUID(r, "submission_id")
	if !ok {
		writeBadRequest(w, "invalid submission id")
		return
	}

	var req actorRequest
	if err := decodeBody(r, &req); err != nil || req.Actor == "" {
		writeBadRequest(w, "actor is required")
		return
	}

	if err := action(r.Context(), submissionID, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type updateStatusRequest struct {
	Status string  `json:"status"`
	Actor  *string `json:"actor"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := parsePathUUID(r, "submission_id")
	if !ok {
		writeBadRequest(w, "invalid submission id")
		return
	}

	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil || req.Status == "" {
		writeBadRequest(w, "status is required")
		return
	}

	if err := h.coord.UpdateStatus(r.Context(), submissionID, req.Status, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type manualMatchRequest struct {
	StudentID string `json:"student_id"`
	Actor     string `json:"actor"`
}

func (h *Handler) ManualMatch(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := parsePathUUID(r, "submission_id")
	if !ok {
		writeBadRequest(w, "invalid submission id")
		return
	}

	var req manualMatchRequest
	if err := decodeBody(r, &req); err != nil || req.StudentID == "" || req.Actor == "" {
		writeBadRequest(w, "student_id and actor are required")
		return
	}

	if err := h.coord.ManualMatch(r.Context(), submissionID, req.StudentID, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type quarantineRequest struct {
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

func (h *Handler) Quarantine(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := parsePathUUID(r, "submission_id")
	if !ok {
		writeBadRequest(w, "invalid submission id")
		return
	}

	var req quarantineRequest
	if err := decodeBody(r, &req); err != nil || req.Reason == "" || req.Actor == "" {
		writeBadRequest(w, "reason and actor are required")
		return
	}

	if err := h.coord.Quarantine(r.Context(), submissionID, req.Reason, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) Touch(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := parsePathUUID(r, "submission_id")
	if !ok {
		writeBadRequest(w, "invalid submission id")
		return
	}

	if err := h.coord.Touch(r.Context(), submissionID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type auditEntryResponse struct {
	ID         int64                  `json:"id"`
	TS         time.Time              `json:"ts"`
	Actor      *string                `json:"actor"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
}

func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.audit.GetAudit(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]auditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, auditEntryResponse{
			ID:         entry.ID,
			TS:         entry.TS,
			Actor:      entry.Actor,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Detail:     entry.Detail,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type validateArchiveRequest struct {
	Path string `json:"path"`
}

func (h *Handler) ValidateArchive(w http.ResponseWriter, r *http.Request) {
	var req validateArchiveRequest
	if err := decodeBody(r, &req); err != nil || req.Path == "" {
		writeBadRequest(w, "path is required")
		return
	}

	writeJSON(w, http.StatusOK, h.ingest.ValidateArchive(r.Context(), req.Path))
}
