package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vidbrief/vidbrief-server/internal/api/http/reqcontext"
	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
	"github.com/vidbrief/vidbrief-server/internal/service"
)

const defaultHistoryLimit = 50

// Summary exposes the metered action and guest status.
type Summary struct {
	summaries *service.Summary
	quota     *service.Quota
	logger    *logger.Logger
}

func NewSummary(summaries *service.Summary, quota *service.Quota, logger *logger.Logger) *Summary {
	return &Summary{summaries: summaries, quota: quota, logger: logger}
}

type summarizeRequest struct {
	URL string `json:"url"`
}

type summaryResponse struct {
	ID        string             `json:"id"`
	VideoURL  string             `json:"video_url"`
	Title     string             `json:"title"`
	Summary   string             `json:"summary"`
	CreatedAt string             `json:"created_at"`
	Guest     *model.GuestStatus `json:"guest,omitempty"`
}

// Summarize handles POST /api/summaries. Authenticated users are
// unlimited; guests arrive through the quota gate holding an admission
// that must be settled on every path, including validation failures.
func (h *Summary) Summarize(w http.ResponseWriter, r *http.Request) {
	identity, authenticated := reqcontext.Identity(r.Context())
	identifier, isGuest := reqcontext.GuestIdentifier(r.Context())

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !validVideoURL(req.URL) {
		if isGuest {
			h.quota.ReleaseAdmission(identifier)
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "a valid video url is required"})
		return
	}

	if authenticated {
		summary, err := h.summaries.SummarizeForUser(r.Context(), identity.ID, req.URL)
		if err != nil {
			WriteError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toSummaryResponse(summary, nil))
		return
	}

	summary, err := h.summaries.SummarizeForGuest(r.Context(), identifier, req.URL)
	if err != nil {
		// The admission was released by the service; the guest keeps
		// the try.
		WriteError(w, h.logger, err)
		return
	}

	status, statusErr := h.quota.Status(r.Context(), identifier)
	guest := &status
	if statusErr != nil {
		h.logger.Warn("failed to read guest status after summarize", "error", statusErr.Error())
		guest = nil
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary, guest))
}

// History handles GET /api/summaries. Requires authentication.
func (h *Summary) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := reqcontext.Identity(r.Context())
	if !ok {
		WriteError(w, h.logger, model.ErrUnauthenticated)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	summaries, err := h.summaries.History(r.Context(), identity.ID, limit)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	out := make([]summaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, toSummaryResponse(summary, nil))
	}
	writeJSON(w, http.StatusOK, map[string]any{"summaries": out})
}

// GuestStatus handles GET /api/guest/status. Read-only: it never takes
// an admission.
func (h *Summary) GuestStatus(w http.ResponseWriter, r *http.Request) {
	identifier := h.quota.IdentifierFor(ClientOrigin(r))

	status, err := h.quota.Status(r.Context(), identifier)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func toSummaryResponse(summary model.Summary, guest *model.GuestStatus) summaryResponse {
	return summaryResponse{
		ID:        summary.ID.String(),
		VideoURL:  summary.VideoURL,
		Title:     summary.Title,
		Summary:   summary.Content,
		CreatedAt: summary.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Guest:     guest,
	}
}

func validVideoURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
