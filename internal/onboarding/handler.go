package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kestrelgames/onboarding-core-go/internal/account"
	"github.com/kestrelgames/onboarding-core-go/internal/calibration"
	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
	"github.com/kestrelgames/onboarding-core-go/internal/identity"
)

// Handler exposes the onboarding controller over HTTP. This is presentation
// plumbing only: every endpoint maps one request to one controller event.
type Handler struct {
	ctrl   *Controller
	store  *identity.Store
	logger *zap.SugaredLogger
}

// NewHandler constructs the HTTP handler.
func NewHandler(ctrl *Controller, store *identity.Store, logger *zap.SugaredLogger) *Handler {
	return &Handler{ctrl: ctrl, store: store, logger: logger}
}

// LoginRequest request body for the login endpoint.
type LoginRequest struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
	Passphrase  string `json:"passphrase"`
}

// StateResponse reports the current onboarding state.
type StateResponse struct {
	State     string `json:"state"`
	AccountID string `json:"account_id,omitempty"`
}

// QuestionResponse carries the current calibration question.
type QuestionResponse struct {
	Question catalog.Question `json:"question"`
	Index    int              `json:"index"`
	Total    int              `json:"total"`
}

// AnswerRequest request body for the answer endpoint.
type AnswerRequest struct {
	OptionIndex int `json:"option_index"`
}

// ManualRequest request body for the manual-override endpoint.
type ManualRequest struct {
	Archetype string `json:"archetype"`
	Lane      int    `json:"lane"`
}

// AvatarRequest request body for the avatar-completion endpoint.
type AvatarRequest struct {
	AvatarRef string `json:"avatar_ref"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.ctrl.Login(r.Context(), req.Identifier, req.DisplayName, req.Passphrase); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Logout(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.writeState(w)
}

func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	q, index, total, ok := h.ctrl.Question()
	if !ok {
		http.Error(w, "no active calibration session", http.StatusNotFound)
		return
	}
	h.writeJSON(w, QuestionResponse{Question: q, Index: index, Total: total})
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.ctrl.Answer(r.Context(), req.OptionIndex); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Back(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w)
}

func (h *Handler) Continue(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Continue(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w)
}

func (h *Handler) Manual(w http.ResponseWriter, r *http.Request) {
	var req ManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.ctrl.ManualOverride(r.Context(), catalog.Category(req.Archetype), req.Lane); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w)
}

func (h *Handler) Avatar(w http.ResponseWriter, r *http.Request) {
	var req AvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.ctrl.CompleteAvatar(r.Context(), req.AvatarRef); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	accountID := h.ctrl.AccountID()
	if accountID == "" {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}
	rec, err := h.store.Get(r.Context(), accountID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, rec)
}

func (h *Handler) writeState(w http.ResponseWriter) {
	h.writeJSON(w, StateResponse{State: h.ctrl.State().String(), AccountID: h.ctrl.AccountID()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warnw("write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, calibration.ErrInvalidOption),
		errors.Is(err, catalog.ErrUnknownArchetype),
		errors.Is(err, catalog.ErrLaneOutOfRange),
		errors.Is(err, account.ErrEmptyIdentifier):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, account.ErrBadPassphrase):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, identity.ErrRecordNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Errorw("onboarding request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
