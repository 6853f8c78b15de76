package http

import (
	"log/slog"
	"net/http"

	"github.com/cfshr/aur/internal/newsletter"
	"github.com/cfshr/aur/internal/signup"
	"github.com/cfshr/aur/pkg/httputil"
	"github.com/cfshr/aur/pkg/validator"
)

// SignupHandler forwards account signups and newsletter subscriptions to the
// external providers that own them.
type SignupHandler struct {
	signups    *signup.Client
	newsletter *newsletter.Client
	logger     *slog.Logger
}

// NewSignupHandler creates a new signup HTTP handler.
func NewSignupHandler(s *signup.Client, n *newsletter.Client, logger *slog.Logger) *SignupHandler {
	return &SignupHandler{
		signups:    s,
		newsletter: n,
		logger:     logger,
	}
}

// SubscribeRequest is the JSON request body for a newsletter subscription.
type SubscribeRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source" validate:"max=100"`
}

// CreateSignup handles POST /api/v1/signup
func (h *SignupHandler) CreateSignup(w http.ResponseWriter, r *http.Request) {
	var req signup.Signup
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	record, err := h.signups.Create(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "signup created",
		slog.String("user_type", record.UserType),
	)

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: record})
}

// Subscribe handles POST /api/v1/newsletter/subscribe
func (h *SignupHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.newsletter.Subscribe(r.Context(), req.Email, req.Source); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"status": "subscribed"},
	})
}
