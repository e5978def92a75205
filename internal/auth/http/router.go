package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkravets/huddle-auth/internal/auth/domain"
	"github.com/pkravets/huddle-auth/internal/auth/service"
	"github.com/pkravets/huddle-auth/internal/auth/service/dto"
	commonerrors "github.com/pkravets/huddle-auth/internal/common/errors"
	commonhttp "github.com/pkravets/huddle-auth/internal/common/http"
	"github.com/pkravets/huddle-auth/internal/common/logger"
	"github.com/pkravets/huddle-auth/internal/observability/metrics"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Handle   string `json:"handle"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  dto.User `json:"user"`
}

type usernameCheckRequest struct {
	Username string `json:"username"`
}

type emailCheckRequest struct {
	Email string `json:"email"`
}

type handleCheckRequest struct {
	Handle string `json:"handle"`
}

type usernameCheckResponse struct {
	Username  string `json:"username"`
	Exists    bool   `json:"exists"`
	Available bool   `json:"available"`
}

type emailCheckResponse struct {
	Email     string `json:"email"`
	Exists    bool   `json:"exists"`
	Available bool   `json:"available"`
}

type handleCheckResponse struct {
	Handle    string `json:"handle"`
	Exists    bool   `json:"exists"`
	Available bool   `json:"available"`
}

type Handler struct {
	auth    *service.AuthService
	checker *service.AvailabilityChecker
	log     *logger.Logger
}

func NewHandler(
	auth *service.AuthService,
	checker *service.AvailabilityChecker,
	pinger commonhttp.Pinger,
	requestTimeout time.Duration,
	log *logger.Logger,
) http.Handler {
	h := &Handler{auth: auth, checker: checker, log: log}

	post := commonhttp.RequireMethod(http.MethodPost)
	timed := commonhttp.WithTimeout(requestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(pinger, log))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/register", post(timed(h.register)))
	mux.HandleFunc("/login", post(timed(h.login)))
	mux.HandleFunc("/username-check", post(timed(h.checkUsername)))
	mux.HandleFunc("/email-check", post(timed(h.checkEmail)))
	mux.HandleFunc("/handle-check", post(timed(h.checkHandle)))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteMessage(w, http.StatusBadRequest, "invalid json")
		return
	}

	err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Handle:   req.Handle,
	})
	if err != nil {
		h.writeRegisterError(w, err)
		return
	}

	commonhttp.WriteMessage(w, http.StatusCreated, "User created successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User:  result.User,
	})
}

func (h *Handler) checkUsername(w http.ResponseWriter, r *http.Request) {
	var req usernameCheckRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("username check failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.checker.Check(r.Context(), domain.FieldUsername, req.Username)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, usernameCheckResponse{
		Username:  result.Value,
		Exists:    result.Exists,
		Available: result.Available,
	})
}

func (h *Handler) checkEmail(w http.ResponseWriter, r *http.Request) {
	var req emailCheckRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("email check failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.checker.Check(r.Context(), domain.FieldEmail, req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, emailCheckResponse{
		Email:     result.Value,
		Exists:    result.Exists,
		Available: result.Available,
	})
}

func (h *Handler) checkHandle(w http.ResponseWriter, r *http.Request) {
	var req handleCheckRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("handle check failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.checker.Check(r.Context(), domain.FieldHandle, req.Handle)
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, handleCheckResponse{
		Handle:    result.Value,
		Exists:    result.Exists,
		Available: result.Available,
	})
}

// writeError reports failures under the "error" key, the shape every endpoint
// except registration uses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if de, ok := commonerrors.AsDomainError(err); ok {
		recordDomainError(de)
		commonhttp.WriteError(w, de.HTTPStatus(), de.Message())
		return
	}
	commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
}

// writeRegisterError keeps registration's historical shape: validation
// failures use "message", store failures use "error".
func (h *Handler) writeRegisterError(w http.ResponseWriter, err error) {
	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	recordDomainError(de)
	if de.Category() == commonerrors.CategoryValidation {
		commonhttp.WriteMessage(w, de.HTTPStatus(), de.Message())
		return
	}
	commonhttp.WriteError(w, de.HTTPStatus(), de.Message())
}

func recordDomainError(de commonerrors.DomainError) {
	metrics.DomainErrorsTotal.WithLabelValues(
		string(de.Category()),
		de.Code(),
		strconv.Itoa(de.HTTPStatus()),
	).Inc()
}
