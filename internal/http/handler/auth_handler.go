package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/middleware"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/response"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/service"
)

const minPasswordLength = 6

type AuthHandler struct {
	auth *service.AuthService
	// Non-production deployments echo the raw reset token in the
	// forgot-password response instead of sending mail.
	exposeResetToken bool
}

func NewAuthHandler(auth *service.AuthService, exposeResetToken bool) *AuthHandler {
	return &AuthHandler{auth: auth, exposeResetToken: exposeResetToken}
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IDNumber   string `json:"idNumber"`
	Department string `json:"department"`
}

type authSuccess struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    domain.SafeUser `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		response.Error(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		response.Error(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	res, err := h.auth.Register(service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		IDNumber:   strings.TrimSpace(req.IDNumber),
		Department: strings.TrimSpace(req.Department),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			observability.RecordAuthEvent("register", "conflict")
			response.Error(w, http.StatusBadRequest, "email already registered")
			return
		}
		observability.RecordAuthEvent("register", "error")
		serverError(w, r, "register", err)
		return
	}

	observability.RecordAuthEvent("register", "success")
	observability.Audit(r, "user.registered", "user_id", res.User.ID, "email", res.User.Email)
	response.JSON(w, http.StatusCreated, authSuccess{
		Message: "registration successful",
		Token:   res.Token,
		User:    res.User,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	res, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Identical body for unknown email and wrong password.
			observability.RecordAuthEvent("login", "denied")
			response.Error(w, http.StatusBadRequest, "invalid email or password")
			return
		}
		observability.RecordAuthEvent("login", "error")
		serverError(w, r, "login", err)
		return
	}

	observability.RecordAuthEvent("login", "success")
	observability.Audit(r, "user.logged_in", "user_id", res.User.ID)
	response.JSON(w, http.StatusOK, authSuccess{
		Message: "login successful",
		Token:   res.Token,
		User:    res.User,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	// Re-read so a profile update on another device is visible immediately.
	safe, err := h.auth.CurrentUser(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		serverError(w, r, "me", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]domain.SafeUser{"user": safe})
}

type profileRequest struct {
	Name         *string  `json:"name"`
	Email        *string  `json:"email"`
	RollNumber   *string  `json:"rollNumber"`
	Branch       *string  `json:"branch"`
	Semester     *string  `json:"semester"`
	Section      *string  `json:"section"`
	ProfileImage *string  `json:"profileImage"`
	Skills       []string `json:"skills"`
	Achievements []string `json:"achievements"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*req.Email))
		if !strings.Contains(normalized, "@") {
			response.Error(w, http.StatusBadRequest, "invalid email address")
			return
		}
		req.Email = &normalized
	}

	view, err := h.auth.UpdateProfile(user.ID, service.ProfileUpdate{
		Name:         req.Name,
		Email:        req.Email,
		RollNumber:   req.RollNumber,
		Branch:       req.Branch,
		Semester:     req.Semester,
		Section:      req.Section,
		ProfileImage: req.ProfileImage,
		Skills:       req.Skills,
		Achievements: req.Achievements,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(w, http.StatusBadRequest, "email already in use by another user")
			return
		}
		serverError(w, r, "update profile", err)
		return
	}

	observability.Audit(r, "user.profile_updated", "user_id", user.ID)
	response.JSON(w, http.StatusOK, map[string]any{
		"message": "profile updated",
		"user":    view,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if err := h.auth.Logout(token); err != nil {
		if errors.Is(err, service.ErrMissingToken) {
			response.Error(w, http.StatusBadRequest, "no token provided")
			return
		}
		serverError(w, r, "logout", err)
		return
	}
	observability.RecordAuthEvent("logout", "success")
	response.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	revoked, err := h.auth.LogoutAll(user.ID)
	if err != nil {
		serverError(w, r, "logout all", err)
		return
	}
	observability.RecordAuthEvent("logout_all", "success")
	observability.Audit(r, "user.logged_out_everywhere", "user_id", user.ID, "sessions_revoked", revoked)
	response.JSON(w, http.StatusOK, map[string]string{"message": "logged out from all devices"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		response.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.auth.ForgotPassword(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "user not found")
			return
		}
		serverError(w, r, "forgot password", err)
		return
	}

	observability.RecordAuthEvent("forgot_password", "success")
	observability.Audit(r, "user.reset_requested", "email", req.Email)
	body := map[string]string{"message": "password reset token generated"}
	if h.exposeResetToken {
		body["resetToken"] = token
	}
	response.JSON(w, http.StatusOK, body)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		response.Error(w, http.StatusBadRequest, "token and new password are required")
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		response.Error(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	if err := h.auth.ResetPassword(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			observability.RecordAuthEvent("reset_password", "denied")
			response.Error(w, http.StatusBadRequest, "invalid or expired reset token")
			return
		}
		observability.RecordAuthEvent("reset_password", "error")
		serverError(w, r, "reset password", err)
		return
	}

	observability.RecordAuthEvent("reset_password", "success")
	response.JSON(w, http.StatusOK, map[string]string{"message": "password reset successful"})
}
