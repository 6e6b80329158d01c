package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/security"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrEmailTaken         = errors.New("email already in use by another user")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionInactive    = errors.New("session inactive")
	ErrSessionExpired     = errors.New("session expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	IDNumber   string
	Department string
}

type AuthResult struct {
	Token string
	User  domain.SafeUser
}

// ProfileUpdate is an explicit patch: only non-nil fields are applied.
type ProfileUpdate struct {
	Name         *string
	Email        *string
	RollNumber   *string
	Branch       *string
	Semester     *string
	Section      *string
	ProfileImage *string
	Skills       []string
	Achievements []string
}

type ProfileView struct {
	ID           uint     `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	RollNumber   string   `json:"rollNumber"`
	Branch       string   `json:"branch"`
	Semester     string   `json:"semester"`
	Section      string   `json:"section"`
	Skills       []string `json:"skills"`
	Achievements []string `json:"achievements"`
	ProfileImage string   `json:"profileImage"`
}

// AuthService is the session manager: it issues, validates and revokes
// bearer tokens, and owns the password lifecycle.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtMgr      *security.JWTManager
	bcryptCost  int
	tokenTTL    time.Duration
	resetTTL    time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtMgr *security.JWTManager,
	bcryptCost int,
	tokenTTL, resetTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtMgr:      jwtMgr,
		bcryptCost:  bcryptCost,
		tokenTTL:    tokenTTL,
		resetTTL:    resetTTL,
	}
}

// Register creates the user and immediately issues a session token.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		RollNumber:   in.IDNumber,
		Branch:       in.Department,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

// Login verifies credentials and issues a fresh session token. Unknown email
// and wrong password both yield ErrInvalidCredentials so callers cannot
// enumerate accounts.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !security.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// issue signs a token and persists exactly one new session row. Existing
// sessions are never touched, so multi-device login works.
func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.jwtMgr.Sign(user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	session := &domain.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		IsActive:  true,
		LastUsed:  time.Now(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &AuthResult{Token: token, User: user.Safe()}, nil
}

// Authenticate resolves a bearer token to its owning user.
//
// Order matters: signature first (ErrInvalidToken), then session
// resolution with the repair path, then the liveness checks — inactive
// before expired. Expiry observed here permanently marks the session
// inactive before rejecting.
func (s *AuthService) Authenticate(token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	claims, err := s.jwtMgr.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, user, err := s.resolveOrRepairSession(token, claims)
	if err != nil {
		return nil, err
	}

	if !session.IsActive {
		return nil, ErrSessionInactive
	}
	if time.Now().After(session.ExpiresAt) {
		if err := s.sessionRepo.MarkInactive(session.ID); err != nil {
			slog.Warn("mark expired session inactive", "session_id", session.ID, "error", err)
		}
		return nil, ErrSessionExpired
	}

	// Advisory only; a failed touch never fails the request.
	if err := s.sessionRepo.TouchLastUsed(session.ID, time.Now()); err != nil {
		slog.Warn("touch session last_used", "session_id", session.ID, "error", err)
	}
	return user, nil
}

// resolveOrRepairSession looks the session up by exact token, and when a
// validly-signed token has no backing row re-creates it from the token's
// own claims. The repair expiry comes from the embedded expiration claim,
// not a fresh TTL.
func (s *AuthService) resolveOrRepairSession(token string, claims *security.Claims) (*domain.Session, *domain.User, error) {
	session, err := s.sessionRepo.FindByToken(token)
	if err == nil {
		if session.User.ID == 0 {
			return nil, nil, ErrUserNotFound
		}
		user := session.User
		return session, &user, nil
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, nil, err
	}

	userID, err := claims.UserID()
	if err != nil || claims.ExpiresAt == nil {
		return nil, nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	repaired := &domain.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		IsActive:  true,
		LastUsed:  time.Now(),
	}
	if err := s.sessionRepo.Create(repaired); err != nil {
		return nil, nil, fmt.Errorf("repair session: %w", err)
	}
	slog.Info("repaired session for validly signed token", "user_id", user.ID)
	return repaired, user, nil
}

// Logout deactivates the session matching the exact token. A token with no
// matching active session is a no-op, never an error.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	_, err := s.sessionRepo.Deactivate(token)
	return err
}

// LogoutAll revokes every active session owned by the user.
func (s *AuthService) LogoutAll(userID uint) (int64, error) {
	return s.sessionRepo.DeactivateByUserID(userID)
}

func (s *AuthService) CurrentUser(userID uint) (domain.SafeUser, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.SafeUser{}, ErrUserNotFound
		}
		return domain.SafeUser{}, err
	}
	return user.Safe(), nil
}

// UpdateProfile applies the non-nil fields of the patch; profile fields are
// mutable and not security relevant, but a changed email must not collide
// with another account.
func (s *AuthService) UpdateProfile(userID uint, patch ProfileUpdate) (*ProfileView, error) {
	if patch.Email != nil {
		taken, err := s.userRepo.EmailTakenByOther(*patch.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	fields := map[string]any{}
	setIf(fields, "name", patch.Name)
	setIf(fields, "email", patch.Email)
	setIf(fields, "roll_number", patch.RollNumber)
	setIf(fields, "branch", patch.Branch)
	setIf(fields, "semester", patch.Semester)
	setIf(fields, "section", patch.Section)
	setIf(fields, "profile_image", patch.ProfileImage)
	if patch.Skills != nil {
		encoded, err := json.Marshal(patch.Skills)
		if err != nil {
			return nil, fmt.Errorf("encode skills: %w", err)
		}
		fields["skills"] = string(encoded)
	}
	if patch.Achievements != nil {
		encoded, err := json.Marshal(patch.Achievements)
		if err != nil {
			return nil, fmt.Errorf("encode achievements: %w", err)
		}
		fields["achievements"] = string(encoded)
	}

	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return profileView(user), nil
}

// ForgotPassword stores a fresh single-use reset challenge with a short
// expiry, replacing any outstanding one. The raw token is returned to the
// handler, which decides whether the environment may echo it.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	token, err := security.NewResetToken()
	if err != nil {
		return "", err
	}
	if err := s.userRepo.SetResetToken(user.ID, token, time.Now().Add(s.resetTTL)); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token: the new hash is stored and both
// reset fields are cleared unconditionally, so reuse always fails.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByValidResetToken(token, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}
	hash, err := security.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.ResetPassword(user.ID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func setIf(fields map[string]any, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

func profileView(u *domain.User) *ProfileView {
	return &ProfileView{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		RollNumber:   u.RollNumber,
		Branch:       u.Branch,
		Semester:     u.Semester,
		Section:      u.Section,
		Skills:       decodeStringList(u.Skills),
		Achievements: decodeStringList(u.Achievements),
		ProfileImage: u.ProfileImage,
	}
}

func decodeStringList(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return []string{}
	}
	return out
}
