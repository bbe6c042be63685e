package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"playtube/internal/domain/user"
	"playtube/internal/repository"
	playtube_errors "playtube/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MediaUploader relays a staged local file to the remote media host and
// returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	uploader MediaUploader
	issuer   *TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, uploader MediaUploader, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		uploader: uploader,
		issuer:   issuer,
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string

	// Local staging paths; empty when the file part was not supplied.
	AvatarPath     string
	CoverImagePath string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	User         UserInfo
	AccessToken  string
	RefreshToken string
}

type UserInfo struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	AvatarURL     string
	CoverImageURL string
	CreatedAt     time.Time
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (UserInfo, error) {
	// Staged files are request-scoped; remove them on every exit path.
	defer removeStaged(in.AvatarPath, in.CoverImagePath)

	if err := validateRegister(in); err != nil {
		return UserInfo{}, err
	}

	// Fast-path check only; concurrent registrations are settled by the
	// unique indexes on username and email.
	if _, err := s.userRepo.GetByUsernameOrEmail(ctx, strings.ToLower(in.Username), in.Email); err == nil {
		return UserInfo{}, fmt.Errorf("%w: user with email or username already exists", playtube_errors.ErrAlreadyExists)
	} else if !errors.Is(err, playtube_errors.ErrNotFound) {
		return UserInfo{}, err
	}

	if in.AvatarPath == "" {
		return UserInfo{}, fmt.Errorf("%w: avatar file is required", playtube_errors.ErrInvalidInput)
	}

	avatarURL, err := s.uploader.Upload(ctx, in.AvatarPath)
	if err != nil || avatarURL == "" {
		// A failed avatar upload is reported as a bad request, matching
		// the published API contract.
		return UserInfo{}, fmt.Errorf("%w: avatar file is required", playtube_errors.ErrInvalidInput)
	}

	coverImageURL := ""
	if in.CoverImagePath != "" {
		if url, err := s.uploader.Upload(ctx, in.CoverImagePath); err == nil {
			coverImageURL = url
		}
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return UserInfo{}, err
	}

	newUser := &user.User{
		ID:            uuid.New(),
		Username:      strings.ToLower(in.Username),
		Email:         in.Email,
		FullName:      in.FullName,
		PasswordHash:  hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return UserInfo{}, err
	}

	created, err := s.userRepo.GetByID(ctx, newUser.ID)
	if err != nil {
		// The record was just written; a failed re-read is a store
		// inconsistency, not caller input.
		return UserInfo{}, fmt.Errorf("%w: something went wrong while registering the user", playtube_errors.ErrInternal)
	}

	return toUserInfo(created), nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := validateLogin(in); err != nil {
		return LoginResult{}, err
	}

	// Usernames are stored lowercase, so the lookup normalizes the same way.
	u, err := s.userRepo.GetByUsernameOrEmail(ctx, strings.ToLower(in.Username), in.Email)
	if err != nil {
		if errors.Is(err, playtube_errors.ErrNotFound) {
			return LoginResult{}, fmt.Errorf("%w: user does not exist", playtube_errors.ErrNotFound)
		}
		return LoginResult{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid user credentials", playtube_errors.ErrUnauthorized)
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}

	loggedIn, err := s.userRepo.GetByID(ctx, u.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: loading user after login: %s", playtube_errors.ErrInternal, err)
	}

	return LoginResult{
		User:         toUserInfo(loggedIn),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	// Idempotent: clearing an already-absent token is still a success.
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// Authenticate resolves an access token to an existing user id. Used by
// the auth middleware.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.issuer.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, playtube_errors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, playtube_errors.ErrUnauthorized
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return uuid.Nil, playtube_errors.ErrUnauthorized
	}

	return userID, nil
}

// issueTokens mints a fresh access/refresh token pair and persists the
// refresh token onto the user record. Any failure here is a server
// fault, never an authentication failure.
func (s *AuthService) issueTokens(ctx context.Context, u user.User) (string, string, error) {
	accessToken, err := s.issuer.GenerateAccessToken(u)
	if err != nil {
		return "", "", fmt.Errorf("%w: generating access token: %s", playtube_errors.ErrInternal, err)
	}

	refreshToken, err := s.issuer.GenerateRefreshToken(u)
	if err != nil {
		return "", "", fmt.Errorf("%w: generating refresh token: %s", playtube_errors.ErrInternal, err)
	}

	if err := s.userRepo.SetRefreshToken(ctx, u.ID, refreshToken); err != nil {
		return "", "", fmt.Errorf("%w: persisting refresh token: %s", playtube_errors.ErrInternal, err)
	}

	return accessToken, refreshToken, nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, playtube_errors.ErrInvalidInput):
		return 400
	case errors.Is(err, playtube_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, playtube_errors.ErrNotFound):
		return 404
	case errors.Is(err, playtube_errors.ErrAlreadyExists):
		return 409
	default:
		return 500
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func validateRegister(in RegisterInput) error {
	for _, field := range []string{in.FullName, in.Email, in.Username, in.Password} {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("%w: all fields are required", playtube_errors.ErrInvalidInput)
		}
	}
	return nil
}

func validateLogin(in LoginInput) error {
	if in.Username == "" && in.Email == "" {
		return fmt.Errorf("%w: username or email is required", playtube_errors.ErrInvalidInput)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password is required", playtube_errors.ErrInvalidInput)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func removeStaged(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}

func toUserInfo(u user.User) UserInfo {
	return UserInfo{
		ID:            u.ID.String(),
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
	}
}
