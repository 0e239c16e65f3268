package auth

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/user"
	"github.com/nexstream/ott-server-go/internal/utils/jwt"
	"github.com/nexstream/ott-server-go/pkg/types"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    *string
	Password  string
	Gender    *types.Gender
}

type LoginInput struct {
	Email      string
	Password   string
	DeviceID   *string
	DeviceName *string
}

type AuthResponse struct {
	User         *user.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

type TokenConfig struct {
	JWTSecret          string
	JWTRefreshSecret   string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register creates a new viewer account and signs them in.
func Register(db *gorm.DB, input RegisterInput, cfg TokenConfig) (*AuthResponse, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	if !emailRegex.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}

	if len(input.Password) < 8 {
		return nil, user.ErrWeakPassword
	}

	newUser, err := user.Create(db, user.CreateInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Mobile:    input.Mobile,
		Password:  input.Password,
		Gender:    input.Gender,
	})
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := issueTokens(db, &newUser, cfg)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         &newUser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login authenticates a user, records the login device and returns tokens.
func Login(db *gorm.DB, input LoginInput, cfg TokenConfig) (*AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	usr, err := user.GetByEmail(db, input.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !usr.ComparePassword(input.Password) {
		return nil, user.ErrInvalidCredentials
	}

	if input.DeviceID != nil && *input.DeviceID != "" {
		name := ""
		if input.DeviceName != nil {
			name = *input.DeviceName
		}
		if err := user.RecordDevice(db, usr.ID, *input.DeviceID, name, time.Now()); err != nil {
			return nil, err
		}
	}

	accessToken, refreshToken, err := issueTokens(db, &usr, cfg)
	if err != nil {
		return nil, err
	}

	// Re-read so the response carries the freshly recorded device list.
	refreshed, err := user.GetWithPlan(db, usr.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         &refreshed,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh token. An expired access token is still
// accepted so a stale session can always sign out.
func Logout(db *gorm.DB, accessToken string, cfg TokenConfig) error {
	claims, err := jwt.VerifyToken(accessToken, cfg.JWTSecret)
	if err != nil {
		claims, err = jwt.DecodeWithoutVerify(accessToken)
		if err != nil {
			return ErrInvalidToken
		}
	}

	if _, err := user.Get(db, claims.UserID); err != nil {
		return err
	}

	return user.SetRefreshToken(db, claims.UserID, nil)
}

// RefreshAccessToken rotates the token pair using a valid refresh token.
func RefreshAccessToken(db *gorm.DB, refreshToken string, cfg TokenConfig) (*jwt.TokenPair, error) {
	claims, err := jwt.VerifyToken(refreshToken, cfg.JWTRefreshSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	usr, err := user.Get(db, claims.UserID)
	if err != nil {
		return nil, err
	}

	if usr.RefreshToken == nil || *usr.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	accessToken, newRefreshToken, err := issueTokens(db, &usr, cfg)
	if err != nil {
		return nil, err
	}

	return &jwt.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ExtractToken extracts the bearer token from an Authorization header.
func ExtractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func issueTokens(db *gorm.DB, usr *user.User, cfg TokenConfig) (string, string, error) {
	accessToken, err := jwt.GenerateAccessToken(usr.ID, cfg.JWTSecret, cfg.AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.GenerateRefreshToken(usr.ID, cfg.JWTRefreshSecret, cfg.RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}

	if err := user.SetRefreshToken(db, usr.ID, &refreshToken); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
