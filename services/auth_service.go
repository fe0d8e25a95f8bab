package services

import (
	"errors"
	"strconv"
	"time"

	"conduit-api/config"
	"conduit-api/models"
	"conduit-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.UserDto, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	Refresh(req models.RefreshRequest) (*models.AuthResponse, error)
	Logout(req models.LogoutRequest) error
	GetCurrentUser(userID uint) (*models.UserDto, error)
	UpdateUser(userID uint, req models.UpdateUserRequest) (*models.UserDto, error)
}

type authService struct {
	userRepo     repositories.UserRepository
	tokenService TokenService
}

func NewAuthService(userRepo repositories.UserRepository, tokenService TokenService) AuthService {
	return &authService{userRepo: userRepo, tokenService: tokenService}
}

func (s *authService) Register(req models.RegisterRequest) (*models.UserDto, error) {
	log.Info().Str("email", req.Email).Msg("registering user")

	taken, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrorConflict{Message: "email already registered: " + req.Email}
	}

	taken, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrorConflict{Message: "username already taken: " + req.Username}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Msg("user registered")

	return userToDto(user), nil
}

// Login verifies credentials, persists one access and one refresh token
// record chained by ID, and signs both JWTs. "No such user" and "wrong
// password" are deliberately indistinguishable.
func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	log.Info().Str("email", req.Email).Msg("login attempt")

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorInvalidCredentials{}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorInvalidCredentials{}
	}

	accessRecord, err := s.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshRecord, err := s.tokenService.IssueRefreshToken(accessRecord.ID)
	if err != nil {
		return nil, err
	}

	accessToken, err := signAccessToken(accessRecord, user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := signRefreshToken(refreshRecord, user)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Msg("login successful")

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Email:        user.Email,
		Bio:          user.Bio,
		Image:        user.Image,
	}, nil
}

// Refresh validates the presented refresh token against its record and
// mints a new access token record and JWT. The refresh token itself is not
// rotated; it stays usable until it expires or a logout revokes it.
func (s *authService) Refresh(req models.RefreshRequest) (*models.AuthResponse, error) {
	recordID, userID, err := parseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, models.ErrorUnauthorized{Message: "invalid refresh token"}
	}

	record, err := s.tokenService.GetRefreshToken(recordID)
	if err != nil {
		return nil, models.ErrorUnauthorized{Message: "invalid refresh token"}
	}
	if !record.Valid(time.Now()) {
		return nil, models.ErrorUnauthorized{Message: "refresh token expired or revoked"}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, models.ErrorUnauthorized{Message: "invalid refresh token"}
	}

	accessRecord, err := s.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	accessToken, err := signAccessToken(accessRecord, user)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Msg("access token refreshed")

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
		Username:     user.Username,
		Email:        user.Email,
		Bio:          user.Bio,
		Image:        user.Image,
	}, nil
}

// Logout revokes the presented refresh token record and the access token
// record it was issued for. An unknown token is treated as already logged
// out.
func (s *authService) Logout(req models.LogoutRequest) error {
	recordID, _, err := parseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil
	}

	record, err := s.tokenService.GetRefreshToken(recordID)
	if err != nil {
		return nil
	}

	if err := s.tokenService.RevokeRefreshToken(record.ID); err != nil {
		return err
	}
	return s.tokenService.RevokeAccessToken(record.AccessTokenID)
}

func (s *authService) GetCurrentUser(userID uint) (*models.UserDto, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("user", strconv.FormatUint(uint64(userID), 10))
		}
		return nil, err
	}
	return userToDto(user), nil
}

// UpdateUser applies patch semantics: a non-blank field overwrites, a blank
// field is a no-op. Changing username or email re-checks uniqueness.
func (s *authService) UpdateUser(userID uint, req models.UpdateUserRequest) (*models.UserDto, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("user", strconv.FormatUint(uint64(userID), 10))
		}
		return nil, err
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.ErrorConflict{Message: "username already taken: " + req.Username}
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.ErrorConflict{Message: "email already registered: " + req.Email}
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Image != "" {
		user.Image = req.Image
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return userToDto(user), nil
}

func userToDto(user *models.User) *models.UserDto {
	return &models.UserDto{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
	}
}

func signAccessToken(record *models.AccessToken, user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":      strconv.FormatUint(uint64(record.ID), 10),
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      record.ExpiresAt.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.AccessTokenSecret)
}

func signRefreshToken(record *models.RefreshToken, user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":     strconv.FormatUint(uint64(record.ID), 10),
		"sub":     strconv.FormatUint(uint64(user.ID), 10),
		"user_id": user.ID,
		"exp":     record.ExpiresAt.Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.RefreshTokenSecret)
}

type refreshClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

func parseRefreshToken(tokenString string) (recordID uint, userID uint, err error) {
	claims := &refreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.RefreshTokenSecret, nil
	})
	if err != nil {
		return 0, 0, err
	}
	if !token.Valid {
		return 0, 0, jwt.ErrTokenInvalidClaims
	}
	id, err := strconv.ParseUint(claims.ID, 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint(id), claims.UserID, nil
}
