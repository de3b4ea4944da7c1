package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/entity"
	"smart-blog-be/internal/repository/specification"
	"smart-blog-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	ParseToken(tokenStr string) (uuid.UUID, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	secret     []byte
	expiry     time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, secret string, expiry time.Duration) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		secret:     []byte(secret),
		expiry:     expiry,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	return toUserResponse(&user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: normalizeEmail(req.Email)})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(s.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		TokenType:   "bearer",
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ParseToken validates an HS256 access token and returns its user id.
func (s *authService) ParseToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidCredentials, err)
	}
	return id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        u.Id,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
