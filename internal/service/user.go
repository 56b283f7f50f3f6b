package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/koyif/invoicedash/internal/config"
	"github.com/koyif/invoicedash/internal/domain"
	"github.com/koyif/invoicedash/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (string, error)
	User(ctx context.Context, email string) (*domain.User, error)
}

type UserService struct {
	config *config.Config
	repo   UserRepository
}

func NewUserService(repo UserRepository, config *config.Config) *UserService {
	return &UserService{
		repo:   repo,
		config: config,
	}
}

func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.Warn("error while hashing password")
		return "", fmt.Errorf("error while hashing password: %w", err)
	}

	userID, err := s.repo.CreateUser(ctx, email, string(hashedPassword))
	if err != nil {
		return "", err
	}

	return generateJWTToken(userID, s.config.PrivateKey, s.config.SessionTTL)
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.User(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIncorrectCredentials) {
			logger.Log.Warn("incorrect email", logger.String("email", email))
		}
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		logger.Log.Warn("incorrect password", logger.String("email", email))
		return "", domain.ErrIncorrectCredentials
	}

	return generateJWTToken(user.ID, s.config.PrivateKey, s.config.SessionTTL)
}

func generateJWTToken(userID, privateKey string, ttl time.Duration) (string, error) {
	claims := jwt.StandardClaims{
		Subject:   userID,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(privateKey))
	if err != nil {
		return "", fmt.Errorf("error while signing token: %w", err)
	}

	return signedToken, nil
}
