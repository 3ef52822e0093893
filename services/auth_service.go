package services

import (
	"context"
	"strings"
	"sync"

	"blog-api/logger"
	"blog-api/mailer"
	"blog-api/models"
	"blog-api/repositories"

	"golang.org/x/crypto/bcrypt"
)

const (
	MsgCredentialsIncorrect = "Credentials is incorrect"
	MsgEmailTaken           = "Email taken, a new user cannot be created with this email"
)

type AuthService interface {
	SignUp(ctx context.Context, req models.AuthRequest) (*models.User, error)
	SignIn(ctx context.Context, req models.AuthRequest) (*models.SignInResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   TokenService
	mail     mailer.Sender
	hashCost int
	compare  func(hash, password []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenService, mail mailer.Sender) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
		hashCost: bcrypt.DefaultCost,
		compare:  bcrypt.CompareHashAndPassword,
	}
}

// unknownUserHash is compared against when the email matches nobody, so both
// failure paths spend one bcrypt comparison.
func (s *authService) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-user"), s.hashCost)
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, req models.AuthRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, internal(ctx, "hash password failed", err)
	}

	user := &models.User{
		Email:    normalizeEmail(req.Email),
		Password: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.ErrorConflict{Message: MsgEmailTaken}
		}
		return nil, internal(ctx, "create user failed", err, "email", user.Email)
	}

	if s.mail != nil {
		data := map[string]string{"Email": user.Email}
		if err := s.mail.Send(ctx, user.Email, "Welcome to the blog", mailer.TemplateWelcome, data); err != nil {
			logger.FromContext(ctx).Warn("welcome mail failed", "user_id", user.ID, "error", err.Error())
		}
	}

	return user.Sanitize(), nil
}

// SignIn answers the same error for an unknown email and a wrong password.
func (s *authService) SignIn(ctx context.Context, req models.AuthRequest) (*models.SignInResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			_ = s.compare(s.unknownUserHash(), []byte(req.Password))
			return nil, models.ErrorForbidden{Message: MsgCredentialsIncorrect}
		}
		return nil, internal(ctx, "lookup user failed", err)
	}

	if err := s.compare([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorForbidden{Message: MsgCredentialsIncorrect}
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return nil, internal(ctx, "sign token failed", err, "user_id", user.ID)
	}

	return &models.SignInResponse{
		Token: token,
		User:  *user.Sanitize(),
	}, nil
}

// Authenticate resolves a token to an existing user.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, models.ErrorUnauthorized{Message: "Invalid token: " + err.Error()}
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, models.ErrorUnauthorized{Message: "Invalid token: " + err.Error()}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorUnauthorized{Message: "User no longer exists"}
		}
		return nil, internal(ctx, "lookup user failed", err, "user_id", id)
	}

	return user.Sanitize(), nil
}
