package auth

import (
	"context"
	"fmt"
	"strings"

	"store-frontend/internal/logger"
	"store-frontend/internal/session"

	"go.uber.org/zap"
)

type Requester interface {
	Post(ctx context.Context, path string, in, out any) error
}

type Service interface {
	Login(ctx context.Context, username, password string) (session.Session, error)
	Register(ctx context.Context, input RegisterInput) (session.Session, error)
	Logout(ctx context.Context) error
	Session() session.Session
	Username() string
	IsAuthenticated() bool
}

type service struct {
	api   Requester
	store session.Store
}

func NewService(api Requester, store session.Store) Service {
	return &service{api: api, store: store}
}

func (s *service) Login(ctx context.Context, username, password string) (session.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return session.Session{}, ErrMissingCredentials
	}

	var resp Response
	if err := s.api.Post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return session.Session{}, err
	}
	return s.establish(ctx, resp, ErrLoginFailed)
}

func (s *service) Register(ctx context.Context, input RegisterInput) (session.Session, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return session.Session{}, ErrMissingCredentials
	}
	if strings.TrimSpace(input.BankAccountNumber) == "" {
		input.BankAccountNumber = DefaultBankAccount
	}

	var resp Response
	if err := s.api.Post(ctx, "/auth/register", input, &resp); err != nil {
		return session.Session{}, err
	}
	return s.establish(ctx, resp, ErrRegistrationFailed)
}

// establish persists the session carried by resp, or turns a token-less
// answer into an error carrying the backend's message.
func (s *service) establish(ctx context.Context, resp Response, op error) (session.Session, error) {
	if resp.Token == "" {
		return session.Session{}, &RejectedError{Op: op, Message: resp.Message}
	}

	sess := session.Session{Token: resp.Token, Username: resp.Username}
	if err := s.store.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}

	logger.FromCtx(ctx).Info("session established", zap.String("username", sess.Username))
	return sess, nil
}

// Logout tells the backend (best effort) and always drops the local session.
func (s *service) Logout(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	if s.IsAuthenticated() {
		if err := s.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
			log.Info("backend logout failed, clearing local session anyway", zap.Error(err))
		}
	}

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *service) Session() session.Session {
	sess, err := s.store.Get()
	if err != nil {
		logger.L().Warn("could not read session", zap.Error(err))
		return session.Session{}
	}
	return sess
}

func (s *service) Username() string {
	return s.Session().Username
}

func (s *service) IsAuthenticated() bool {
	return s.Session().Token != ""
}
