package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/vehicle_api/internal/domain"
	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/models"
	"github.com/Skotchmaster/vehicle_api/internal/mykafka"
	"github.com/Skotchmaster/vehicle_api/internal/tokens"
)

// CredentialStore looks administrators up for login. Implementations must
// return domain.ErrCredentialNotFound for an unknown email and for a wrong
// password alike.
type CredentialStore interface {
	FindByCredentials(ctx context.Context, email, password string) (*models.Administrator, error)
	FindAdminByID(ctx context.Context, id uint) (*models.Administrator, error)
}

type AuthService struct {
	Store  CredentialStore
	Tokens *tokens.Service
	Events mykafka.Publisher
}

type LoginResult struct {
	Email  string
	Perfil string
	Token  string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	adm, err := s.Store.FindByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find credentials: %w", err)
	}

	role, err := domain.ParseRole(adm.Role)
	if err != nil {
		l.Error("login_failed", "reason", "stored role is invalid", "admin_id", adm.ID, "error", err)
		return nil, fmt.Errorf("administrator %d: %w", adm.ID, err)
	}

	identity := domain.Identity{Email: adm.Email, Role: role}
	token, err := s.Tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicAdminEvents, strconv.FormatUint(uint64(adm.ID), 10), map[string]any{
		"type":    "admin_logged_in",
		"adminID": adm.ID,
		"email":   adm.Email,
		"perfil":  role.String(),
	})

	return &LoginResult{
		Email:  adm.Email,
		Perfil: role.String(),
		Token:  token,
	}, nil
}
