package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/vehicle_api/internal/domain"
	"github.com/Skotchmaster/vehicle_api/internal/hash"
	"github.com/Skotchmaster/vehicle_api/internal/models"
	"github.com/Skotchmaster/vehicle_api/internal/mykafka"
	"github.com/Skotchmaster/vehicle_api/internal/transport"
	"github.com/Skotchmaster/vehicle_api/internal/util"
)

type AdminStore interface {
	CreateAdminIfNotExists(ctx context.Context, adm *models.Administrator) error
	FindAdminByID(ctx context.Context, id uint) (*models.Administrator, error)
	ListAdmins(ctx context.Context, offset, limit int) ([]models.Administrator, error)
}

type AdminService struct {
	Repo   AdminStore
	Events mykafka.Publisher
}

func ValidateAdmin(req transport.AdminRequest) *ValidationError {
	var msgs []string
	if req.Email == "" {
		msgs = append(msgs, "Email nao pode ser vazio!")
	}
	if req.Senha == "" {
		msgs = append(msgs, "Senha nao pode ser vazia!")
	}
	if req.Perfil == "" {
		msgs = append(msgs, "Perfil nao pode ser vazio!")
	} else if _, err := domain.ParseRole(req.Perfil); err != nil {
		msgs = append(msgs, "Perfil invalido!")
	}

	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

func (s *AdminService) Create(ctx context.Context, req transport.AdminRequest) (*models.Administrator, error) {
	if verr := ValidateAdmin(req); verr != nil {
		return nil, verr
	}

	pwHash, err := hash.HashPassword(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	adm := &models.Administrator{
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         req.Perfil,
	}
	if err := s.Repo.CreateAdminIfNotExists(ctx, adm); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicAdminEvents, strconv.FormatUint(uint64(adm.ID), 10), map[string]any{
		"type":    "admin_created",
		"adminID": adm.ID,
		"email":   adm.Email,
		"perfil":  adm.Role,
	})
	return adm, nil
}

// List returns one page of DefaultPageSize when page is positive, every
// administrator otherwise.
func (s *AdminService) List(ctx context.Context, page int) ([]models.Administrator, error) {
	if page <= 0 {
		return s.Repo.ListAdmins(ctx, 0, 0)
	}
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	return s.Repo.ListAdmins(ctx, offset, limit)
}

func (s *AdminService) Get(ctx context.Context, id uint) (*models.Administrator, error) {
	return s.Repo.FindAdminByID(ctx, id)
}

func ToAdminView(adm models.Administrator) transport.AdminView {
	return transport.AdminView{ID: adm.ID, Email: adm.Email, Perfil: adm.Role}
}
