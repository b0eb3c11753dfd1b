package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/models"
	"github.com/Skotchmaster/vehicle_api/internal/mykafka"
	"github.com/Skotchmaster/vehicle_api/internal/repo"
	"github.com/Skotchmaster/vehicle_api/internal/transport"
	"github.com/Skotchmaster/vehicle_api/internal/util"
)

const MinVehicleYear = 1950

type VehicleStore interface {
	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v *models.Vehicle) error
	DeleteVehicle(ctx context.Context, id uint) error
	ListVehicles(ctx context.Context, f repo.VehicleFilter, offset, limit int) ([]models.Vehicle, error)
	SearchVehicles(ctx context.Context, query string, offset, limit int) (int64, []models.Vehicle, error)
}

// VehicleIndexer is the full-text side of the catalogue, backed by Elasticsearch.
type VehicleIndexer interface {
	IndexVehicle(ctx context.Context, v models.Vehicle) error
	DeleteVehicle(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Vehicle, error)
}

// VehicleService keeps the database authoritative. Index is optional; when
// set it is updated after every write and serves Search.
type VehicleService struct {
	Repo   VehicleStore
	Index  VehicleIndexer
	Events mykafka.Publisher
}

type SearchResult struct {
	Total int64
	Items []models.Vehicle
}

func ValidateVehicle(req transport.VehicleRequest) *ValidationError {
	var msgs []string
	if req.Nome == "" {
		msgs = append(msgs, "O nome nao pode ser vazio")
	}
	if req.Marca == "" {
		msgs = append(msgs, "A marca nao ficar em branco")
	}
	if req.Ano < MinVehicleYear {
		msgs = append(msgs, "Veiculo muito antigo, aceito somente anos superiores a 1950")
	}

	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

func (s *VehicleService) Create(ctx context.Context, req transport.VehicleRequest) (*models.Vehicle, error) {
	if verr := ValidateVehicle(req); verr != nil {
		return nil, verr
	}

	v := &models.Vehicle{Name: req.Nome, Brand: req.Marca, Year: req.Ano}
	if err := s.Repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}

	s.index(ctx, *v)
	s.publish(ctx, "vehicle_created", v)
	return v, nil
}

func (s *VehicleService) List(ctx context.Context, f repo.VehicleFilter, page int) ([]models.Vehicle, error) {
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	return s.Repo.ListVehicles(ctx, f, offset, limit)
}

func (s *VehicleService) Get(ctx context.Context, id uint) (*models.Vehicle, error) {
	return s.Repo.GetVehicle(ctx, id)
}

// Update reports ErrNotFound before looking at the request body.
func (s *VehicleService) Update(ctx context.Context, id uint, req transport.VehicleRequest) (*models.Vehicle, error) {
	v, err := s.Repo.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if verr := ValidateVehicle(req); verr != nil {
		return nil, verr
	}

	v.Name = req.Nome
	v.Brand = req.Marca
	v.Year = req.Ano
	if err := s.Repo.UpdateVehicle(ctx, v); err != nil {
		return nil, err
	}

	s.index(ctx, *v)
	s.publish(ctx, "vehicle_updated", v)
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteVehicle(ctx, id); err != nil {
			logging.FromContext(ctx).Error("es_delete_failed", "vehicle_id", id, "error", err)
		}
	}
	s.publish(ctx, "vehicle_deleted", &models.Vehicle{ID: id})
	return nil
}

// Search uses the index when one is configured and falls back to the
// database when there is none or the index query fails.
func (s *VehicleService) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Messages: []string{"A consulta nao pode ser vazia"}}
	}

	offset, limit := util.Calculate(page, util.DefaultPageSize)

	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, query, offset, limit)
		if err == nil {
			return &SearchResult{Total: total, Items: items}, nil
		}
		logging.FromContext(ctx).Warn("es_search_failed", "reason", "falling back to database", "error", err)
	}

	total, items, err := s.Repo.SearchVehicles(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Total: total, Items: items}, nil
}

func (s *VehicleService) index(ctx context.Context, v models.Vehicle) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexVehicle(ctx, v); err != nil {
		logging.FromContext(ctx).Error("es_index_failed", "vehicle_id", v.ID, "error", err)
	}
}

func (s *VehicleService) publish(ctx context.Context, eventType string, v *models.Vehicle) {
	event := map[string]any{
		"type":      eventType,
		"vehicleID": v.ID,
	}
	if eventType != "vehicle_deleted" {
		event["nome"] = v.Name
		event["marca"] = v.Brand
		event["ano"] = v.Year
	}
	publish(ctx, s.Events, mykafka.TopicVehicleEvents, strconv.FormatUint(uint64(v.ID), 10), event)
}
