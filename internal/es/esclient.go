package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/vehicle_api/internal/models"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	if url == "" {
		return nil, errors.New("elasticsearch: ES_URL is empty")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: create client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: info %s: %s", res.Status(), body)
	}

	return client, nil
}

// VehicleIndex keeps vehicle documents searchable by name and brand.
type VehicleIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewVehicleIndex(client *elasticsearch.Client, index string) *VehicleIndex {
	return &VehicleIndex{ES: client, Index: index}
}

func (v *VehicleIndex) IndexVehicle(ctx context.Context, vehicle models.Vehicle) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(vehicle); err != nil {
		return fmt.Errorf("encode vehicle: %w", err)
	}

	res, err := v.ES.Index(
		v.Index,
		&buf,
		v.ES.Index.WithContext(ctx),
		v.ES.Index.WithDocumentID(strconv.FormatUint(uint64(vehicle.ID), 10)),
		v.ES.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index vehicle: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index vehicle: %s", res.Status())
	}
	return nil
}

func (v *VehicleIndex) DeleteVehicle(ctx context.Context, id uint) error {
	res, err := v.ES.Delete(
		v.Index,
		strconv.FormatUint(uint64(id), 10),
		v.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete vehicle: %s", res.Status())
	}
	return nil
}

func (v *VehicleIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Vehicle, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"nome^2", "marca"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := v.ES.Search(
		v.ES.Search.WithContext(ctx),
		v.ES.Search.WithIndex(v.Index),
		v.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Vehicle `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode: %w", err)
	}

	vehicles := make([]models.Vehicle, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		vehicles[i] = hit.Source
	}
	return r.Hits.Total.Value, vehicles, nil
}
