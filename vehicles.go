package loggerise

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// VehicleType classifies a vehicle in the tenant's fleet.
type VehicleType string

const (
	VehicleTractor VehicleType = "tractor"
	VehicleTrailer VehicleType = "trailer"
	VehicleRigid   VehicleType = "rigid"
	VehicleVan     VehicleType = "van"
)

// Vehicle is one unit of the tenant's fleet.
type Vehicle struct {
	ID           int64       `json:"id"`
	Registration string      `json:"registration"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Type         VehicleType `json:"type"`
	CapacityKg   float64     `json:"capacity_kg"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// VehicleParams creates or updates a vehicle.
type VehicleParams struct {
	Registration string      `json:"registration,omitempty"`
	Make         string      `json:"make,omitempty"`
	Model        string      `json:"model,omitempty"`
	Type         VehicleType `json:"type,omitempty"`
	CapacityKg   float64     `json:"capacity_kg,omitempty"`
	Active       *bool       `json:"active,omitempty"`
}

// VehicleListParams filter [VehiclesService.List].
type VehicleListParams struct {
	ListParams

	Type VehicleType

	// Active filters on availability; nil returns both.
	Active *bool
}

func (p VehicleListParams) values() url.Values {
	q := p.ListParams.values()
	if p.Type != "" {
		q.Set("type", string(p.Type))
	}
	if p.Active != nil {
		if *p.Active {
			q.Set("active", "1")
		} else {
			q.Set("active", "0")
		}
	}
	return q
}

// VehiclesService manages the tenant's fleet.
type VehiclesService struct {
	c *Client
}

// List returns one page of vehicles matching params.
func (s *VehiclesService) List(ctx context.Context, params VehicleListParams) (*Page[Vehicle], error) {
	var page Page[Vehicle]
	if err := s.c.get(ctx, "/api/v1/vehicles", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single vehicle by id.
func (s *VehiclesService) Get(ctx context.Context, id int64) (*Vehicle, error) {
	var vehicle Vehicle
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/vehicles/%d", id), nil, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Create adds a vehicle to the fleet.
func (s *VehiclesService) Create(ctx context.Context, params VehicleParams) (*Vehicle, error) {
	var vehicle Vehicle
	if err := s.c.post(ctx, "/api/v1/vehicles", params, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Update modifies a vehicle.
func (s *VehiclesService) Update(ctx context.Context, id int64, params VehicleParams) (*Vehicle, error) {
	var vehicle Vehicle
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/vehicles/%d", id), params, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Delete removes a vehicle with no planned or active trips.
func (s *VehiclesService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/vehicles/%d", id))
}
