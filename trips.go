package loggerise

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripPlanned   TripStatus = "planned"
	TripEnRoute   TripStatus = "en_route"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Trip is one vehicle journey carrying assigned loads. Trips move through
// planned, en_route, and completed; transitions happen via
// [TripsService.Start] and [TripsService.Complete].
type Trip struct {
	ID        int64      `json:"id"`
	Reference string     `json:"reference"`
	Status    TripStatus `json:"status"`

	VehicleID int64 `json:"vehicle_id"`

	// DriverID is nil for trips without an assigned driver.
	DriverID   *int64 `json:"driver_id"`
	DriverName string `json:"driver_name,omitempty"`

	DepartureAt time.Time `json:"departure_at"`

	// ArrivalAt is nil until the trip completes.
	ArrivalAt *time.Time `json:"arrival_at"`

	DistanceKm float64 `json:"distance_km"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripParams creates or updates a trip.
type TripParams struct {
	VehicleID   int64      `json:"vehicle_id,omitempty"`
	DriverID    *int64     `json:"driver_id,omitempty"`
	DepartureAt *time.Time `json:"departure_at,omitempty"`
	DistanceKm  float64    `json:"distance_km,omitempty"`
}

// TripListParams filter [TripsService.List].
type TripListParams struct {
	ListParams

	Status    TripStatus
	VehicleID int64
}

func (p TripListParams) values() url.Values {
	q := p.ListParams.values()
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.VehicleID > 0 {
		q.Set("vehicle_id", strconv.FormatInt(p.VehicleID, 10))
	}
	return q
}

// Message is one entry in a trip's message thread, shared between drivers
// and dispatchers. Messages also arrive live over the realtime connection;
// see [ParseMessageEvent].
type Message struct {
	ID         int64     `json:"id"`
	TripID     int64     `json:"trip_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

// TripsService manages trips and their message threads.
type TripsService struct {
	c *Client
}

// List returns one page of trips matching params.
func (s *TripsService) List(ctx context.Context, params TripListParams) (*Page[Trip], error) {
	var page Page[Trip]
	if err := s.c.get(ctx, "/api/v1/trips", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single trip by id.
func (s *TripsService) Get(ctx context.Context, id int64) (*Trip, error) {
	var trip Trip
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/trips/%d", id), nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Create plans a new trip on a vehicle.
func (s *TripsService) Create(ctx context.Context, params TripParams) (*Trip, error) {
	var trip Trip
	if err := s.c.post(ctx, "/api/v1/trips", params, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Update modifies a planned trip.
func (s *TripsService) Update(ctx context.Context, id int64, params TripParams) (*Trip, error) {
	var trip Trip
	if err := s.c.put(ctx, fmt.Sprintf("/api/v1/trips/%d", id), params, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Delete removes a planned trip. Loads assigned to it fall back to
// [LoadPending].
func (s *TripsService) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/trips/%d", id))
}

// Start moves a planned trip to [TripEnRoute]. Starting a trip in any
// other state returns a validation error.
func (s *TripsService) Start(ctx context.Context, id int64) (*Trip, error) {
	var trip Trip
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/trips/%d/start", id), nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Complete moves an en_route trip to [TripCompleted], stamping its arrival
// time and marking its loads delivered.
func (s *TripsService) Complete(ctx context.Context, id int64) (*Trip, error) {
	var trip Trip
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/trips/%d/complete", id), nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Messages returns one page of the trip's message thread, newest first.
func (s *TripsService) Messages(ctx context.Context, tripID int64, params ListParams) (*Page[Message], error) {
	var page Page[Message]
	if err := s.c.get(ctx, fmt.Sprintf("/api/v1/trips/%d/messages", tripID), params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SendMessage appends to the trip's message thread. The message fans out
// to other participants over the realtime connection.
func (s *TripsService) SendMessage(ctx context.Context, tripID int64, body string) (*Message, error) {
	in := struct {
		Body string `json:"body"`
	}{Body: body}

	var msg Message
	if err := s.c.post(ctx, fmt.Sprintf("/api/v1/trips/%d/messages", tripID), in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
