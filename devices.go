package loggerise

import (
	"context"
	"fmt"
	"time"
)

// DevicePlatform identifies the push-notification platform of a device.
type DevicePlatform string

const (
	DeviceIOS     DevicePlatform = "ios"
	DeviceAndroid DevicePlatform = "android"
)

// Device is a registered push-notification target for the authenticated
// user.
type Device struct {
	ID           int64          `json:"id"`
	Platform     DevicePlatform `json:"platform"`
	Name         string         `json:"name"`
	PushToken    string         `json:"push_token"`
	RegisteredAt time.Time      `json:"registered_at"`
}

// DeviceParams registers a device.
type DeviceParams struct {
	Platform  DevicePlatform `json:"platform"`
	Name      string         `json:"name"`
	PushToken string         `json:"push_token"`
}

// DevicesService manages the user's push-notification devices.
type DevicesService struct {
	c *Client
}

// List returns every device registered for the authenticated user.
func (s *DevicesService) List(ctx context.Context) ([]Device, error) {
	var out struct {
		Data []Device `json:"data"`
	}
	if err := s.c.get(ctx, "/api/v1/devices", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Register adds a device. Registering the same push token twice updates
// the existing record rather than duplicating it.
func (s *DevicesService) Register(ctx context.Context, params DeviceParams) (*Device, error) {
	var device Device
	if err := s.c.post(ctx, "/api/v1/devices", params, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// Unregister removes a device, stopping its push notifications.
func (s *DevicesService) Unregister(ctx context.Context, id int64) error {
	return s.c.del(ctx, fmt.Sprintf("/api/v1/devices/%d", id))
}
