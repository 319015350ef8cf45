package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	inventory "fleetdesk/internal/inventory/domain"
)

// DeviceRepository is an in-memory repository for devices.
type DeviceRepository struct {
	mu   sync.RWMutex
	data map[string]inventory.Device
}

// NewDeviceRepository constructs a repository.
func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{data: make(map[string]inventory.Device)}
}

// Get loads a device by id.
func (r *DeviceRepository) Get(ctx context.Context, id string) (*inventory.Device, error) {
	_ = ctx
	r.mu.RLock()
	device, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &device, nil
}

// List returns the full snapshot ordered by id.
func (r *DeviceRepository) List(ctx context.Context) ([]inventory.Device, error) {
	_ = ctx
	r.mu.RLock()
	result := make([]inventory.Device, 0, len(r.data))
	for _, device := range r.data {
		result = append(result, device)
	}
	r.mu.RUnlock()
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SearchPrefix returns devices whose model or department starts with the
// given prefix, case-insensitively.
func (r *DeviceRepository) SearchPrefix(ctx context.Context, prefix string) ([]inventory.Device, error) {
	devices, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return devices, nil
	}
	needle := strings.ToLower(prefix)
	var result []inventory.Device
	for _, device := range devices {
		if strings.HasPrefix(strings.ToLower(device.DeviceModel), needle) ||
			strings.HasPrefix(strings.ToLower(device.Department), needle) {
			result = append(result, device)
		}
	}
	return result, nil
}

// Save upserts a device.
func (r *DeviceRepository) Save(ctx context.Context, device *inventory.Device) error {
	_ = ctx
	if device == nil {
		return errors.New("device repo: nil device")
	}
	if err := device.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = now
	}
	device.UpdatedAt = now
	r.mu.Lock()
	r.data[device.ID] = *device
	r.mu.Unlock()
	return nil
}

// Delete removes a device by id.
func (r *DeviceRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	delete(r.data, id)
	r.mu.Unlock()
	return nil
}
