package inventory

import (
	"context"
	"errors"
	"time"
)

// DeviceType classifies the physical form factor of a device.
type DeviceType string

const (
	DeviceTypeLaptop  DeviceType = "Laptop"
	DeviceTypeDesktop DeviceType = "Desktop"
	DeviceTypeTablet  DeviceType = "Tablet"
	DeviceTypePhone   DeviceType = "Phone"
)

// Status is the operational state of a device.
type Status string

const (
	StatusWorking     Status = "Working"
	StatusBroken      Status = "Broken"
	StatusNeedsRepair Status = "Needs Repair"
)

// Device represents a staff-assigned computing asset.
//
// Department is an opaque label administered dynamically, never a closed
// set. Model, OperatingSystem, RAM, Processor, Storage and Graphics are
// free-form descriptive strings; downstream classification of those fields
// is best-effort.
type Device struct {
	ID              string     `json:"id"`
	Department      string     `json:"department"`
	DeviceType      DeviceType `json:"device_type"`
	DeviceModel     string     `json:"device_model"`
	OperatingSystem string     `json:"operating_system"`
	Status          Status     `json:"status"`
	RAM             string     `json:"ram"`
	Processor       string     `json:"processor"`
	Storage         string     `json:"storage"`
	Graphics        string     `json:"graphics"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Validate checks device invariants.
func (d Device) Validate() error {
	if d.ID == "" {
		return errors.New("device: empty id")
	}
	if d.Department == "" {
		return errors.New("device: empty department")
	}
	if !d.DeviceType.Valid() {
		return errors.New("device: invalid device type")
	}
	if !d.Status.Valid() {
		return errors.New("device: invalid status")
	}
	return nil
}

// Valid returns true when the device type is supported.
func (t DeviceType) Valid() bool {
	switch t {
	case DeviceTypeLaptop, DeviceTypeDesktop, DeviceTypeTablet, DeviceTypePhone:
		return true
	default:
		return false
	}
}

// Valid returns true when the status is supported.
func (s Status) Valid() bool {
	switch s {
	case StatusWorking, StatusBroken, StatusNeedsRepair:
		return true
	default:
		return false
	}
}

// Repository manages device persistence.
type Repository interface {
	Get(ctx context.Context, id string) (*Device, error)
	List(ctx context.Context) ([]Device, error)
	SearchPrefix(ctx context.Context, prefix string) ([]Device, error)
	Save(ctx context.Context, device *Device) error
	Delete(ctx context.Context, id string) error
}
