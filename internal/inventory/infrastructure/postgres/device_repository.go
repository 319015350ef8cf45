package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	inventory "fleetdesk/internal/inventory/domain"
)

// DBTX abstracts *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const defaultDevicesTable = "devices"

const deviceColumns = `id, department, device_type, device_model, operating_system, status,
ram, processor, storage, graphics, notes, created_at, updated_at`

// DeviceRepository is a Postgres implementation for devices.
type DeviceRepository struct {
	db    DBTX
	table string
}

// NewDeviceRepository constructs a repository.
func NewDeviceRepository(db DBTX, opts ...DeviceOption) *DeviceRepository {
	repo := &DeviceRepository{db: db, table: defaultDevicesTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// DeviceOption configures the repository.
type DeviceOption func(*DeviceRepository)

// WithDeviceTable overrides the default table name.
func WithDeviceTable(table string) DeviceOption {
	return func(repo *DeviceRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Get loads a device by id.
func (r *DeviceRepository) Get(ctx context.Context, id string) (*inventory.Device, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("device repo: nil db")
	}
	if id == "" {
		return nil, errors.New("device repo: empty id")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE id = $1
LIMIT 1`, deviceColumns, r.table)

	device, err := scanDevice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return device, nil
}

// List loads the full device snapshot.
func (r *DeviceRepository) List(ctx context.Context) ([]inventory.Device, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("device repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
ORDER BY id ASC`, deviceColumns, r.table)
	return r.queryDevices(ctx, query)
}

// SearchPrefix loads devices whose model or department starts with the
// given prefix, case-insensitively.
func (r *DeviceRepository) SearchPrefix(ctx context.Context, prefix string) ([]inventory.Device, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("device repo: nil db")
	}
	if prefix == "" {
		return r.List(ctx)
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE device_model ILIKE $1 OR department ILIKE $1
ORDER BY id ASC`, deviceColumns, r.table)
	return r.queryDevices(ctx, query, prefix+"%")
}

// Save upserts a device.
func (r *DeviceRepository) Save(ctx context.Context, device *inventory.Device) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	if device == nil {
		return errors.New("device repo: nil device")
	}
	if err := device.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	department,
	device_type,
	device_model,
	operating_system,
	status,
	ram,
	processor,
	storage,
	graphics,
	notes
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
)
ON CONFLICT (id)
DO UPDATE SET
	department = EXCLUDED.department,
	device_type = EXCLUDED.device_type,
	device_model = EXCLUDED.device_model,
	operating_system = EXCLUDED.operating_system,
	status = EXCLUDED.status,
	ram = EXCLUDED.ram,
	processor = EXCLUDED.processor,
	storage = EXCLUDED.storage,
	graphics = EXCLUDED.graphics,
	notes = EXCLUDED.notes,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(
		ctx,
		query,
		device.ID,
		device.Department,
		string(device.DeviceType),
		device.DeviceModel,
		device.OperatingSystem,
		string(device.Status),
		device.RAM,
		device.Processor,
		device.Storage,
		device.Graphics,
		device.Notes,
	)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = now
	}
	device.UpdatedAt = now
	return nil
}

// Delete removes a device by id.
func (r *DeviceRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	if id == "" {
		return errors.New("device repo: empty id")
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *DeviceRepository) queryDevices(ctx context.Context, query string, args ...any) ([]inventory.Device, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []inventory.Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *device)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(row rowScanner) (*inventory.Device, error) {
	var device inventory.Device
	var deviceType, status string
	if err := row.Scan(
		&device.ID,
		&device.Department,
		&deviceType,
		&device.DeviceModel,
		&device.OperatingSystem,
		&status,
		&device.RAM,
		&device.Processor,
		&device.Storage,
		&device.Graphics,
		&device.Notes,
		&device.CreatedAt,
		&device.UpdatedAt,
	); err != nil {
		return nil, err
	}
	device.DeviceType = inventory.DeviceType(deviceType)
	device.Status = inventory.Status(status)
	device.CreatedAt = device.CreatedAt.UTC()
	device.UpdatedAt = device.UpdatedAt.UTC()
	return &device, nil
}
