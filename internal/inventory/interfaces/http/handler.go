package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"fleetdesk/internal/audit"
	"fleetdesk/internal/auth"
	inventory "fleetdesk/internal/inventory/domain"
	"fleetdesk/internal/observability/metrics"
)

// SnapshotRefresher is notified after every fleet mutation so derived
// analytics can be recomputed from the new snapshot.
type SnapshotRefresher interface {
	Refresh(ctx context.Context)
}

// Handler serves device inventory CRUD and prefix search.
type Handler struct {
	repo        inventory.Repository
	auditLogger audit.Logger
	refresher   SnapshotRefresher
}

// NewHandler constructs a Handler.
func NewHandler(repo inventory.Repository, auditLogger audit.Logger, refresher SnapshotRefresher) (*Handler, error) {
	if repo == nil {
		return nil, errors.New("inventory handler: nil repository")
	}
	return &Handler{repo: repo, auditLogger: auditLogger, refresher: refresher}, nil
}

// ServeHTTP routes inventory requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.repo == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	if r.URL.Path == "/api/v1/devices" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/devices/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		devices []inventory.Device
		err     error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		devices, err = h.repo.SearchPrefix(r.Context(), q)
	} else {
		devices, err = h.repo.List(r.Context())
	}
	if err != nil {
		http.Error(w, "list devices error", http.StatusInternalServerError)
		return
	}
	if department := r.URL.Query().Get("department"); department != "" {
		filtered := devices[:0]
		for _, device := range devices {
			if device.Department == department {
				filtered = append(filtered, device)
			}
		}
		devices = filtered
	}
	if devices == nil {
		devices = []inventory.Device{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(devices)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	device, err := h.repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "get device error", http.StatusInternalServerError)
		return
	}
	if device == nil {
		http.Error(w, "device not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(device)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var device inventory.Device
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if device.ID == "" {
		device.ID = uuid.NewString()
	}
	if err := h.repo.Save(r.Context(), &device); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(device)
	metrics.IncDeviceMutation("create")
	h.logAudit(r, device, "device.create")
	h.refresh(r.Context())
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	existing, err := h.repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "get device error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "device not found", http.StatusNotFound)
		return
	}

	var device inventory.Device
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	device.ID = id
	device.CreatedAt = existing.CreatedAt
	if err := h.repo.Save(r.Context(), &device); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(device)
	metrics.IncDeviceMutation("update")
	h.logAudit(r, device, "device.update")
	h.refresh(r.Context())
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	existing, err := h.repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "get device error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "device not found", http.StatusNotFound)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		http.Error(w, "delete device error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	metrics.IncDeviceMutation("delete")
	h.logAudit(r, *existing, "device.delete")
	h.refresh(r.Context())
}

func (h *Handler) refresh(ctx context.Context) {
	if h.refresher != nil {
		h.refresher.Refresh(ctx)
	}
}

func (h *Handler) logAudit(r *http.Request, device inventory.Device, action string) {
	if h.auditLogger == nil {
		return
	}
	metadata, _ := json.Marshal(map[string]any{
		"device_type": device.DeviceType,
		"status":      device.Status,
	})
	entry := audit.Entry{
		TenantID:     auth.TenantIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "device",
		ResourceID:   device.ID,
		Department:   device.Department,
		Metadata:     metadata,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}
