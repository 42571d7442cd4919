package lab

import (
	"log/slog"
	"sync"
)

// Host mounts at most one lab. Every mount and unmount bumps the generation
// so frame callbacks scheduled for an earlier lab are refused.
type Host struct {
	mu       sync.Mutex
	registry *Registry
	active   *Lab
	gen      uint64
	log      *slog.Logger
}

func NewHost(r *Registry, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	return &Host{registry: r, log: log}
}

func (h *Host) Registry() *Registry { return h.registry }

// Mount replaces the active lab with a fresh instance of name.
func (h *Host) Mount(name string) (*Lab, uint64, error) {
	def, err := h.registry.Get(name)
	if err != nil {
		return nil, 0, err
	}
	l := New(def, h.log)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active != nil {
		h.active.Detach()
		h.log.Debug("lab unmounted", "lab", h.active.Name(), "generation", h.gen)
	}
	h.gen++
	h.active = l
	h.log.Debug("lab mounted", "lab", name, "generation", h.gen)
	return l, h.gen, nil
}

func (h *Host) Unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return
	}
	h.active.Detach()
	h.log.Debug("lab unmounted", "lab", h.active.Name(), "generation", h.gen)
	h.active = nil
	h.gen++
}

// Active returns the mounted lab and its generation, or nil.
func (h *Host) Active() (*Lab, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active, h.gen
}

// Frame advances the mounted lab if gen is still current. It reports false
// when the caller's lab has been unmounted or replaced.
func (h *Host) Frame(gen uint64, elapsed float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil || gen != h.gen {
		return false
	}
	h.active.Advance(elapsed)
	return true
}
