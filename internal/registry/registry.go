package registry

import (
	"classifier-backend/internal/core"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidValue = errors.New("invalid registry value")

type Slot string

const (
	TrainedModelSlot Slot = "trained_model"
	PickledModelSlot Slot = "pickled_model"
)

// ModelRecord is the content of the trained_model slot.
type ModelRecord struct {
	Classifier       core.Trainable
	LastTrainTimeUTC time.Time
	SamplesUsed      int
}

// Registry holds the models currently served by the process. Values are only
// ever replaced wholesale, so a reader observes either the previous or the new
// value. The lock covers single map accesses; it does not serialize workflows.
type Registry struct {
	mu      sync.RWMutex
	entries map[Slot]any
}

func New() *Registry {
	return &Registry{entries: make(map[Slot]any)}
}

func (r *Registry) Exists(slot Slot) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[slot]
	return ok
}

func (r *Registry) Get(slot Slot) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[slot]
	return value, ok
}

// Set stores value in slot. The value must match the slot's type: a
// ModelRecord for the trained slot and a core.Model for the pickled slot.
func (r *Registry) Set(slot Slot, value any) error {
	switch slot {
	case TrainedModelSlot:
		if _, ok := value.(ModelRecord); !ok {
			return fmt.Errorf("%w: slot '%s' expects a model record, got %T", ErrInvalidValue, slot, value)
		}
	case PickledModelSlot:
		if model, ok := value.(core.Model); !ok || model == nil {
			return fmt.Errorf("%w: slot '%s' expects a model, got %T", ErrInvalidValue, slot, value)
		}
	default:
		return fmt.Errorf("%w: unknown slot '%s'", ErrInvalidValue, slot)
	}

	r.set(slot, value)
	return nil
}

func (r *Registry) set(slot Slot, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[slot] = value
}

func (r *Registry) Trained() (ModelRecord, bool) {
	value, ok := r.Get(TrainedModelSlot)
	if !ok {
		return ModelRecord{}, false
	}
	record, ok := value.(ModelRecord)
	return record, ok
}

func (r *Registry) SetTrained(record ModelRecord) {
	r.set(TrainedModelSlot, record)
}

func (r *Registry) Pickled() (core.Model, bool) {
	value, ok := r.Get(PickledModelSlot)
	if !ok {
		return nil, false
	}
	model, ok := value.(core.Model)
	return model, ok
}

func (r *Registry) SetPickled(model core.Model) {
	r.set(PickledModelSlot, model)
}
