package mapview

import (
	"context"
	"sync"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/geocode"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// Locator is the geocoding surface the map needs.
type Locator interface {
	GeocodeAll(ctx context.Context, plan *types.TripPlan) geocode.BatchResult
	Locate(ctx context.Context, address string) (*types.LatLng, error)
}

var _ Locator = (*geocode.Service)(nil)

// LoadFunc builds the mapping client. It returns
// types.ErrMissingMapsCredential when no key is configured.
type LoadFunc func(ctx context.Context) (Locator, error)

// Loader runs LoadFunc at most once. Each Load call gets its own channel
// that is closed when loading has finished, so there is no shared callback
// to register or tear down.
type Loader struct {
	load LoadFunc

	once    sync.Once
	done    chan struct{}
	locator Locator
	err     error
}

func NewLoader(load LoadFunc) *Loader {
	return &Loader{
		load: load,
		done: make(chan struct{}),
	}
}

// Load starts loading on first use. The returned channel is closed once
// Result is valid.
func (l *Loader) Load(ctx context.Context) <-chan struct{} {
	l.once.Do(func() {
		// Detached so a cancelled first caller does not poison later ones.
		loadCtx := context.WithoutCancel(ctx)
		go func() {
			defer close(l.done)
			l.locator, l.err = l.load(loadCtx)
		}()
	})
	ready := make(chan struct{})
	go func() {
		defer close(ready)
		select {
		case <-l.done:
		case <-ctx.Done():
		}
	}()
	return ready
}

// Result reports the outcome of the load. It must only be called after a
// channel from Load has closed and Done reports true.
func (l *Loader) Result() (Locator, error) {
	return l.locator, l.err
}

func (l *Loader) Done() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Wait blocks until loading finishes or ctx ends.
func (l *Loader) Wait(ctx context.Context) (Locator, error) {
	<-l.Load(ctx)
	if !l.Done() {
		return nil, ctx.Err()
	}
	return l.Result()
}
