package planner

import (
	"sync"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/mapview"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// Session is the planner state of one browser.
type Session struct {
	mu        sync.Mutex
	clientID  uuid.UUID
	plan      *types.TripPlan
	isLoading bool
	err       string

	notifier *Notifier
	view     *mapview.View
}

// Snapshot is the read-only view of a Session returned to clients.
type Snapshot struct {
	Plan           *types.TripPlan     `json:"plan"`
	IsLoading      bool                `json:"isLoading"`
	Error          string              `json:"error,omitempty"`
	Notification   *types.Notification `json:"notification"`
	Map            mapview.Status      `json:"map"`
	AIConfigured   bool                `json:"aiConfigured"`
	MapsConfigured bool                `json:"mapsConfigured"`
	ConfigWarnings []string            `json:"configWarnings"`
}

func (s *Session) currentPlan() *types.TripPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

func (s *Session) setPlan(plan *types.TripPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan
}

func (s *Session) close() {
	s.notifier.Clear()
}
