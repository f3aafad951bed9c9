package mapview

import (
	"fmt"
	"sync"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// InfoContent is what a marker popup shows.
type InfoContent struct {
	Title        string `json:"title"`
	LocationName string `json:"locationName"`
	Time         string `json:"time,omitempty"`
	MapURL       string `json:"mapUrl"`
}

type Marker struct {
	Index    int                `json:"index"`
	Position types.LatLng       `json:"position"`
	Title    string             `json:"title"`
	Color    string             `json:"color"`
	Day      int                `json:"day"`
	Type     types.LocationType `json:"type"`
	Info     InfoContent        `json:"info"`
}

type Polyline struct {
	Day   int            `json:"day"`
	Color string         `json:"color"`
	Path  []types.LatLng `json:"path"`
}

// Viewport is either a centre and zoom or a bounding box with padding.
type Viewport struct {
	Center  *types.LatLng `json:"center,omitempty"`
	Zoom    int           `json:"zoom,omitempty"`
	Bounds  *types.Bounds `json:"bounds,omitempty"`
	Padding int           `json:"padding,omitempty"`
}

// Scene is the full drawable state of one map.
type Scene struct {
	Markers   []Marker   `json:"markers"`
	Polylines []Polyline `json:"polylines"`
	Viewport  Viewport   `json:"viewport"`
	OpenInfo  *int       `json:"openInfo"`
}

// Canvas is the drawing surface a View renders onto.
type Canvas interface {
	Clear()
	AddMarker(m Marker)
	AddPolyline(p Polyline)
	SetCenter(center types.LatLng, zoom int)
	FitBounds(b types.Bounds, padding int)
	OpenInfo(index int) error
	Scene() Scene
}

var _ Canvas = (*SceneCanvas)(nil)

// SceneCanvas records drawing calls into a Scene that clients render.
type SceneCanvas struct {
	mu    sync.RWMutex
	scene Scene
}

func NewSceneCanvas() *SceneCanvas {
	return &SceneCanvas{scene: Scene{Markers: []Marker{}, Polylines: []Polyline{}}}
}

// Clear removes markers and lines and closes the popup. The viewport stays.
func (c *SceneCanvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Markers = []Marker{}
	c.scene.Polylines = []Polyline{}
	c.scene.OpenInfo = nil
}

func (c *SceneCanvas) AddMarker(m Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m.Index = len(c.scene.Markers)
	c.scene.Markers = append(c.scene.Markers, m)
}

func (c *SceneCanvas) AddPolyline(p Polyline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Polylines = append(c.scene.Polylines, p)
}

func (c *SceneCanvas) SetCenter(center types.LatLng, zoom int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Viewport = Viewport{Center: &center, Zoom: zoom}
}

func (c *SceneCanvas) FitBounds(b types.Bounds, padding int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Viewport = Viewport{Bounds: &b, Padding: padding}
}

func (c *SceneCanvas) OpenInfo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.scene.Markers) {
		return fmt.Errorf("%w: marker %d", types.ErrNotFound, index)
	}
	c.scene.OpenInfo = &index
	return nil
}

// Scene returns a copy safe to marshal while rendering continues.
func (c *SceneCanvas) Scene() Scene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := Scene{
		Markers:   append([]Marker(nil), c.scene.Markers...),
		Polylines: make([]Polyline, len(c.scene.Polylines)),
		Viewport:  c.scene.Viewport,
	}
	if out.Markers == nil {
		out.Markers = []Marker{}
	}
	for i, p := range c.scene.Polylines {
		p.Path = append([]types.LatLng(nil), p.Path...)
		out.Polylines[i] = p
	}
	if c.scene.OpenInfo != nil {
		idx := *c.scene.OpenInfo
		out.OpenInfo = &idx
	}
	return out
}
