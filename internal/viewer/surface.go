package viewer

import (
	"encoding/json"
	"fmt"

	"github.com/docsight/docsight/internal/appstate"
)

// Geometry is the persisted window geometry: the terminal size the
// window was last rendered at.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ViewLayout is the persisted per-window layout: the visible columns and
// the cursor position.
type ViewLayout struct {
	Columns []string `json:"columns"`
	Cursor  int      `json:"cursor"`
}

// ViewSurface implements the appstate.Surface contract for the terminal
// viewer. The viewer mutates Geom and Layout live, so a capture at
// shutdown sees the final state without a separate sync step.
type ViewSurface struct {
	Geom   Geometry
	Layout ViewLayout
}

// NewViewSurface returns a surface with the default column layout.
func NewViewSurface() *ViewSurface {
	return &ViewSurface{
		Layout: ViewLayout{Columns: kindNames(DefaultColumns())},
	}
}

// CaptureGeometry encodes the terminal geometry as the opaque blob.
func (s *ViewSurface) CaptureGeometry() ([]byte, error) {
	return json.Marshal(s.Geom)
}

// CaptureLayout encodes the column/cursor layout as the opaque blob.
func (s *ViewSurface) CaptureLayout() ([]byte, error) {
	return json.Marshal(s.Layout)
}

// RestoreGeometry decodes a previously captured geometry blob.
func (s *ViewSurface) RestoreGeometry(blob []byte) error {
	var geom Geometry
	if err := json.Unmarshal(blob, &geom); err != nil {
		return fmt.Errorf("geometry blob: %w", err)
	}
	if geom.Width < 0 || geom.Height < 0 {
		return fmt.Errorf("geometry blob: negative size %dx%d", geom.Width, geom.Height)
	}
	s.Geom = geom
	return nil
}

// RestoreLayout decodes a previously captured layout blob. Unknown
// column names are dropped so a layout from a newer version restores
// what it can.
func (s *ViewSurface) RestoreLayout(blob []byte) error {
	var layout ViewLayout
	if err := json.Unmarshal(blob, &layout); err != nil {
		return fmt.Errorf("layout blob: %w", err)
	}
	layout.Columns = knownKindNames(layout.Columns)
	if layout.Cursor < 0 {
		layout.Cursor = 0
	}
	if len(layout.Columns) == 0 {
		layout.Columns = kindNames(DefaultColumns())
	}
	s.Layout = layout
	return nil
}

// SurfaceRegistry hands out one ViewSurface per window index, letting
// the application state construct windows before the viewer runs.
type SurfaceRegistry struct {
	surfaces map[int]*ViewSurface
}

// NewSurfaceRegistry creates an empty registry.
func NewSurfaceRegistry() *SurfaceRegistry {
	return &SurfaceRegistry{surfaces: make(map[int]*ViewSurface)}
}

// Surface returns the surface for a window index, creating it on first
// use. It satisfies appstate.SurfaceFactory.
func (r *SurfaceRegistry) Surface(index int) appstate.Surface {
	return r.Get(index)
}

// Get returns the concrete surface for a window index.
func (r *SurfaceRegistry) Get(index int) *ViewSurface {
	if s, ok := r.surfaces[index]; ok {
		return s
	}
	s := NewViewSurface()
	r.surfaces[index] = s
	return s
}
