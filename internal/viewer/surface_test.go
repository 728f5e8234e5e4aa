package viewer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewSurfaceGeometryRoundTrip(t *testing.T) {
	surface := NewViewSurface()
	surface.Geom = Geometry{Width: 120, Height: 40}

	blob, err := surface.CaptureGeometry()
	require.NoError(t, err)

	restored := NewViewSurface()
	require.NoError(t, restored.RestoreGeometry(blob))
	require.Equal(t, surface.Geom, restored.Geom)
}

func TestRestoreGeometryRejectsBadBlobs(t *testing.T) {
	surface := NewViewSurface()

	require.Error(t, surface.RestoreGeometry([]byte("not json")))
	require.Error(t, surface.RestoreGeometry([]byte(`{"width": -1, "height": 40}`)))
	require.Equal(t, Geometry{}, surface.Geom)
}

func TestViewSurfaceLayoutRoundTrip(t *testing.T) {
	surface := NewViewSurface()
	surface.Layout = ViewLayout{Columns: []string{"num", "text", "bold"}, Cursor: 7}

	blob, err := surface.CaptureLayout()
	require.NoError(t, err)

	restored := NewViewSurface()
	require.NoError(t, restored.RestoreLayout(blob))
	require.Equal(t, 7, restored.Layout.Cursor)
	require.Equal(t, []string{"num", "text", "bold"}, restored.Layout.Columns)
}

func TestRestoreLayoutDropsUnknownColumns(t *testing.T) {
	surface := NewViewSurface()

	require.NoError(t, surface.RestoreLayout([]byte(`{"columns": ["num", "hologram", "text"], "cursor": 2}`)))
	require.Equal(t, []string{"num", "text"}, surface.Layout.Columns)
}

func TestRestoreLayoutFallsBackToDefaults(t *testing.T) {
	surface := NewViewSurface()

	require.NoError(t, surface.RestoreLayout([]byte(`{"columns": ["hologram"], "cursor": -5}`)))
	require.Equal(t, kindNames(DefaultColumns()), surface.Layout.Columns)
	require.Equal(t, 0, surface.Layout.Cursor)
}

func TestSurfaceRegistryReturnsStableSurfaces(t *testing.T) {
	registry := NewSurfaceRegistry()

	first := registry.Get(0)
	second := registry.Get(1)
	require.NotSame(t, first, second)

	// The factory view and the concrete view are the same object.
	require.Same(t, first, registry.Surface(0).(*ViewSurface))
	require.Same(t, first, registry.Get(0))
}

func TestNewViewSurfaceStartsWithDefaultColumns(t *testing.T) {
	surface := NewViewSurface()
	require.Equal(t, []string{"num", "name", "text", "type"}, surface.Layout.Columns)
}
