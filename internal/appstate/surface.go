package appstate

// Surface is the window-geometry/state capture contract provided by the
// UI layer. The blobs are opaque to the state machinery; they are base64
// encoded only at the persistence boundary.
type Surface interface {
	// CaptureGeometry returns the current window geometry as an opaque
	// blob.
	CaptureGeometry() ([]byte, error)

	// CaptureLayout returns the current window layout state as an
	// opaque blob.
	CaptureLayout() ([]byte, error)

	// RestoreGeometry applies a previously captured geometry blob.
	RestoreGeometry(blob []byte) error

	// RestoreLayout applies a previously captured layout blob.
	RestoreLayout(blob []byte) error
}

// NopSurface is a Surface that captures nothing and restores nothing.
// Used when no UI is attached, such as in headless listing mode.
type NopSurface struct{}

func (NopSurface) CaptureGeometry() ([]byte, error) { return nil, nil }
func (NopSurface) CaptureLayout() ([]byte, error)   { return nil, nil }
func (NopSurface) RestoreGeometry([]byte) error     { return nil }
func (NopSurface) RestoreLayout([]byte) error       { return nil }
