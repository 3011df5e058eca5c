package renderer

// Surface is the default framebuffer of the current GL context. Size is in
// logical pixels; the drawable size is scaled by the pixel ratio.
type Surface struct {
	width      int
	height     int
	pixelRatio float32
}

// Size returns the logical size.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// SetSize sets the logical size.
func (s *Surface) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// PixelRatio returns the drawable to logical size ratio.
func (s *Surface) PixelRatio() float32 {
	return s.pixelRatio
}

// SetPixelRatio sets the drawable to logical size ratio.
func (s *Surface) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	s.pixelRatio = ratio
}

// DrawableSize returns the size in device pixels.
func (s *Surface) DrawableSize() (int, int) {
	return int(float32(s.width) * s.pixelRatio), int(float32(s.height) * s.pixelRatio)
}
