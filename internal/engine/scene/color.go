package scene

import "fmt"

// Color is a 24-bit RGB color in 0xRRGGBB form. It doubles as a cache key.
type Color uint32

// Common colors.
const (
	ColorBlack Color = 0x000000
	ColorWhite Color = 0xffffff
	ColorRed   Color = 0xff0000
	ColorGreen Color = 0x00ff00
	ColorBlue  Color = 0x0000ff
	ColorGray  Color = 0x888888
)

// RGB returns the color as normalized float components.
func (c Color) RGB() (r, g, b float32) {
	return float32((c>>16)&0xff) / 255, float32((c>>8)&0xff) / 255, float32(c&0xff) / 255
}

// ColorFromRGB builds a color from normalized components, clamping to [0, 1].
func ColorFromRGB(r, g, b float32) Color {
	return Color(channel(r)<<16 | channel(g)<<8 | channel(b))
}

func channel(v float32) uint32 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint32(v*255 + 0.5)
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}
