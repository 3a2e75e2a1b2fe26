package linear

// Color is a linear RGBA color.
type Color [4]float32

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// String formats c as "r g b a".
func (c Color) String() string {
	return formatFloats(c[:])
}

// ParseColor parses four float components. Three components are accepted
// as an opaque color.
func ParseColor(s string) (Color, error) {
	var c Color
	if err := parseFloats(s, c[:]); err != nil {
		var rgb [3]float32
		if parseFloats(s, rgb[:]) != nil {
			return c, err
		}
		return Color{rgb[0], rgb[1], rgb[2], 1}, nil
	}
	return c, nil
}
