package linear

// M4 is a column-major 4x4 matrix of float32.
type M4 [4][4]float32

// I4 returns the identity matrix.
func I4() (m M4) {
	for i := range m {
		m[i][i] = 1
	}
	return
}

// Mul returns m ⋅ n.
func (m M4) Mul(n M4) (p M4) {
	for c := range p {
		for r := range p[c] {
			for k := range 4 {
				p[c][r] += m[k][r] * n[c][k]
			}
		}
	}
	return
}

// TRS composes a translation, rotation and scale into a single matrix.
func TRS(t Vec3, r Quat, s Vec3) M4 {
	x, y, z, w := r[0], r[1], r[2], r[3]
	m := M4{
		{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0},
		{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0},
		{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0},
		{t[0], t[1], t[2], 1},
	}
	for c := range 3 {
		for r := range 3 {
			m[c][r] *= s[c]
		}
	}
	return m
}

// Translation returns the translation column of m.
func (m M4) Translation() Vec3 {
	return Vec3{m[3][0], m[3][1], m[3][2]}
}
