// Package linear implements the small amount of 3D math the scene core needs.
package linear

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Vec3 is a 3-component vector of float32.
type Vec3 [3]float32

// Zero3 and One3 are the usual defaults for positions and scales.
var (
	Zero3 = Vec3{}
	One3  = Vec3{1, 1, 1}
	Up    = Vec3{0, 1, 0}
)

// Add returns v + w.
func (v Vec3) Add(w Vec3) (u Vec3) {
	for i := range u {
		u[i] = v[i] + w[i]
	}
	return
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) (u Vec3) {
	for i := range u {
		u[i] = v[i] - w[i]
	}
	return
}

// Scale returns s ⋅ v.
func (v Vec3) Scale(s float32) (u Vec3) {
	for i := range u {
		u[i] = s * v[i]
	}
	return
}

// Mul returns the component-wise product of v and w.
func (v Vec3) Mul(w Vec3) (u Vec3) {
	for i := range u {
		u[i] = v[i] * w[i]
	}
	return
}

// Dot returns v ⋅ w.
func (v Vec3) Dot(w Vec3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Cross returns v × w.
func (v Vec3) Cross(w Vec3) (u Vec3) {
	u[0] = v[1]*w[2] - v[2]*w[1]
	u[1] = v[2]*w[0] - v[0]*w[2]
	u[2] = v[0]*w[1] - v[1]*w[0]
	return
}

// Len returns the length of v.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Norm returns v normalized. The zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// String formats v as space separated components, the form used in property tables.
func (v Vec3) String() string {
	return formatFloats(v[:])
}

// ParseVec3 parses three float components separated by spaces and/or commas.
func ParseVec3(s string) (Vec3, error) {
	var v Vec3
	err := parseFloats(s, v[:])
	return v, err
}

func formatFloats(fs []float32) string {
	var sb strings.Builder
	for i, f := range fs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	return sb.String()
}

func parseFloats(s string, dst []float32) error {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '(' || r == ')'
	})
	if len(fields) != len(dst) {
		return fmt.Errorf("linear: want %d components, got %d in %q", len(dst), len(fields), s)
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return fmt.Errorf("linear: component %d: %w", i, err)
		}
		dst[i] = float32(x)
	}
	return nil
}
