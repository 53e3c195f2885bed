package scrollstage

import "math"

// Mat4 is a 4×4 matrix stored row-major. Points are column vectors, so a
// transform applied after m is written Mat4Mul(next, m).
type Mat4 [16]float64

// identityMatrix is the identity 4×4 matrix.
var identityMatrix = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulPoint transforms a 3D point (w=1) by the matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// MulDir transforms a direction (w=0) by the matrix, ignoring translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// eulerXYZ builds the rotation matrix Rx·Ry·Rz for Euler angles in radians.
// This is the intrinsic X-then-Y-then-Z order used by most 3D scene graphs.
func eulerXYZ(r Vec3) Mat4 {
	sx, cx := math.Sincos(r.X)
	sy, cy := math.Sincos(r.Y)
	sz, cz := math.Sincos(r.Z)
	return Mat4{
		cy * cz, -cy * sz, sy, 0,
		cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy, 0,
		sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy, 0,
		0, 0, 0, 1,
	}
}

// composeTRS builds T·R·S for a translation, Euler rotation, and scale.
func composeTRS(t, r, s Vec3) Mat4 {
	m := eulerXYZ(r)
	m[0] *= s.X
	m[4] *= s.X
	m[8] *= s.X
	m[1] *= s.Y
	m[5] *= s.Y
	m[9] *= s.Y
	m[2] *= s.Z
	m[6] *= s.Z
	m[10] *= s.Z
	m[3] = t.X
	m[7] = t.Y
	m[11] = t.Z
	return m
}

// lookAt builds a right-handed view matrix with the camera at eye facing
// target. In view space the camera looks down -Z.
func lookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	if f == (Vec3{}) {
		f = Vec3{0, 0, -1}
	}
	s := f.Cross(up).Normalize()
	if s == (Vec3{}) {
		s = Vec3{1, 0, 0}
	}
	u := s.Cross(f)
	return Mat4{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	}
}
