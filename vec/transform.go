package vec

// Translate builds the homogeneous translation matrix (spec.md §6 translate).
func Translate(vx, vy, vz float32) Mat4 {
	return Mat4Translation(Vec3{vx, vy, vz})
}

// Scale builds the homogeneous scale matrix (spec.md §6 scale).
func Scale(sx, sy, sz float32) Mat4 {
	return Mat4Scale(Vec3{sx, sy, sz})
}

// RotateAxis builds the rotation of theta radians about axis (spec.md §6
// rotate_axis).
func RotateAxis(axis Vec3, theta float32) Mat4 {
	return Mat4RotationAxis(axis, theta)
}

func RotateX(theta float32) Mat4 { return Mat4RotationX(theta) }
func RotateY(theta float32) Mat4 { return Mat4RotationY(theta) }
func RotateZ(theta float32) Mat4 { return Mat4RotationZ(theta) }

// RotateXYZ composes the Rz . Ry . Rx rotation (spec.md §6 rotatexyz).
func RotateXYZ(alpha, beta, gamma float32) Mat4 {
	return Mat4RotationXYZ(alpha, beta, gamma)
}

// Cross computes the homogeneous cross product of two w=0 direction
// vectors (spec.md §6 cross).
func Cross(u, v Vec4) Vec4 {
	return Cross4(u, v)
}
