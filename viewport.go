// Copyright © 2026 Orrery contributors.

package orrery

// Viewport is the thin slice of the enclosing application's camera/display
// state the core actually consumes: the inclusive 3D axis-aligned bounding
// box used by the reflective boundary pass (§4.7) when World.ClosedBoundaries
// is true. Everything else on Viewport (Scale, Autocenter, camera angles) is
// opaque to the core — it is carried only so the persisted state format
// (§6) round-trips the enclosing application's camera settings untouched.
type Viewport struct {
	TopLeft     Vector3D
	BottomRight Vector3D

	Scale       float64
	Autocenter  bool
	CameraYaw   float64 `json:"CameraYaw,omitempty"`
	CameraPitch float64 `json:"CameraPitch,omitempty"`
}

// reflectBoundary clamps position into the viewport's inclusive box and
// flips the velocity component across any face that was crossed. Each of
// the six faces is handled independently (§4.7): a body clipping two faces
// at once bounces off both in the same call.
func (vp Viewport) reflectBoundary(position, velocity Vector3D, radius float64) (Vector3D, Vector3D) {
	minX, minY, minZ := vp.TopLeft.X, vp.TopLeft.Y, vp.TopLeft.Z
	maxX, maxY, maxZ := vp.BottomRight.X, vp.BottomRight.Y, vp.BottomRight.Z

	if position.X < minX+radius {
		position.X = minX + radius
		velocity.X = -velocity.X
	} else if position.X > maxX-radius {
		position.X = maxX - radius
		velocity.X = -velocity.X
	}

	if position.Y < minY+radius {
		position.Y = minY + radius
		velocity.Y = -velocity.Y
	} else if position.Y > maxY-radius {
		position.Y = maxY - radius
		velocity.Y = -velocity.Y
	}

	if position.Z < minZ+radius {
		position.Z = minZ + radius
		velocity.Z = -velocity.Z
	} else if position.Z > maxZ-radius {
		position.Z = maxZ - radius
		velocity.Z = -velocity.Z
	}

	return position, velocity
}
