package camera

// CameraBuilderOption is a functional option used to configure a Camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPerspective sets every projection parameter.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - aspect: width / height
//   - near, far: clipping plane distances
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithPerspective(fov, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	}
}

// WithController attaches the controller that places the camera.
//
// Parameters:
//   - ctrl: the controller
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
