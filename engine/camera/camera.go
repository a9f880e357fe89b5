package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
)

// cameraCount numbers camera bind group providers.
var cameraCount atomic.Uint64

// worldUp is the up vector of every backdrop camera.
var worldUp = [3]float32{0, 1, 0}

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera is a perspective camera placed by a CameraController. The backdrop only
// changes its projection, on resize.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the 4x4 view matrix (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the 4x4 projection matrix (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix (column-major).
	ViewProjectionMatrix() [16]float32

	// UniformData packs the view-projection matrix, eye position and aspect ratio into
	// the GPU camera uniform.
	//
	// Returns:
	//   - []byte: the GPUCameraUniform bytes
	UniformData() []byte

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// BindGroupProvider returns the provider holding the camera uniform buffer.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update recomputes the matrices after the controller moved. No-op without a controller.
	Update()

	// SetPerspective replaces every projection parameter at once and recomputes matrices.
	//
	// Parameters:
	//   - fov: vertical field of view in radians
	//   - aspect: width / height
	//   - near, far: clipping plane distances
	SetPerspective(fov, aspect, near, far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with a 45 degree field of view, a square aspect and
// planes at 0.1 and 100. Matrices stay identity until a controller is attached.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		fov:                  45.0 * (math.Pi / 180.0),
		aspect:               1.0,
		near:                 0.1,
		far:                  100.0,
		viewMatrix:           identity,
		projectionMatrix:     identity,
		viewProjectionMatrix: identity,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Add(1), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) UniformData() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := GPUCameraUniform{
		ViewProj: c.viewProjectionMatrix,
		Aspect:   c.aspect,
	}
	if c.controller != nil {
		x, y, z := c.controller.Position()
		u.CameraPosition = [3]float32{x, y, z}
	}
	return u.Marshal()
}

func (c *cameraImpl) SetPerspective(fov, aspect, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

// updateMatrices recalculates the view, projection and view-projection matrices from
// the controller. No-op when the controller is nil. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	px, py, pz := c.controller.Position()
	tx, ty, tz := c.controller.Target()

	common.LookAt(c.viewMatrix[:],
		px, py, pz,
		tx, ty, tz,
		worldUp[0], worldUp[1], worldUp[2],
	)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
