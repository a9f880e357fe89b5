package page

import (
	"strconv"
	"strings"
)

// DefaultParallaxSpeed is the parallax travel, in pixels, at the viewport edge.
const DefaultParallaxSpeed = 10

// copyrightYear is the year baked into the footer text.
const copyrightYear = "2025"

// FooterText replaces the first occurrence of the baked-in copyright year with year.
//
// Parameters:
//   - text: the footer text
//   - year: the current year
//
// Returns:
//   - string: the updated text
func FooterText(text string, year int) string {
	return strings.Replace(text, copyrightYear, strconv.Itoa(year), 1)
}

// ParallaxOffset returns the translation of a parallax element for a pointer
// position. The pointer is mapped to [-1, 1] on both axes and scaled by speed.
//
// Parameters:
//   - px, py: pointer position in viewport pixels
//   - width, height: viewport size
//   - speed: travel at the edge; non-positive means DefaultParallaxSpeed
//
// Returns:
//   - x, y: the translation in pixels
func ParallaxOffset(px, py, width, height, speed float64) (x, y float64) {
	if speed <= 0 {
		speed = DefaultParallaxSpeed
	}
	width, height = max(width, 1), max(height, 1)
	return (px/width - 0.5) * 2 * speed, (py/height - 0.5) * 2 * speed
}

// CardTilt returns the rotation, in degrees, of a card hovered at (x, y) relative to
// its top-left corner. The card leans away from the pointer by 1 degree per 20 pixels
// from its center.
//
// Parameters:
//   - x, y: pointer position inside the card
//   - width, height: card size
//
// Returns:
//   - rotateX, rotateY: the rotation around each axis
func CardTilt(x, y, width, height float64) (rotateX, rotateY float64) {
	return (y - height/2) / 20, (width/2 - x) / 20
}
