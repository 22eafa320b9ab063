package component

import "image/color"

// Sprite is drawn as a flat billboard facing the camera.
type Sprite struct {
	Width      float64
	Height     float64
	Color      color.RGBA
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
