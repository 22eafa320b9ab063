package component

type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
}

// Animation tracks flipbook playback. Paused freezes the current frame without
// losing the playing state, so resuming continues where it stopped.
type Animation struct {
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
	Paused     bool
}

var AnimationComponent = NewComponent[Animation]()
