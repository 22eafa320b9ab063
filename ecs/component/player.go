package component

// Player holds movement tuning loaded from the player prefab.
type Player struct {
	MoveSpeed  float64
	JumpSpeed  float64
	DropHeight float64
	KillZ      float64
}

var PlayerComponent = NewComponent[Player]()

// Spawn is where the player returns after falling below Player.KillZ.
type Spawn struct {
	X   float64
	Y   float64
	Z   float64
	Yaw float64
}

var SpawnComponent = NewComponent[Spawn]()
