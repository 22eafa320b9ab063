package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed  float64 `yaml:"move_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	DropHeight float64 `yaml:"drop_height"`
	KillZ      float64 `yaml:"kill_z"`
}

type TransformComponentSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type SpriteComponentSpec struct {
	Width      float64   `yaml:"width"`
	Height     float64   `yaml:"height"`
	Color      YAMLColor `yaml:"color"`
	FacingLeft bool      `yaml:"facing_left"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Distance   float64 `yaml:"distance"`
	Height     float64 `yaml:"height"`
	OrthoWidth float64 `yaml:"ortho_width"`
	Smoothness float64 `yaml:"smoothness"`
}

type CameraRotationComponentSpec struct {
	Mode      string  `yaml:"mode"`
	Smoothing float64 `yaml:"smoothing"`
	Speed     float64 `yaml:"speed"`
	Epsilon   float64 `yaml:"epsilon"`
	MaxTicks  int     `yaml:"max_ticks"`
}

type DepthProbeComponentSpec struct {
	Drop          float64 `yaml:"drop"`
	Distance      float64 `yaml:"distance"`
	Margin        float64 `yaml:"margin"`
	AxisThreshold float64 `yaml:"axis_threshold"`
	Policy        string  `yaml:"policy"`
}

type RotationGateComponentSpec struct {
	Script string `yaml:"script"`
}

type AnimationDefSpec struct {
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Defs       map[string]AnimationDefSpec `yaml:"defs"`
	Current    string                      `yaml:"current"`
	Frame      int                         `yaml:"frame"`
	FrameTimer int                         `yaml:"frame_timer"`
	Playing    bool                        `yaml:"playing"`
}

type PhysicsBodyComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}
