package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

type Level struct {
	Name   string  `json:"name"`
	Spawn  Spawn   `json:"spawn"`
	Blocks []Block `json:"blocks"`
}

type Spawn struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Yaw float64 `json:"yaw"`
}

// Block is an axis-aligned box given by two opposite corners. Blocks are solid
// unless "solid": false is set.
type Block struct {
	Min   [3]float64 `json:"min"`
	Max   [3]float64 `json:"max"`
	Color string     `json:"color,omitempty"`
	Solid *bool      `json:"solid,omitempty"`
}

func (b Block) IsSolid() bool {
	return b.Solid == nil || *b.Solid
}

// LoadLevelFromFS reads a level from disk when present, falling back to the
// embedded copy.
func LoadLevelFromFS(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	for i, b := range lvl.Blocks {
		for axis := 0; axis < 3; axis++ {
			if b.Min[axis] > b.Max[axis] {
				lvl.Blocks[i].Min[axis], lvl.Blocks[i].Max[axis] = b.Max[axis], b.Min[axis]
			}
			if b.Min[axis] == b.Max[axis] {
				return nil, fmt.Errorf("block %d is flat on axis %d", i, axis)
			}
		}
	}
	return &lvl, nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
