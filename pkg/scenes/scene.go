package scenes

import (
	"github.com/decker502/pomburst/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景名，用于 SceneManager.RegisterScene / Switch
const (
	SceneLoading = "loading"
	SceneSpawner = "spawner"
)
