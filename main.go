package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pomburst/pkg/app"
	"github.com/decker502/pomburst/pkg/config"
	"github.com/decker502/pomburst/pkg/embedded"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	debugFlag    = flag.Bool("debug", false, "Show the debug overlay (toggle with F3)")
	muteFlag     = flag.Bool("mute", false, "Start muted (toggle with M)")
	configFlag   = flag.String("config", config.SpawnerConfigPath, "Spawner config YAML (embedded data/ first, then disk)")
	manifestFlag = flag.String("manifest", config.AssetManifestPath, "Asset manifest YAML")
	assetsFlag   = flag.String("assets", ".", "Directory that sprite sheet paths are relative to")
	widthFlag    = flag.Int("width", config.DefaultWindowWidth, "Initial window width")
	heightFlag   = flag.Int("height", config.DefaultWindowHeight, "Initial window height")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		Debug:        *debugFlag,
		Mute:         *muteFlag,
		ConfigPath:   *configFlag,
		ManifestPath: *manifestFlag,
		AssetRoot:    *assetsFlag,
		WindowWidth:  *widthFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Pom Burst")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
