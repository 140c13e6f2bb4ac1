package main

import (
	"flag"
	"log"

	"github.com/gonewx/dermamon/pkg/app"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "覆盖玩法参数的 YAML 文件")
	envFile := flag.String("env", ".env", ".env 文件路径")
	apiURL := flag.String("api", "", "排行榜 API 地址（覆盖 "+config.EnvAPIURL+"）")
	userID := flag.String("user", "", "提交成绩使用的用户ID（覆盖 "+config.EnvUserID+"）")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:            *verbose,
		GameplayConfigPath: *configPath,
		EnvFile:            *envFile,
		APIURL:             *apiURL,
		UserID:             *userID,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Dermamon")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
