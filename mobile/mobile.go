//go:build mobile

// Package mobile 是 ebitenmobile 的绑定入口，生成 Android .aar 和 iOS .xcframework
//
//	make build-android
//	make build-ios      # 需要 macOS
//
// 两个目标都会先执行 make prepare-mobile，把 data/ 复制到 mobile/data 供 embed 使用。
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/dermamon/pkg/app"
	"github.com/gonewx/dermamon/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	// 移动端没有 .env，排行榜地址和用户使用 DERMAMON_* 环境变量或默认值
	gameApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("[Mobile] Failed to start Dermamon: %v", err)
	}
	mobile.SetGame(gameApp)
}

// Dummy 导出一个符号，ebitenmobile bind 要求包里至少有一个导出函数
func Dummy() {}
