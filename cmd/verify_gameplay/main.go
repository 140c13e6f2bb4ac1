// verify_gameplay 独立运行一局 Dermamon，用于检查调度、计分和渲染
//
// 用法:
//
//	go run ./cmd/verify_gameplay                       # 窗口模式，空格开始/暂停，点击命中
//	go run ./cmd/verify_gameplay --autoplay            # 自动点击目标
//	go run ./cmd/verify_gameplay --headless --autoplay # 不开窗口，直接打印结算
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/gonewx/dermamon/pkg/components"
	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/ecs"
	"github.com/gonewx/dermamon/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "玩法配置文件（默认使用内置参数）")
	seed       = flag.Int64("seed", 1, "随机种子")
	autoplay   = flag.Bool("autoplay", false, "按固定间隔自动点击一个目标")
	interval   = flag.Float64("interval", 0.5, "自动点击间隔（秒）")
	missRate   = flag.Float64("miss", 0.1, "自动点击落空的概率")
	headless   = flag.Bool("headless", false, "不打开窗口，模拟完整一局后打印结算")
)

const frame = 1.0 / 60.0

// VerifyGameplayGame 单独运行画布会话
type VerifyGameplayGame struct {
	session      *systems.SessionSystem
	renderSystem *systems.RenderSystem
	canvas       *ebiten.Image
	cfg          *config.GameplayConfig

	rng        *rand.Rand
	clickTimer float64
	hits       int
	misses     int
	result     *systems.GameOverInfo
}

// NewVerifyGameplayGame 创建验证程序
func NewVerifyGameplayGame(cfg *config.GameplayConfig) *VerifyGameplayGame {
	g := &VerifyGameplayGame{
		cfg: cfg,
		rng: rand.New(rand.NewSource(*seed + 1)),
	}
	g.session = systems.NewSessionSystem(ecs.NewEntityManager(), cfg, rand.New(rand.NewSource(*seed)), nil, nil)
	g.session.SetGameOverHandler(func(info systems.GameOverInfo) {
		g.result = &info
		fmt.Printf("Round over (%v): score=%d hits=%d misses=%d\n", info.Reason, info.Score, g.hits, g.misses)
	})
	g.renderSystem = systems.NewRenderSystem(g.session.EntityManager(), cfg, nil)
	return g
}

// autoClick 点击一个随机目标的中心，或按 missRate 点击空白处
func (g *VerifyGameplayGame) autoClick(dt float64) {
	if !*autoplay || !g.session.Session().IsRunning() {
		return
	}
	g.clickTimer += dt
	if g.clickTimer < *interval {
		return
	}
	g.clickTimer = 0

	em := g.session.EntityManager()
	targets := ecs.GetEntitiesWith2[*components.DermamonComponent, *components.PositionComponent](em)
	if len(targets) == 0 || g.rng.Float64() < *missRate {
		g.click(-100, -100)
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, targets[g.rng.Intn(len(targets))])
	g.click(pos.X, pos.Y)
}

func (g *VerifyGameplayGame) click(x, y float64) {
	if len(g.session.HandleClick(x, y)) > 0 {
		g.hits++
	} else if g.session.Session().IsRunning() {
		g.misses++
	}
}

// Update 实现 ebiten.Game
func (g *VerifyGameplayGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.session.Session().IsRunning() {
			g.session.TogglePause()
		} else {
			g.session.Start()
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.click(float64(x), float64(y))
	}

	g.autoClick(frame)
	g.session.Update(frame)
	return nil
}

// Draw 实现 ebiten.Game
func (g *VerifyGameplayGame) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.cfg.Canvas.Width, g.cfg.Canvas.Height)
	}
	g.canvas.Clear()
	g.renderSystem.Draw(g.canvas, g.session)
	screen.Fill(color.Black)
	screen.DrawImage(g.canvas, nil)

	s := g.session.Session()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  %v  score=%d combo=%d time=%d speed=%.1fx targets=%d",
		ebiten.ActualFPS(), s.Phase(), s.Score(), s.Combo(), s.TimeLeft(), s.SpeedMultiplier(), g.session.ActiveTargets()))
}

// Layout 实现 ebiten.Game
func (g *VerifyGameplayGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Canvas.Width, g.cfg.Canvas.Height
}

// runHeadless 以固定步长模拟一局，直到结束
func (g *VerifyGameplayGame) runHeadless() {
	g.session.Start()
	maxFrames := int(math.Ceil(float64(g.cfg.Session.DurationSeconds)/frame)) + 60
	maxTargets := 0
	for i := 0; i < maxFrames && g.result == nil; i++ {
		g.autoClick(frame)
		g.session.Update(frame)
		if n := g.session.ActiveTargets(); n > maxTargets {
			maxTargets = n
		}
	}
	fmt.Printf("Max concurrent targets: %d (cap %d)\n", maxTargets, g.cfg.Spawn.MaxTargets)
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameplayConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameplayConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	verifyGame := NewVerifyGameplayGame(cfg)
	if *headless {
		verifyGame.runHeadless()
		return
	}

	ebiten.SetWindowTitle("Dermamon gameplay verification")
	ebiten.SetWindowSize(cfg.Canvas.Width, cfg.Canvas.Height)

	if err := ebiten.RunGame(verifyGame); err != nil {
		log.Fatal(err)
	}
}
