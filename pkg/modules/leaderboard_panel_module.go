package modules

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/dermamon/pkg/config"
	"github.com/gonewx/dermamon/pkg/game"
	"github.com/gonewx/dermamon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LeaderboardSource 排行榜数据来源
// *game.LeaderboardManager 实现了该接口
type LeaderboardSource interface {
	Entries() []game.RankedEntry
	Refresh()
}

// LeaderboardPanelModule 可切换显示的排行榜面板
//
// 面板只负责显示；数据由 LeaderboardManager 在后台刷新，
// 每次打开面板时触发一次刷新。
type LeaderboardPanelModule struct {
	source  LeaderboardSource
	visible bool
	bounds  utils.Rect
	face    text.Face
}

// NewLeaderboardPanelModule 创建排行榜面板（默认隐藏）
func NewLeaderboardPanelModule(source LeaderboardSource) *LeaderboardPanelModule {
	log.Printf("[LeaderboardPanelModule] Initialized")
	return &LeaderboardPanelModule{
		source: source,
		bounds: utils.Rect{
			X:      config.LeaderboardPanelX,
			Y:      config.LeaderboardPanelY,
			Width:  config.LeaderboardPanelWidth,
			Height: config.LeaderboardPanelHeight,
		},
		face: utils.DefaultFace(),
	}
}

// IsVisible 面板是否显示
func (m *LeaderboardPanelModule) IsVisible() bool {
	return m.visible
}

// Toggle 切换显示，打开时刷新数据；返回切换后是否显示
func (m *LeaderboardPanelModule) Toggle() bool {
	if m.visible {
		m.Hide()
	} else {
		m.Show()
	}
	return m.visible
}

// Show 显示面板并刷新数据
func (m *LeaderboardPanelModule) Show() {
	m.visible = true
	m.source.Refresh()
}

// Hide 隐藏面板
func (m *LeaderboardPanelModule) Hide() {
	m.visible = false
}

// Contains 点是否落在显示中的面板上
func (m *LeaderboardPanelModule) Contains(x, y float64) bool {
	return m.visible && m.bounds.Contains(x, y)
}

// FormatRow 排行榜一行的文字（不含奖牌）
func FormatRow(e game.RankedEntry) (rank, name, score string) {
	return fmt.Sprintf("%d.", e.Rank), e.Name, fmt.Sprintf("%d pts", e.Score)
}

// Draw 绘制面板
func (m *LeaderboardPanelModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}
	b := m.bounds
	dark := color.NRGBA{0x1F, 0x29, 0x37, 0xFF}
	muted := color.NRGBA{0x6B, 0x72, 0x80, 0xFF}

	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y+4), float32(b.Width), float32(b.Height), color.NRGBA{0, 0, 0, 0x30}, true)
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), color.White, true)
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), 44, color.NRGBA{0x8B, 0x5C, 0xF6, 0xFF}, true)
	utils.DrawLabel(screen, "Leaderboard", m.face, b.X+16, b.Y+9, 2, color.White, utils.AlignLeft)

	entries := m.source.Entries()
	if len(entries) == 0 {
		utils.DrawLabel(screen, "No scores yet", m.face, b.X+b.Width/2, b.Y+80, 1, muted, utils.AlignCenter)
		return
	}

	top := b.Y + 56
	for i, e := range entries {
		y := top + float64(i)*config.LeaderboardRowHeight
		if y+config.LeaderboardRowHeight > b.Y+b.Height {
			break
		}
		if i%2 == 0 {
			vector.DrawFilledRect(screen, float32(b.X+8), float32(y), float32(b.Width-16), float32(config.LeaderboardRowHeight-4), color.NRGBA{0xF3, 0xF4, 0xF6, 0xFF}, true)
		}
		rowMid := y + (config.LeaderboardRowHeight-4)/2

		rank, name, score := FormatRow(e)
		if e.Medal != "" {
			drawMedal(screen, m.face, b.X+30, rowMid, e.Rank)
		} else {
			utils.DrawLabel(screen, rank, m.face, b.X+30, rowMid-6.5, 1, muted, utils.AlignCenter)
		}
		utils.DrawLabel(screen, name, m.face, b.X+56, rowMid-6.5, 1, dark, utils.AlignLeft)
		utils.DrawLabel(screen, score, m.face, b.X+b.Width-20, rowMid-6.5, 1, dark, utils.AlignRight)
	}
}
