package config

// 布局配置常量
// 本文件定义了窗口、游戏弹窗、排行榜面板和悬浮按钮的布局参数（屏幕坐标）

// 窗口
const (
	// GameWindowWidth 逻辑窗口宽度
	GameWindowWidth = 1200
	// GameWindowHeight 逻辑窗口高度
	GameWindowHeight = 760
)

// 游戏弹窗
// 弹窗内依次为: 标题栏、HUD 行、画布显示区、按钮行
const (
	PopupX            = 40.0
	PopupY            = 40.0
	PopupWidth        = 760.0
	PopupHeight       = 640.0
	PopupHeaderHeight = 44.0
	PopupHUDHeight    = 36.0

	// CanvasDisplayX/Y/Width/Height 画布在屏幕上的显示矩形
	// 显示尺寸与画布逻辑尺寸不同，点击坐标需要按比例换算
	CanvasDisplayX      = PopupX + 20
	CanvasDisplayY      = PopupY + PopupHeaderHeight + PopupHUDHeight
	CanvasDisplayWidth  = 720.0
	CanvasDisplayHeight = 480.0

	// ButtonRowY 控制按钮行的Y坐标
	ButtonRowY      = CanvasDisplayY + CanvasDisplayHeight + 12
	ButtonWidth     = 140.0
	ButtonHeight    = 40.0
	ButtonSpacing   = 16.0
	CloseButtonSize = 28.0
)

// 排行榜面板
const (
	LeaderboardPanelX      = 820.0
	LeaderboardPanelY      = 40.0
	LeaderboardPanelWidth  = 340.0
	LeaderboardPanelHeight = 440.0
	LeaderboardRowHeight   = 36.0
)

// 悬浮按钮（可拖拽）
const (
	// WidgetSize 悬浮按钮边长
	WidgetSize = 64.0
	// WidgetMargin 拖拽时与窗口边缘保持的最小距离
	WidgetMargin = 20.0

	// GameWidgetID/ChatWidgetID 悬浮按钮标识，同时用作本地存储的键
	GameWidgetID = "gameWidget"
	ChatWidgetID = "chatWidget"

	// 默认位置（右下角）
	GameWidgetDefaultX = GameWindowWidth - WidgetSize - WidgetMargin
	GameWidgetDefaultY = GameWindowHeight - WidgetSize - WidgetMargin
	ChatWidgetDefaultX = GameWidgetDefaultX - WidgetSize - WidgetMargin
	ChatWidgetDefaultY = GameWidgetDefaultY
)

// 提示与状态
const (
	// ToastDuration 提示消息显示时长（秒）
	ToastDuration = 5.0
	// DragTipDelay 首次启动后显示拖拽提示的延迟（秒）
	DragTipDelay = 3.0
	// FeedbackPromptDelay 使用多久后主动弹出反馈（秒）
	FeedbackPromptDelay = 300.0
	// StatusX/StatusY API 状态指示器位置
	StatusX = 20.0
	StatusY = GameWindowHeight - 30.0
)
