// Package app 提供游戏应用的核心包装器
//
// 该包把模拟、对局经济、设置、高分和音效组装成一个 ebiten.Game，
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/towerdefense/pkg/game"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/level"
	"github.com/decker502/towerdefense/pkg/simulation"
	"github.com/decker502/towerdefense/pkg/sound"
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/decker502/towerdefense/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// LevelPath 脚本关卡文件，为空则使用标准关卡
	LevelPath string
	// PlayerName 高分榜上记录的名字
	PlayerName string
}

// 帧率固定为 60，模拟速度由设置中的 TicksPerSecond 决定
const framesPerSecond = 60

// messageFrames 提示信息显示的帧数
const messageFrames = 120

// shopKeys 按商店顺序选择塔的按键
var shopKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sim        *simulation.Simulation
	session    *game.Session
	settings   *game.SettingsManager
	highScores *game.HighScoreManager
	audio      *sound.AudioManager
	view       *view

	playerName string
	verbose    bool

	selected types.TowerType
	hover    types.Cell
	// preview 鼠标所在格子放置后的新流场，不合法时为 nil
	preview *grid.PathField

	paused bool
	// tickBudget 累积的待执行 tick 数（小数部分跨帧保留）
	tickBudget float64

	message      string
	messageTimer int

	// recorded 本局分数是否已写入高分榜
	recorded bool
	rank     int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sim, err := simulation.Load()
	if err != nil {
		return nil, fmt.Errorf("模拟初始化失败: %w", err)
	}
	sim.SetVerbose(cfg.Verbose)

	var lvl level.Level = level.NewStandardLevel()
	if cfg.LevelPath != "" {
		scripted, err := level.LoadScriptedLevel(cfg.LevelPath)
		if err != nil {
			return nil, fmt.Errorf("关卡加载失败: %w", err)
		}
		log.Printf("[App] Loaded scripted level %q (%d waves)", scripted.Name(), scripted.Waves())
		lvl = scripted
	}

	storage := game.OpenStorage(game.StorageAppName)
	settings, err := game.NewSettingsManager(storage)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}
	highScores := game.NewHighScoreManager(storage)

	audioManager := sound.NewAudioManager(audio.NewContext(sound.SampleRate), settings)
	audioManager.Subscribe(sim)
	audioManager.PlayMusic()
	log.Printf("[App] AudioManager initialized")

	session := game.NewSession(sim, lvl)

	name := cfg.PlayerName
	if name == "" {
		name = "Player"
	}

	a := &App{
		sim:        sim,
		session:    session,
		settings:   settings,
		highScores: highScores,
		audio:      audioManager,
		view:       newView(sim, layoutFor(utils.IsMobile())),
		playerName: name,
		verbose:    cfg.Verbose,
		selected:   types.TowerSimple,
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// WindowSize 窗口的逻辑尺寸
func (a *App) WindowSize() (int, int) {
	return a.view.size()
}

// Update 更新游戏逻辑
// 每帧调用一次（60 FPS），按设置的速度推进若干 tick
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.view.size())
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()
	a.handlePointer()

	if !a.paused && !a.session.IsOver() {
		a.tickBudget += float64(a.settings.GetSettings().TicksPerSecond) / framesPerSecond
		for a.tickBudget >= 1 {
			a.session.Step()
			a.tickBudget--
		}
	}

	if a.session.IsOver() && !a.recorded {
		a.recordScore()
	}

	if a.messageTimer > 0 {
		a.messageTimer--
	}
	return nil
}

func (a *App) handleKeys() {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}
		a.settings.SetFullscreen(fullscreen)
		a.saveSettings()
	}

	// 数字键选择塔
	for i, t := range types.AllTowerTypes {
		if i < len(shopKeys) && inpututil.IsKeyJustPressed(shopKeys[i]) {
			a.selected = t
		}
	}

	switch {
	case anyKeyJustPressed(ebiten.KeyN, ebiten.KeySpace):
		a.nextWave()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.sell(a.hover)
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		a.upgrade(a.hover, types.UpgradeDamage)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.upgrade(a.hover, types.UpgradeCooldown)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.audio.SetSoundEnabled(!a.settings.GetSettings().SoundEnabled)
		a.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		a.settings.SetShowPathPreview(!a.settings.GetSettings().ShowPathPreview)
		a.saveSettings()
	case anyKeyJustPressed(ebiten.KeyEqual, ebiten.KeyKPAdd):
		a.changeSpeed(10)
	case anyKeyJustPressed(ebiten.KeyMinus, ebiten.KeyKPSubtract):
		a.changeSpeed(-10)
	}
}

func (a *App) handlePointer() {
	input := readInput()
	cell, inGrid := a.view.cellAt(input.X, input.Y)
	a.hover = cell

	if inGrid && a.settings.GetSettings().ShowPathPreview {
		a.updatePreview(cell)
	} else {
		a.preview = nil
	}

	if input.JustPressed {
		if t, ok := a.view.shopButtonAt(input.X, input.Y); ok {
			a.selected = t
			return
		}
		if act, ok := a.view.actionButtonAt(input.X, input.Y); ok {
			a.perform(act)
			return
		}
	}
	if !inGrid {
		return
	}

	switch {
	case input.JustPressed:
		if _, occupied := a.sim.TowerAt(cell); occupied {
			a.upgrade(cell, types.UpgradeDamage)
			return
		}
		a.buy(cell)
	case input.JustPressedSecondary:
		a.sell(cell)
	}
}

// updatePreview 敌人位置每 tick 都在变化，预览每帧重新计算
func (a *App) updatePreview(cell types.Cell) {
	px, py := a.sim.Translator().CellToPixelCentre(cell)
	_, a.preview = a.sim.AttemptPlacement(px, py)
}

func (a *App) buy(cell types.Cell) {
	if err := a.session.Buy(cell, a.selected); err != nil {
		a.fail(err)
		return
	}
	a.audio.PlaySound(sound.Build)
}

func (a *App) sell(cell types.Cell) {
	refund, err := a.session.Sell(cell)
	if err != nil {
		a.fail(err)
		return
	}
	a.audio.PlaySound(sound.Coin)
	a.notify(fmt.Sprintf("Sold for %d", refund))
}

func (a *App) upgrade(cell types.Cell, kind types.UpgradeKind) {
	if err := a.session.Upgrade(cell, kind); err != nil {
		a.fail(err)
		return
	}
	a.audio.PlaySound(sound.Build)
}

func (a *App) nextWave() {
	wave, err := a.session.NextWave()
	if err != nil {
		a.fail(err)
		return
	}
	a.notify(fmt.Sprintf("Wave %d", wave))
}

// perform 执行侧栏操作按钮
func (a *App) perform(act action) {
	switch act {
	case actionNextWave:
		a.nextWave()
	case actionPause:
		a.togglePause()
	case actionRestart:
		a.restart()
	}
}

func (a *App) togglePause() {
	if a.session.IsOver() {
		return
	}
	a.paused = !a.paused
	if a.paused {
		a.audio.PauseMusic()
	} else {
		a.audio.ResumeMusic()
	}
}

func (a *App) restart() {
	a.session.Restart()
	a.audio.PlayMusic()
	a.paused = false
	a.tickBudget = 0
	a.recorded = false
	a.rank = 0
	a.notify("Restarted")
}

func (a *App) changeSpeed(delta int) {
	tps := a.settings.GetSettings().TicksPerSecond + delta
	a.settings.SetTicksPerSecond(tps)
	a.saveSettings()
	a.notify(fmt.Sprintf("Speed: %d ticks/s", a.settings.GetSettings().TicksPerSecond))
}

func (a *App) recordScore() {
	a.recorded = true
	a.audio.StopMusic()
	a.rank = a.highScores.AddEntry(a.playerName, a.session.Score(), a.session.Wave())
	if a.rank == 0 {
		return
	}
	if err := a.highScores.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save high scores: %v", err)
	}
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

func (a *App) fail(err error) {
	a.audio.PlaySound(sound.Wrong)
	a.notify(err.Error())
	if a.verbose {
		log.Printf("[App] %v", err)
	}
}

func (a *App) notify(msg string) {
	a.message = msg
	a.messageTimer = messageFrames
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.view.draw(screen, a)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.view.size()
}

// Session 返回当前对局（供关闭时保存使用）
func (a *App) Session() *game.Session {
	return a.session
}

// Shutdown 退出前停止音乐并保存设置
func (a *App) Shutdown() {
	a.audio.StopMusic()
	a.saveSettings()
}
