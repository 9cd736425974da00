package app

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/towerdefense/pkg/game"
	"github.com/decker502/towerdefense/pkg/simulation"
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/decker502/towerdefense/pkg/utils"
)

// hudHeight 顶部状态栏高度（像素）
const hudHeight = 36

// layout 侧栏与按钮尺寸
type layout struct {
	sidebarWidth  int
	buttonHeight  int
	buttonSpacing int
	fontSize      float64
	// touch 触摸布局：没有键盘和右键，帮助文字改为手势说明
	touch bool
}

var (
	desktopLayout = layout{sidebarWidth: 240, buttonHeight: 44, buttonSpacing: 6, fontSize: 14}
	touchLayout   = layout{sidebarWidth: 300, buttonHeight: 72, buttonSpacing: 10, fontSize: 18, touch: true}
)

// layoutFor 移动设备使用更大的侧栏和点击区域
func layoutFor(mobile bool) layout {
	if mobile {
		return touchLayout
	}
	return desktopLayout
}

// action 侧栏操作按钮
type action int

const (
	actionNextWave action = iota
	actionPause
	actionRestart
)

var allActions = []action{actionNextWave, actionPause, actionRestart}

// label 按钮文字，桌面布局附带快捷键
func (act action) label(l layout, paused bool) string {
	var name, key string
	switch act {
	case actionNextWave:
		name, key = "Next wave", "N"
	case actionPause:
		name, key = "Pause", "P"
		if paused {
			name = "Resume"
		}
	case actionRestart:
		name, key = "Restart", "R"
	}
	if l.touch {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, key)
}

var (
	desktopHelp = []string{
		"Click: build / upgrade",
		"Right click or S: sell",
		"U / C: upgrade dmg / cd",
		"+/-: speed   M: mute",
		"V: path preview",
	}
	touchHelp = []string{
		"Tap: build / upgrade",
		"Two-finger tap: sell",
	}
)

var (
	backgroundColor = color.RGBA{R: 30, G: 30, B: 36, A: 255}
	fieldColor      = color.RGBA{R: 220, G: 220, B: 210, A: 255}
	gridLineColor   = color.RGBA{R: 190, G: 190, B: 180, A: 255}
	obstacleColor   = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	startColor      = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	goalColor       = color.RGBA{R: 220, G: 80, B: 80, A: 255}
	pathColor       = color.RGBA{R: 120, G: 160, B: 255, A: 160}
	previewColor    = color.RGBA{R: 255, G: 200, B: 60, A: 200}
	illegalColor    = color.RGBA{R: 255, G: 0, B: 0, A: 80}
	rangeColor      = color.RGBA{R: 50, G: 120, B: 255, A: 200}
	healthBarBack   = color.RGBA{R: 60, G: 0, B: 0, A: 255}
	healthBarFront  = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	slowedTint      = color.RGBA{R: 120, G: 200, B: 255, A: 120}
	textColor       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	dimTextColor    = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	selectedColor   = color.RGBA{R: 255, G: 200, B: 60, A: 255}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	fallbackColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// view 负责把模拟快照绘制到屏幕
// 网格四周留出一格边距，用于显示位于网格外的入口和终点
type view struct {
	sim    *simulation.Simulation
	face   *text.GoTextFace
	layout layout

	cellSize         int
	originX, originY float64
	gridW, gridH     int

	towerColors map[types.TowerType]color.RGBA
	enemyColors map[types.EnemyType]color.RGBA
}

func newView(sim *simulation.Simulation, l layout) *view {
	tr := sim.Translator()
	w, h := tr.Pixels()
	v := &view{
		sim:         sim,
		layout:      l,
		cellSize:    tr.CellSize,
		originX:     float64(tr.CellSize),
		originY:     float64(hudHeight + tr.CellSize),
		gridW:       w,
		gridH:       h,
		towerColors: make(map[types.TowerType]color.RGBA),
		enemyColors: make(map[types.EnemyType]color.RGBA),
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[View] Warning: Failed to load font: %v (falling back to debug text)", err)
	} else {
		v.face = &text.GoTextFace{Source: source, Size: l.fontSize}
	}

	for _, t := range types.AllTowerTypes {
		if stats, ok := sim.TowerStats().Get(t); ok {
			v.towerColors[t] = utils.MustParseHexColor(stats.Color, fallbackColor)
		}
	}
	for _, t := range types.AllEnemyTypes {
		if stats, ok := sim.EnemyStats().Get(t); ok {
			v.enemyColors[t] = utils.MustParseHexColor(stats.Color, fallbackColor)
		}
	}
	return v
}

// size 逻辑屏幕尺寸
func (v *view) size() (int, int) {
	w := v.gridW + 2*v.cellSize + v.layout.sidebarWidth
	h := hudHeight + v.gridH + 2*v.cellSize
	lines := len(v.help()) + 3
	sidebarH := int(v.infoTop()) + lines*v.lineHeight() + 20
	return w, max(h, sidebarH)
}

// cellAt 将屏幕坐标转换为格子
func (v *view) cellAt(x, y int) (types.Cell, bool) {
	tr := v.sim.Translator()
	cell := tr.PixelToCell(float64(x)-v.originX, float64(y)-v.originY)
	return cell, tr.IsCellInGrid(cell)
}

// shopButtonAt 返回侧栏中被点击的塔按钮
func (v *view) shopButtonAt(x, y int) (types.TowerType, bool) {
	for i, t := range types.AllTowerTypes {
		bx, by, bw, bh := v.shopButtonRect(i)
		if inRect(x, y, bx, by, bw, bh) {
			return t, true
		}
	}
	return types.TowerUnknown, false
}

// actionButtonAt 返回侧栏中被点击的操作按钮
func (v *view) actionButtonAt(x, y int) (action, bool) {
	for i, act := range allActions {
		bx, by, bw, bh := v.actionButtonRect(i)
		if inRect(x, y, bx, by, bw, bh) {
			return act, true
		}
	}
	return 0, false
}

func inRect(x, y int, rx, ry, rw, rh float64) bool {
	fx, fy := float64(x), float64(y)
	return fx >= rx && fx < rx+rw && fy >= ry && fy < ry+rh
}

// buttonRect 侧栏第 row 行按钮，商店按钮在前，操作按钮在后并空出一段间隔
func (v *view) buttonRect(row int, gap float64) (x, y, w, h float64) {
	l := v.layout
	x = float64(v.gridW+2*v.cellSize) + 10
	y = float64(hudHeight+10) + float64(row*(l.buttonHeight+l.buttonSpacing)) + gap
	return x, y, float64(l.sidebarWidth - 20), float64(l.buttonHeight)
}

func (v *view) shopButtonRect(i int) (x, y, w, h float64) {
	return v.buttonRect(i, 0)
}

func (v *view) actionButtonRect(i int) (x, y, w, h float64) {
	return v.buttonRect(len(types.AllTowerTypes)+i, 10)
}

// infoTop 按钮下方信息区的起始纵坐标
func (v *view) infoTop() float64 {
	_, y, _, h := v.actionButtonRect(len(allActions) - 1)
	return y + h + 10
}

func (v *view) lineHeight() int {
	return int(v.layout.fontSize) + 4
}

func (v *view) help() []string {
	if v.layout.touch {
		return touchHelp
	}
	return desktopHelp
}

func (v *view) draw(screen *ebiten.Image, a *App) {
	screen.Fill(backgroundColor)

	v.drawField(screen)
	v.drawPath(screen, v.sim.Path(), pathColor, 3)
	v.drawHover(screen, a)
	v.drawTowers(screen, a.hover)
	v.drawEnemies(screen)
	v.drawProjectiles(screen)
	v.drawHUD(screen, a)
	v.drawSidebar(screen, a)

	if a.session.IsOver() {
		v.drawGameOver(screen, a)
	}
}

func (v *view) drawField(screen *ebiten.Image) {
	tr := v.sim.Translator()
	vector.DrawFilledRect(screen, float32(v.originX), float32(v.originY), float32(v.gridW), float32(v.gridH), fieldColor, false)
	for _, l := range tr.BorderLines() {
		vector.StrokeLine(screen,
			float32(v.originX+l.X1), float32(v.originY+l.Y1),
			float32(v.originX+l.X2), float32(v.originY+l.Y2),
			1, gridLineColor, false)
	}

	for _, c := range v.sim.Obstacles() {
		v.fillCell(screen, c, obstacleColor, 0)
	}
	g := v.sim.Grid()
	v.fillCell(screen, g.Start, startColor, 8)
	v.fillCell(screen, g.Goal, goalColor, 8)
}

// fillCell 填充格子，inset 为四周缩进的像素
func (v *view) fillCell(screen *ebiten.Image, c types.Cell, clr color.Color, inset float64) {
	x := v.originX + float64(c.Col*v.cellSize) + inset
	y := v.originY + float64(c.Row*v.cellSize) + inset
	size := float64(v.cellSize) - 2*inset
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), clr, false)
}

func (v *view) toScreen(x, y float64) (float32, float32) {
	return float32(v.originX + x), float32(v.originY + y)
}

func (v *view) drawPath(screen *ebiten.Image, path []types.Cell, clr color.Color, width float32) {
	tr := v.sim.Translator()
	for i := 1; i < len(path); i++ {
		x1, y1 := v.toScreen(tr.CellToPixelCentre(path[i-1]))
		x2, y2 := v.toScreen(tr.CellToPixelCentre(path[i]))
		vector.StrokeLine(screen, x1, y1, x2, y2, width, clr, true)
	}
}

func (v *view) drawHover(screen *ebiten.Image, a *App) {
	if !v.sim.Translator().IsCellInGrid(a.hover) || a.session.IsOver() {
		return
	}
	if _, occupied := v.sim.TowerAt(a.hover); occupied {
		return
	}
	if !a.settings.GetSettings().ShowPathPreview {
		return
	}
	if a.preview == nil {
		v.fillCell(screen, a.hover, illegalColor, 0)
		return
	}
	v.drawPath(screen, a.preview.Shortest(), previewColor, 2)
}

func (v *view) drawTowers(screen *ebiten.Image, hover types.Cell) {
	for _, t := range v.sim.Towers() {
		stats, _ := v.sim.TowerStats().Get(t.Type)
		size := float64(v.cellSize) * 0.9
		if stats != nil {
			size = stats.GridSize * float64(v.cellSize)
		}
		x, y := v.toScreen(t.X-size/2, t.Y-size/2)
		vector.DrawFilledRect(screen, x, y, float32(size), float32(size), v.towerColors[t.Type], false)

		// 炮管指示朝向
		cx, cy := v.toScreen(t.X, t.Y)
		dx, dy := utils.PolarToRectangular(size/2, t.Rotation)
		vector.StrokeLine(screen, cx, cy, cx+float32(dx), cy+float32(dy), 3, textColor, true)

		if t.Level > 1 {
			v.drawText(screen, fmt.Sprintf("%d", t.Level), float64(x)+2, float64(y)+2, textColor)
		}

		if t.Cell == hover {
			r := float32(t.RangeRadius * float64(v.cellSize))
			vector.StrokeCircle(screen, cx, cy, r, 2, rangeColor, true)
		}
	}
}

func (v *view) drawEnemies(screen *ebiten.Image) {
	for _, e := range v.sim.Enemies() {
		x, y := v.toScreen(e.X-e.Width/2, e.Y-e.Height/2)
		vector.DrawFilledRect(screen, x, y, float32(e.Width), float32(e.Height), v.enemyColors[e.Type], false)
		if e.Slowed {
			vector.DrawFilledRect(screen, x, y, float32(e.Width), float32(e.Height), slowedTint, false)
		}

		// 血条
		if e.MaxHealth > 0 && e.Health < e.MaxHealth {
			ratio := float32(e.Health) / float32(e.MaxHealth)
			vector.DrawFilledRect(screen, x, y-6, float32(e.Width), 4, healthBarBack, false)
			vector.DrawFilledRect(screen, x, y-6, float32(e.Width)*ratio, 4, healthBarFront, false)
		}
	}
}

func (v *view) drawProjectiles(screen *ebiten.Image) {
	for _, p := range v.sim.Projectiles() {
		cx, cy := v.toScreen(p.X, p.Y)
		switch p.Kind {
		case types.ProjectileMissile:
			dx, dy := utils.PolarToRectangular(8, p.Rotation)
			vector.StrokeLine(screen, cx-float32(dx), cy-float32(dy), cx+float32(dx), cy+float32(dy), 4, color.Black, true)
		default:
			vector.DrawFilledCircle(screen, cx, cy, 4, rangeColor, true)
		}
	}
}

func (v *view) drawHUD(screen *ebiten.Image, a *App) {
	s := a.session
	settings := a.settings.GetSettings()
	status := ""
	if a.paused {
		status = "  [PAUSED]"
	}
	if !settings.SoundEnabled {
		status += "  [MUTED]"
	}
	line := fmt.Sprintf("Coins: %d   Lives: %d   Score: %d   Wave: %d/%d   Speed: %d%s",
		s.Coins(), s.Lives(), s.Score(), s.Wave(), s.MaxWave(), settings.TicksPerSecond, status)
	v.drawText(screen, line, 10, 10, textColor)
}

func (v *view) drawSidebar(screen *ebiten.Image, a *App) {
	line := float64(v.lineHeight())

	for i, t := range types.AllTowerTypes {
		stats, ok := v.sim.TowerStats().Get(t)
		if !ok {
			continue
		}
		x, y, w, h := v.shopButtonRect(i)
		border := dimTextColor
		if t == a.selected {
			border = selectedColor
		}
		vector.DrawFilledRect(screen, float32(x+4), float32(y+4), float32(h-8), float32(h-8), v.towerColors[t], false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, border, false)

		clr := textColor
		if stats.BaseCost > a.session.Coins() {
			clr = dimTextColor
		}
		v.drawText(screen, fmt.Sprintf("%d. %s", i+1, stats.Name), x+h, y+4, clr)
		v.drawText(screen, fmt.Sprintf("$%d  up $%d", stats.BaseCost, stats.LevelCost), x+h, y+4+line, clr)
	}

	for i, act := range allActions {
		x, y, w, h := v.actionButtonRect(i)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, dimTextColor, false)
		v.drawText(screen, act.label(v.layout, a.paused), x+10, y+(h-line)/2, textColor)
	}

	x := float64(v.gridW+2*v.cellSize) + 10
	y := v.infoTop()

	if t, ok := v.sim.TowerAt(a.hover); ok {
		v.drawText(screen, fmt.Sprintf("Lv%d dmg %d cd %d sell $%d", t.Level, t.Damage, t.CooldownSteps,
			int(float64(t.Value)*v.sim.Config().SellRatio)), x, y, textColor)
	}
	y += line + 6

	for _, h := range v.help() {
		v.drawText(screen, h, x, y, dimTextColor)
		y += line
	}

	if a.messageTimer > 0 {
		v.drawText(screen, a.message, x, y+8, selectedColor)
	}
}

func (v *view) drawGameOver(screen *ebiten.Image, a *App) {
	w, h := v.size()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayColor, false)

	title := "GAME OVER"
	if a.session.Status() == game.StatusWon {
		title = "YOU WIN"
	}
	x := float64(w)/2 - 120
	y := float64(h)/2 - 140
	v.drawText(screen, title, x, y, selectedColor)
	hint := "R to restart"
	if v.layout.touch {
		hint = "tap Restart"
	}
	v.drawText(screen, fmt.Sprintf("Score %d at wave %d   (%s)", a.session.Score(), a.session.Wave(), hint), x, y+24, textColor)

	y += 60
	for i, e := range a.highScores.Entries() {
		clr := textColor
		if i+1 == a.rank {
			clr = selectedColor
		}
		v.drawText(screen, fmt.Sprintf("%2d. %-12s %6d  wave %d", i+1, e.Name, e.Score, e.Wave), x, y, clr)
		y += float64(v.lineHeight())
	}
}

func (v *view) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	if v.face == nil {
		ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, v.face, op)
}

