package game

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/level"
	"github.com/decker502/towerdefense/pkg/simulation"
	"github.com/decker502/towerdefense/pkg/types"
)

var (
	// ErrInsufficientCoins 金币不足
	ErrInsufficientCoins = errors.New("insufficient coins")
	// ErrGameOver 游戏已结束
	ErrGameOver = errors.New("game over")
	// ErrNoMoreWaves 所有波次都已开始
	ErrNoMoreWaves = errors.New("no more waves")
)

// Status 对局状态
type Status int

const (
	// StatusPlaying 进行中
	StatusPlaying Status = iota
	// StatusWon 最后一波被清空
	StatusWon
	// StatusLost 生命耗尽
	StatusLost
)

// Session 一局游戏的经济与胜负状态
//
// Session 订阅模拟事件：击杀获得金币和分数，逃脱扣除生命，
// 最后一波清空时获胜。买卖、升级塔和开始下一波都经过 Session 扣费。
type Session struct {
	sim   *simulation.Simulation
	level level.Level

	coins int
	lives int
	score int

	// wave 已开始的最后一个关卡波次
	wave int
	// levelWave 模拟波次编号 -> 关卡波次
	levelWave map[int]int
	// cleared 已清空的关卡波次数
	cleared int
	status  Status

	// listeners 状态变化回调（金币、生命、分数、波次）
	listeners []func()
}

// NewSession 创建对局并订阅模拟事件
func NewSession(sim *simulation.Simulation, lvl level.Level) *Session {
	s := &Session{sim: sim, level: lvl}
	s.reset()

	sim.On(event.EnemyDeath, s.handleDeath)
	sim.On(event.EnemyEscape, s.handleEscape)
	sim.On(event.WaveCleared, s.handleWaveCleared)

	return s
}

func (s *Session) reset() {
	cfg := s.sim.Config()
	s.coins = cfg.InitialCoins
	s.lives = cfg.InitialLives
	s.score = 0
	s.wave = 0
	s.levelWave = make(map[int]int)
	s.cleared = 0
	s.status = StatusPlaying
}

// OnChange 注册状态变化回调
func (s *Session) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) changed() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Coins 当前金币
func (s *Session) Coins() int { return s.coins }

// Lives 剩余生命
func (s *Session) Lives() int { return s.lives }

// Score 当前分数
func (s *Session) Score() int { return s.score }

// Wave 已开始的波次
func (s *Session) Wave() int { return s.wave }

// Status 对局状态
func (s *Session) Status() Status { return s.status }

// IsOver 对局是否结束
func (s *Session) IsOver() bool { return s.status != StatusPlaying }

// MaxWave 本局的波次数：关卡波次与配置上限取小
func (s *Session) MaxWave() int {
	return min(s.level.Waves(), s.sim.Config().MaxWave)
}

// Step 推进一个 tick，对局结束后不再推进
func (s *Session) Step() {
	if s.IsOver() {
		return
	}
	s.sim.Step()
}

// NextWave 开始下一波，返回关卡波次编号
func (s *Session) NextWave() (int, error) {
	if s.IsOver() {
		return 0, ErrGameOver
	}
	if s.wave >= s.MaxWave() {
		return 0, ErrNoMoreWaves
	}

	next := s.wave + 1
	entries, err := s.level.Wave(next)
	if err != nil {
		return 0, fmt.Errorf("failed to generate wave %d: %w", next, err)
	}
	id, err := s.sim.QueueWave(entries, false)
	if err != nil {
		return 0, fmt.Errorf("failed to queue wave %d: %w", next, err)
	}

	s.levelWave[id] = next
	s.wave = next
	log.Printf("[Session] Wave %d/%d started with %d enemies", next, s.MaxWave(), len(entries))
	s.changed()
	return next, nil
}

// Buy 购买并放置塔
func (s *Session) Buy(cell types.Cell, towerType types.TowerType) error {
	if s.IsOver() {
		return ErrGameOver
	}
	stats, ok := s.sim.TowerStats().Get(towerType)
	if !ok {
		return fmt.Errorf("%s: %w", towerType, simulation.ErrUnknownTowerType)
	}
	if s.coins < stats.BaseCost {
		return fmt.Errorf("%s tower costs %d, have %d: %w", towerType, stats.BaseCost, s.coins, ErrInsufficientCoins)
	}
	if err := s.sim.Place(cell, towerType); err != nil {
		return err
	}
	s.coins -= stats.BaseCost
	s.changed()
	return nil
}

// Sell 出售塔，按价值的 SellRatio 返还金币，返回返还金额
func (s *Session) Sell(cell types.Cell) (int, error) {
	if s.IsOver() {
		return 0, ErrGameOver
	}
	snap, err := s.sim.Remove(cell)
	if err != nil {
		return 0, err
	}
	refund := int(float64(snap.Value) * s.sim.Config().SellRatio)
	s.coins += refund
	s.changed()
	return refund, nil
}

// Upgrade 升级塔，花费为塔的 LevelCost
func (s *Session) Upgrade(cell types.Cell, kind types.UpgradeKind) error {
	if s.IsOver() {
		return ErrGameOver
	}
	tower, ok := s.sim.TowerAt(cell)
	if !ok {
		return fmt.Errorf("cell (%d, %d): %w", cell.Col, cell.Row, simulation.ErrNotFound)
	}
	if !s.sim.CanUpgrade(cell, kind) {
		return fmt.Errorf("%s tower %s upgrade: %w", tower.Type, kind, simulation.ErrUpgradeUnavailable)
	}
	if s.coins < tower.LevelCost {
		return fmt.Errorf("upgrade costs %d, have %d: %w", tower.LevelCost, s.coins, ErrInsufficientCoins)
	}
	if _, err := s.sim.Upgrade(cell, kind); err != nil {
		return err
	}
	s.coins -= tower.LevelCost
	s.changed()
	return nil
}

// Restart 重新开始：清空模拟，恢复初始金币和生命
func (s *Session) Restart() {
	s.sim.Reset()
	s.reset()
	s.changed()
}

// handleDeath 击杀奖励：金币加敌人点数，分数乘以 √(同一 tick 击杀数)
func (s *Session) handleDeath(e event.Event) {
	bonus := math.Sqrt(float64(len(e.Enemies)))
	for _, enemy := range e.Enemies {
		s.coins += enemy.Points
		s.score += int(float64(enemy.Points) * bonus)
	}
	s.changed()
}

func (s *Session) handleEscape(e event.Event) {
	s.lives = max(s.lives-len(e.Enemies), 0)
	if s.lives == 0 && s.status == StatusPlaying {
		s.status = StatusLost
		log.Printf("[Session] Game over at wave %d, score %d", s.wave, s.score)
	}
	s.changed()
}

func (s *Session) handleWaveCleared(e event.Event) {
	if _, ok := s.levelWave[e.Wave]; !ok {
		return
	}
	s.cleared++
	if s.status == StatusPlaying && s.wave == s.MaxWave() && s.cleared == s.wave {
		s.status = StatusWon
		log.Printf("[Session] All %d waves cleared, score %d", s.wave, s.score)
	}
	s.changed()
}
