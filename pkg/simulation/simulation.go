// Package simulation 塔防模拟核心
//
// Simulation 持有实体集合、占用表、流场和 tick 计数器，
// 对外提供放置/移除/升级塔、排队波次和推进 tick 的接口。
// 渲染、输入、音效、经济系统都是外部协作者，通过快照和事件与核心交互。
//
// Simulation 不是并发安全的，所有调用必须在同一个 goroutine 中进行。
package simulation

import (
	"fmt"
	"log"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/systems"
	"github.com/decker502/towerdefense/pkg/types"
)

// Simulation 模拟状态与 tick 驱动
type Simulation struct {
	cfg     *config.GameConfig
	towers  *config.TowerStatsConfig
	enemies *config.EnemyStatsConfig

	tr        *grid.Translator
	occupancy *grid.Occupancy
	field     *grid.PathField

	em  *ecs.EntityManager
	bus *event.Bus

	combat      *systems.CombatSystem
	projectiles *systems.ProjectileSystem
	movement    *systems.MovementSystem
	spawner     *systems.WaveSpawnSystem

	// towerAt 格子到塔实体的索引
	towerAt map[types.Cell]ecs.EntityID
	step    int
}

// New 创建模拟
//
// 参数：
//   - cfg: 游戏配置（网格、入口、终点、障碍物）
//   - towers: 塔属性配置
//   - enemies: 敌人属性配置
//
// 配置不合法或障碍物阻断了入口到终点的路径时返回错误。
func New(cfg *config.GameConfig, towers *config.TowerStatsConfig, enemies *config.EnemyStatsConfig) (*Simulation, error) {
	if cfg == nil || towers == nil || enemies == nil {
		return nil, fmt.Errorf("game, tower and enemy configs are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	tr, err := grid.NewTranslator(cfg.Columns, cfg.Rows, cfg.CellSize)
	if err != nil {
		return nil, err
	}

	occupancy := grid.NewOccupancy(tr)
	for _, o := range cfg.Obstacles {
		if err := occupancy.Occupy(o, grid.OccupantObstacle); err != nil {
			return nil, fmt.Errorf("failed to place obstacle: %w", err)
		}
	}

	em := ecs.NewEntityManager()
	slow := systems.SlowEffect{Multiplier: cfg.SlowMultiplier, Steps: cfg.SlowSteps}

	s := &Simulation{
		cfg:         cfg,
		towers:      towers,
		enemies:     enemies,
		tr:          tr,
		occupancy:   occupancy,
		em:          em,
		bus:         event.NewBus(),
		combat:      systems.NewCombatSystem(em, tr, towers, slow),
		projectiles: systems.NewProjectileSystem(em, tr, slow),
		movement:    systems.NewMovementSystem(em, tr),
		spawner:     systems.NewWaveSpawnSystem(em, tr, enemies, *cfg.Start),
		towerAt:     make(map[types.Cell]ecs.EntityID),
	}

	s.field = s.computeField(occupancy.BlockedWith())
	if !s.field.Reachable(*cfg.Start) {
		return nil, fmt.Errorf("obstacles disconnect start (%d, %d) from goal (%d, %d)",
			cfg.Start.Col, cfg.Start.Row, cfg.Goal.Col, cfg.Goal.Row)
	}

	log.Printf("[Simulation] Created %dx%d grid (cell %dpx), start (%d, %d), goal (%d, %d), %d obstacles",
		cfg.Columns, cfg.Rows, cfg.CellSize, cfg.Start.Col, cfg.Start.Row, cfg.Goal.Col, cfg.Goal.Row, len(cfg.Obstacles))

	return s, nil
}

// Load 从默认路径加载配置并创建模拟
func Load() (*Simulation, error) {
	cfg, err := config.LoadGameConfig(config.GameConfigPath)
	if err != nil {
		return nil, err
	}
	towers, err := config.LoadTowerStats(config.TowerStatsPath)
	if err != nil {
		return nil, err
	}
	enemies, err := config.LoadEnemyStats(config.EnemyStatsPath)
	if err != nil {
		return nil, err
	}
	return New(cfg, towers, enemies)
}

// SetVerbose 开关各系统的详细日志
func (s *Simulation) SetVerbose(verbose bool) {
	s.combat.SetVerbose(verbose)
	s.movement.SetVerbose(verbose)
}

// Config 返回游戏配置（只读）
func (s *Simulation) Config() *config.GameConfig {
	return s.cfg
}

// TowerStats 返回塔属性配置（只读）
func (s *Simulation) TowerStats() *config.TowerStatsConfig {
	return s.towers
}

// EnemyStats 返回敌人属性配置（只读）
func (s *Simulation) EnemyStats() *config.EnemyStatsConfig {
	return s.enemies
}

// On 注册事件监听器，同一类型的监听器按注册顺序同步调用
func (s *Simulation) On(kind event.Kind, handler event.Handler) {
	s.bus.On(kind, handler)
}

// CurrentStep 已推进的 tick 数
func (s *Simulation) CurrentStep() int {
	return s.step
}

// Step 推进一个 tick
//
// 顺序固定：计数器 +1 → 塔开火 → 投射物飞行 → 敌人移动
// → 移除死亡与逃脱的敌人（依次发出死亡、逃脱事件）
// → 注入到期的敌人 → 报告清空的波次。
func (s *Simulation) Step() {
	s.step++

	s.combat.Update()
	s.projectiles.Update()
	escapedIDs := s.movement.Update(s.field)

	var dead []types.EnemySnapshot
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](s.em) {
		if s.em.IsMarkedForDestruction(id) {
			continue
		}
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		if health.IsDead() {
			dead = append(dead, s.enemySnapshot(id))
			s.em.DestroyEntity(id)
		}
	}

	escaped := make([]types.EnemySnapshot, 0, len(escapedIDs))
	for _, id := range escapedIDs {
		escaped = append(escaped, s.enemySnapshot(id))
		s.em.DestroyEntity(id)
	}

	s.em.RemoveMarkedEntities()

	if len(dead) > 0 {
		s.bus.Emit(event.Event{Kind: event.EnemyDeath, Step: s.step, Enemies: dead})
	}
	if len(escaped) > 0 {
		s.bus.Emit(event.Event{Kind: event.EnemyEscape, Step: s.step, Enemies: escaped})
	}

	s.spawner.Update(s.step)

	for _, wave := range s.spawner.ClearedWaves() {
		log.Printf("[Simulation] Wave %d cleared at step %d", wave, s.step)
		s.bus.Emit(event.Event{Kind: event.WaveCleared, Step: s.step, Wave: wave})
	}
}

// QueueWave 排队一波敌人
//
// 参数：
//   - entries: 波次时间线，tick 相对当前 tick
//   - clear: 是否先丢弃所有尚未生成的敌人
//
// 返回：
//   - int: 波次编号（从 1 开始递增）
//   - error: 时间线含未配置的敌人类型时返回 ErrUnknownEnemyType，不排队任何条目
func (s *Simulation) QueueWave(entries []types.WaveEntry, clear bool) (int, error) {
	for i, e := range entries {
		if _, ok := s.enemies.Get(e.Enemy); !ok {
			return 0, fmt.Errorf("entry %d (%s): %w", i, e.Enemy, ErrUnknownEnemyType)
		}
	}
	wave, _ := s.spawner.Enqueue(s.step, entries, clear)
	return wave, nil
}

// Spawn 立即在入口生成一个敌人（不属于任何波次）
func (s *Simulation) Spawn(enemyType types.EnemyType) (types.EnemySnapshot, error) {
	if _, ok := s.enemies.Get(enemyType); !ok {
		return types.EnemySnapshot{}, fmt.Errorf("%s: %w", enemyType, ErrUnknownEnemyType)
	}
	id, err := s.spawner.Spawn(enemyType)
	if err != nil {
		return types.EnemySnapshot{}, err
	}
	return s.enemySnapshot(id), nil
}

// PendingSpawns 尚未生成的敌人数
func (s *Simulation) PendingSpawns() int {
	return s.spawner.PendingCount()
}

// Reset 清空所有塔、敌人、投射物和待生成条目，tick 归零
// 障碍物和事件监听器保留
func (s *Simulation) Reset() {
	s.em.Clear()
	s.occupancy.Clear(grid.OccupantTower)
	s.towerAt = make(map[types.Cell]ecs.EntityID)
	s.spawner.Reset()
	s.step = 0
	s.field = s.computeField(s.occupancy.BlockedWith())
	log.Printf("[Simulation] Reset")
}

func (s *Simulation) computeField(blocked func(types.Cell) bool) *grid.PathField {
	return grid.ComputePathField(s.tr, blocked, *s.cfg.Start, *s.cfg.Goal, *s.cfg.ExitDelta)
}
