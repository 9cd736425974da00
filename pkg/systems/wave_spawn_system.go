package systems

import (
	"fmt"
	"log"
	"slices"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
)

// pendingSpawn 等待注入的敌人
type pendingSpawn struct {
	step  int // 绝对 tick
	enemy types.EnemyType
	wave  int
}

// waveState 单个波次的跟踪状态
type waveState struct {
	pending  int  // 尚未注入的条目数
	injected int  // 已注入的条目数
	cleared  bool // 是否已报告清空
}

// WaveSpawnSystem 波次生成系统
//
// 职责：
//   - 接收外部关卡逻辑提供的波次时间线，换算为绝对 tick 后按序保存
//   - 在 tick 到达时把敌人注入实体集合，每个条目恰好注入一次
//   - 跟踪每一波的剩余条目与存活敌人，波次清空只报告一次
//
// 架构说明：
//   - 使用敌人工厂函数创建实体（entities 包），敌人生成在入口格
//   - 由 Simulation 在每个 tick 的固定位置调用
type WaveSpawnSystem struct {
	em      *ecs.EntityManager
	tr      *grid.Translator
	enemies *config.EnemyStatsConfig
	start   types.Cell

	pending  []pendingSpawn
	waves    map[int]*waveState
	nextWave int
}

// NewWaveSpawnSystem 创建波次生成系统
//
// 参数：
//   - em: 实体管理器
//   - tr: 坐标转换器
//   - enemies: 敌人属性配置
//   - start: 敌人入口格
func NewWaveSpawnSystem(em *ecs.EntityManager, tr *grid.Translator, enemies *config.EnemyStatsConfig, start types.Cell) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		em:       em,
		tr:       tr,
		enemies:  enemies,
		start:    start,
		waves:    make(map[int]*waveState),
		nextWave: 1,
	}
}

// Enqueue 加入一波敌人
//
// 参数：
//   - currentStep: 当前 tick，条目的相对 tick 以此为基准
//   - entries: 波次时间线（相对 tick 不能为负）
//   - clear: 是否先丢弃所有未注入的条目
//
// 返回：
//   - int: 波次编号
//   - []ecs.EntityID: 已到期并立即注入的敌人
func (s *WaveSpawnSystem) Enqueue(currentStep int, entries []types.WaveEntry, clear bool) (int, []ecs.EntityID) {
	if clear {
		s.dropPending()
	}

	wave := s.nextWave
	s.nextWave++
	s.waves[wave] = &waveState{pending: len(entries)}

	added := make([]pendingSpawn, 0, len(entries))
	for i, e := range entries {
		if e.Step < 0 {
			panic(fmt.Sprintf("corrupted wave timeline: entry %d of wave %d has negative step %d", i, wave, e.Step))
		}
		added = append(added, pendingSpawn{step: currentStep + e.Step, enemy: e.Enemy, wave: wave})
	}
	slices.SortStableFunc(added, func(a, b pendingSpawn) int { return a.step - b.step })

	// 归并，保持整体按 tick 升序且同 tick 内先入先出
	merged := make([]pendingSpawn, 0, len(s.pending)+len(added))
	i, j := 0, 0
	for i < len(s.pending) && j < len(added) {
		if added[j].step < s.pending[i].step {
			merged = append(merged, added[j])
			j++
		} else {
			merged = append(merged, s.pending[i])
			i++
		}
	}
	merged = append(merged, s.pending[i:]...)
	merged = append(merged, added[j:]...)
	s.pending = merged

	log.Printf("[WaveSpawnSystem] Queued wave %d with %d entries at step %d", wave, len(entries), currentStep)

	return wave, s.Update(currentStep)
}

// dropPending 丢弃所有未注入的条目
// 已有敌人注入的波次保留跟踪状态，等这些敌人离场后照常报告清空；
// 一个敌人都没注入过的波次直接遗忘
func (s *WaveSpawnSystem) dropPending() {
	affected := make(map[int]bool)
	for _, p := range s.pending {
		state, ok := s.waves[p.wave]
		if !ok {
			continue
		}
		state.pending--
		affected[p.wave] = true
	}
	for wave := range affected {
		if s.waves[wave].injected == 0 {
			delete(s.waves, wave)
		}
	}

	if len(s.pending) > 0 {
		log.Printf("[WaveSpawnSystem] Dropped %d pending entries from %d waves", len(s.pending), len(affected))
	}
	s.pending = s.pending[:0]
}

// Update 注入所有到期（tick <= step）的敌人
//
// 返回：
//   - []ecs.EntityID: 本次注入的敌人
func (s *WaveSpawnSystem) Update(step int) []ecs.EntityID {
	var spawned []ecs.EntityID

	n := 0
	for n < len(s.pending) && s.pending[n].step <= step {
		p := s.pending[n]
		n++
		if state, ok := s.waves[p.wave]; ok {
			state.pending--
			state.injected++
		}

		id, err := s.spawn(p.enemy, p.wave)
		if err != nil {
			log.Printf("[WaveSpawnSystem] ERROR: failed to spawn %s for wave %d: %v", p.enemy, p.wave, err)
			continue
		}
		spawned = append(spawned, id)
	}
	s.pending = s.pending[n:]

	return spawned
}

// Spawn 立即在入口格生成一个不属于任何波次的敌人
func (s *WaveSpawnSystem) Spawn(enemyType types.EnemyType) (ecs.EntityID, error) {
	return s.spawn(enemyType, 0)
}

func (s *WaveSpawnSystem) spawn(enemyType types.EnemyType, wave int) (ecs.EntityID, error) {
	stats, ok := s.enemies.Get(enemyType)
	if !ok {
		return 0, fmt.Errorf("no stats for enemy type %s", enemyType)
	}
	return entities.NewEnemy(s.em, s.tr, enemyType, stats, s.start, wave)
}

// ClearedWaves 返回新清空的波次（按编号升序），每个波次只返回一次
// 清空条件：没有待注入条目，且没有属于该波次的敌人仍在实体集合中
func (s *WaveSpawnSystem) ClearedWaves() []int {
	alive := make(map[int]int)
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.em) {
		if s.em.IsMarkedForDestruction(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, id)
		alive[enemy.Wave]++
	}

	var cleared []int
	for wave, state := range s.waves {
		if state.cleared || state.pending > 0 || alive[wave] > 0 {
			continue
		}
		state.cleared = true
		cleared = append(cleared, wave)
	}
	slices.Sort(cleared)
	return cleared
}

// PendingCount 待注入的条目数
func (s *WaveSpawnSystem) PendingCount() int {
	return len(s.pending)
}

// Reset 清空所有状态，波次编号从 1 重新开始
func (s *WaveSpawnSystem) Reset() {
	s.pending = nil
	s.waves = make(map[int]*waveState)
	s.nextWave = 1
}
