package systems

import (
	"log"
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/decker502/towerdefense/pkg/utils"
)

// shot 一次开火的上下文
type shot struct {
	towerID ecs.EntityID
	tower   *components.TowerComponent
	pos     *components.PositionComponent
	// targets 射程内的存活敌人（按实体ID升序），首个为主目标
	targets []ecs.EntityID
}

// towerBehavior 不同塔类型的开火行为
type towerBehavior interface {
	fire(s *CombatSystem, sh shot)
}

// CombatSystem 塔的战斗系统
//
// 每个 tick 对每座塔：推进冷却 → 查询射程内敌人 → 选择目标
// → 炮塔转向 → 按塔类型开火 → 重启冷却。
// 目标选择取实体ID最小（最早生成）的敌人，保证结果确定。
type CombatSystem struct {
	em     *ecs.EntityManager
	tr     *grid.Translator
	towers *config.TowerStatsConfig
	slow   SlowEffect

	behaviors map[types.TowerType]towerBehavior

	// verbose 是否输出详细日志
	verbose bool
}

// NewCombatSystem 创建战斗系统
//
// 参数：
//   - em: 实体管理器
//   - tr: 坐标转换器
//   - towers: 塔属性配置（投射物参数）
//   - slow: 冰冻伤害附带的减速效果
func NewCombatSystem(em *ecs.EntityManager, tr *grid.Translator, towers *config.TowerStatsConfig, slow SlowEffect) *CombatSystem {
	return &CombatSystem{
		em:     em,
		tr:     tr,
		towers: towers,
		slow:   slow,
		behaviors: map[types.TowerType]towerBehavior{
			types.TowerSimple:  directDamage{},
			types.TowerEnergy:  directDamage{},
			types.TowerMissile: missileLauncher{},
			types.TowerPulse:   pulseEmitter{},
			types.TowerIce:     areaDamage{},
		},
	}
}

// SetVerbose 开关详细日志
func (s *CombatSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 推进所有塔一个 tick
func (s *CombatSystem) Update() {
	towerIDs := ecs.GetEntitiesWith3[
		*components.TowerComponent,
		*components.CooldownComponent,
		*components.PositionComponent,
	](s.em)

	for _, id := range towerIDs {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.em, id)
		cooldown, _ := ecs.GetComponent[*components.CooldownComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)

		cooldown.Tick()
		if !cooldown.IsReady() {
			continue
		}

		targets := s.EnemiesInRange(tower, pos)
		if len(targets) == 0 {
			continue
		}

		if tower.Turret && !s.aim(tower, pos, targets[0]) {
			continue
		}

		behavior, ok := s.behaviors[tower.Type]
		if !ok {
			log.Printf("[CombatSystem] WARNING: no behavior for tower type %s", tower.Type)
			continue
		}
		behavior.fire(s, shot{towerID: id, tower: tower, pos: pos, targets: targets})
		cooldown.Restart()

		if s.verbose {
			log.Printf("[CombatSystem] tower %d (%s) fired at enemy %d", id, tower.Type, targets[0])
		}
	}
}

// EnemiesInRange 返回边界框与塔射程相交的存活敌人（按实体ID升序）
func (s *CombatSystem) EnemiesInRange(tower *components.TowerComponent, pos *components.PositionComponent) []ecs.EntityID {
	cs := float64(s.tr.CellSize)
	var result []ecs.EntityID

	for _, id := range liveEnemies(s.em) {
		epos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id)
		if !ok {
			continue
		}
		minX, minY, maxX, maxY := col.Bounds(epos.X, epos.Y)
		if tower.Range.IntersectsBox(
			(minX-pos.X)/cs, (minY-pos.Y)/cs,
			(maxX-pos.X)/cs, (maxY-pos.Y)/cs,
		) {
			result = append(result, id)
		}
	}
	return result
}

// aim 炮塔朝目标转向，转到位才能开火
func (s *CombatSystem) aim(tower *components.TowerComponent, pos *components.PositionComponent, target ecs.EntityID) bool {
	tpos, _ := ecs.GetComponent[*components.PositionComponent](s.em, target)
	angle := utils.AngleBetween(pos.X, pos.Y, tpos.X, tpos.Y)
	var aligned bool
	tower.Rotation, aligned = utils.RotateToward(tower.Rotation, angle, tower.RotationThreshold)
	return aligned
}

// directDamage 直接对主目标造成伤害（普通炮塔、能量塔）
type directDamage struct{}

func (directDamage) fire(s *CombatSystem, sh shot) {
	ApplyDamage(s.em, sh.targets[0], sh.tower.BaseDamage, sh.tower.DamageType, s.slow)
}

// areaDamage 对射程内所有敌人造成伤害（冰塔）
type areaDamage struct{}

func (areaDamage) fire(s *CombatSystem, sh shot) {
	for _, id := range sh.targets {
		ApplyDamage(s.em, id, sh.tower.BaseDamage, sh.tower.DamageType, s.slow)
	}
}

// missileLauncher 朝主目标发射追踪导弹（导弹塔）
type missileLauncher struct{}

func (missileLauncher) fire(s *CombatSystem, sh shot) {
	cfg := s.projectileConfig(sh.tower.Type)
	if cfg == nil {
		return
	}
	if _, err := entities.NewMissile(s.em, s.tr.CellSize, cfg, sh.pos.X, sh.pos.Y, sh.tower.Rotation,
		sh.targets[0], sh.tower.BaseDamage, sh.tower.DamageType); err != nil {
		log.Printf("[CombatSystem] ERROR: failed to launch missile from tower %d: %v", sh.towerID, err)
	}
}

// pulseEmitter 沿四个轴向发射脉冲（脉冲塔）
type pulseEmitter struct{}

func (pulseEmitter) fire(s *CombatSystem, sh shot) {
	cfg := s.projectileConfig(sh.tower.Type)
	if cfg == nil {
		return
	}
	reach := sh.tower.Range.OuterRadius()
	for _, angle := range []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2} {
		if _, err := entities.NewPulse(s.em, s.tr.CellSize, cfg, sh.pos.X, sh.pos.Y, angle,
			reach, sh.tower.BaseDamage, sh.tower.DamageType); err != nil {
			log.Printf("[CombatSystem] ERROR: failed to emit pulse from tower %d: %v", sh.towerID, err)
		}
	}
}

func (s *CombatSystem) projectileConfig(t types.TowerType) *config.ProjectileConfig {
	stats, ok := s.towers.Get(t)
	if !ok || stats.Projectile == nil {
		log.Printf("[CombatSystem] ERROR: tower type %s has no projectile config", t)
		return nil
	}
	return stats.Projectile
}
