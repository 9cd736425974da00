package systems

import (
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
	"github.com/decker502/towerdefense/pkg/utils"
)

// ProjectileSystem 投射物系统
//
// 导弹：每 tick 朝目标转向并前进，命中目标时造成伤害并消失；
// 目标已死亡或离场时导弹失效。
// 脉冲：沿直线前进，途中每个敌人至多命中一次，命中次数耗尽或飞出射程后消失。
type ProjectileSystem struct {
	em       *ecs.EntityManager
	tr       *grid.Translator
	slow     SlowEffect
	lifetime *LifetimeSystem
}

// NewProjectileSystem 创建投射物系统
func NewProjectileSystem(em *ecs.EntityManager, tr *grid.Translator, slow SlowEffect) *ProjectileSystem {
	return &ProjectileSystem{em: em, tr: tr, slow: slow, lifetime: NewLifetimeSystem(em)}
}

// Update 推进所有投射物一个 tick
func (s *ProjectileSystem) Update() {
	ids := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](s.em)

	for _, id := range ids {
		if s.em.IsMarkedForDestruction(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.em, id)

		switch proj.Kind {
		case types.ProjectileMissile:
			s.updateMissile(id, proj, pos, col)
		case types.ProjectilePulse:
			s.updatePulse(id, proj, pos, col)
		default:
			s.em.DestroyEntity(id)
		}
	}

	// 脉冲飞出射程后过期
	s.lifetime.Update()
}

func (s *ProjectileSystem) updateMissile(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, col *components.CollisionComponent) {
	target, ok := s.liveTarget(proj.Target)
	if !ok {
		s.em.DestroyEntity(id)
		return
	}

	angle := utils.AngleBetween(pos.X, pos.Y, target.X, target.Y)
	proj.Rotation, _ = utils.RotateToward(proj.Rotation, angle, proj.RotationThreshold)

	dx, dy := utils.PolarToRectangular(proj.Speed, proj.Rotation)
	pos.X += dx
	pos.Y += dy

	if s.hits(pos, col, proj.Target) {
		ApplyDamage(s.em, proj.Target, proj.Damage, proj.DamageType, s.slow)
		s.em.DestroyEntity(id)
		return
	}

	if !s.nearGrid(pos) {
		s.em.DestroyEntity(id)
	}
}

func (s *ProjectileSystem) updatePulse(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, col *components.CollisionComponent) {
	dx, dy := utils.PolarToRectangular(proj.Speed, proj.Rotation)
	pos.X += dx
	pos.Y += dy

	for _, enemyID := range liveEnemies(s.em) {
		if proj.HitSet[enemyID] {
			continue
		}
		if !s.hits(pos, col, enemyID) {
			continue
		}
		ApplyDamage(s.em, enemyID, proj.Damage, proj.DamageType, s.slow)
		proj.HitSet[enemyID] = true
		proj.Hits--
		if proj.Hits <= 0 {
			s.em.DestroyEntity(id)
			return
		}
	}
}

// liveTarget 目标仍存活时返回其位置
func (s *ProjectileSystem) liveTarget(target ecs.EntityID) (*components.PositionComponent, bool) {
	if target == 0 || !s.em.Exists(target) || s.em.IsMarkedForDestruction(target) {
		return nil, false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.em, target)
	if !ok || health.IsDead() {
		return nil, false
	}
	return ecs.GetComponent[*components.PositionComponent](s.em, target)
}

// hits 投射物边界框是否与敌人边界框相交
func (s *ProjectileSystem) hits(pos *components.PositionComponent, col *components.CollisionComponent, enemyID ecs.EntityID) bool {
	epos, ok := ecs.GetComponent[*components.PositionComponent](s.em, enemyID)
	if !ok {
		return false
	}
	ecol, ok := ecs.GetComponent[*components.CollisionComponent](s.em, enemyID)
	if !ok {
		return false
	}
	return utils.RectanglesIntersect(pos.X, pos.Y, col.Width, col.Height, epos.X, epos.Y, ecol.Width, ecol.Height)
}

// nearGrid 是否仍在网格外扩一格的范围内
func (s *ProjectileSystem) nearGrid(pos *components.PositionComponent) bool {
	w, h := s.tr.Pixels()
	margin := float64(s.tr.CellSize)
	return pos.X >= -margin && pos.X <= float64(w)+margin && pos.Y >= -margin && pos.Y <= float64(h)+margin
}
