// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// TowerType 定义塔的类型（封闭集合）
type TowerType int

const (
	// TowerUnknown 未知塔类型
	TowerUnknown TowerType = iota
	// TowerSimple 普通炮塔：转向目标后造成投射物伤害
	TowerSimple
	// TowerMissile 导弹塔：环形射程，发射追踪导弹造成爆炸伤害
	TowerMissile
	// TowerEnergy 能量塔：转向目标后造成能量伤害
	TowerEnergy
	// TowerIce 冰塔：无需转向，减速射程内所有敌人
	TowerIce
	// TowerPulse 脉冲塔：十字射程，向四个方向发射脉冲
	TowerPulse
)

// AllTowerTypes 按商店顺序列出所有可建造的塔
var AllTowerTypes = []TowerType{TowerSimple, TowerMissile, TowerEnergy, TowerIce, TowerPulse}

// String 返回塔类型的配置ID（与 towers.yaml 中的键一致）
func (t TowerType) String() string {
	switch t {
	case TowerSimple:
		return "simple"
	case TowerMissile:
		return "missile"
	case TowerEnergy:
		return "energy"
	case TowerIce:
		return "ice"
	case TowerPulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// ParseTowerType 将配置ID解析为塔类型
func ParseTowerType(id string) (TowerType, error) {
	for _, t := range AllTowerTypes {
		if t.String() == id {
			return t, nil
		}
	}
	return TowerUnknown, fmt.Errorf("unknown tower type %q", id)
}

// UpgradeKind 塔的升级项
type UpgradeKind string

const (
	// UpgradeDamage 提高伤害
	UpgradeDamage UpgradeKind = "damage"
	// UpgradeCooldown 缩短冷却
	UpgradeCooldown UpgradeKind = "cooldown"
)

// ParseUpgradeKind 解析升级项
func ParseUpgradeKind(s string) (UpgradeKind, error) {
	switch UpgradeKind(s) {
	case UpgradeDamage, UpgradeCooldown:
		return UpgradeKind(s), nil
	}
	return "", fmt.Errorf("unknown upgrade kind: %q", s)
}
