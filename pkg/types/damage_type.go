package types

import "fmt"

// DamageType 伤害类型，敌人可按类型免疫
type DamageType string

const (
	DamageProjectile DamageType = "projectile"
	DamageExplosive  DamageType = "explosive"
	DamageEnergy     DamageType = "energy"
	DamageIce        DamageType = "ice"
)

// Valid 检查伤害类型是否属于已知集合
func (d DamageType) Valid() bool {
	switch d {
	case DamageProjectile, DamageExplosive, DamageEnergy, DamageIce:
		return true
	}
	return false
}

// ParseDamageType 将配置字符串解析为伤害类型
func ParseDamageType(s string) (DamageType, error) {
	d := DamageType(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown damage type %q", s)
	}
	return d, nil
}
