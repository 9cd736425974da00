package types

import "fmt"

// EnemyType 定义敌人的类型（封闭集合）
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型
	EnemyUnknown EnemyType = iota
	// EnemySimple 普通敌人
	EnemySimple
	// EnemyAdvance 高级敌人：免疫减速
	EnemyAdvance
	// EnemyBig 重型敌人：免疫投射物与爆炸伤害
	EnemyBig
)

// AllEnemyTypes 列出所有敌人类型
var AllEnemyTypes = []EnemyType{EnemySimple, EnemyAdvance, EnemyBig}

// String 返回敌人类型的配置ID（与 enemies.yaml 中的键一致）
func (e EnemyType) String() string {
	switch e {
	case EnemySimple:
		return "simple"
	case EnemyAdvance:
		return "advance"
	case EnemyBig:
		return "big"
	default:
		return "unknown"
	}
}

// ParseEnemyType 将配置ID解析为敌人类型
func ParseEnemyType(id string) (EnemyType, error) {
	for _, e := range AllEnemyTypes {
		if e.String() == id {
			return e, nil
		}
	}
	return EnemyUnknown, fmt.Errorf("unknown enemy type %q", id)
}
