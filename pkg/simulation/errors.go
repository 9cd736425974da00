package simulation

import (
	"errors"

	"github.com/decker502/towerdefense/pkg/systems"
)

var (
	// ErrInvalidPlacement 格子不能放塔：越界、已占用、是入口/终点，或会阻断路径
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrNotFound 格子上没有塔
	ErrNotFound = errors.New("tower not found")
	// ErrUpgradeUnavailable 塔不支持该升级，或已达上限
	ErrUpgradeUnavailable = systems.ErrUpgradeUnavailable
	// ErrUnknownTowerType 塔类型没有属性配置
	ErrUnknownTowerType = errors.New("unknown tower type")
	// ErrUnknownEnemyType 敌人类型没有属性配置
	ErrUnknownEnemyType = errors.New("unknown enemy type")
)
