// Package event 提供模拟事件的分发
//
// 监听器按事件类型注册，同一类型的监听器按注册顺序同步调用。
// 事件只分发一次，不做存储。
package event

import "github.com/decker502/towerdefense/pkg/types"

// Kind 事件类型
type Kind string

const (
	// EnemyDeath 本 tick 有敌人被击杀
	EnemyDeath Kind = "enemy_death"
	// EnemyEscape 本 tick 有敌人逃出网格
	EnemyEscape Kind = "enemy_escape"
	// WaveCleared 某一波的敌人全部生成且全部离场
	WaveCleared Kind = "wave_cleared"
)

// Event 一次事件
type Event struct {
	Kind Kind
	// Step 事件发生时的 tick
	Step int
	// Enemies 本 tick 受影响的敌人（死亡/逃脱事件）
	Enemies []types.EnemySnapshot
	// Wave 已清空的波次编号（WaveCleared 事件）
	Wave int
}

// Handler 事件处理函数
type Handler func(Event)

// Bus 事件总线
type Bus struct {
	handlers map[Kind][]Handler
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// On 注册监听器
func (b *Bus) On(kind Kind, handler Handler) {
	if handler == nil {
		return
	}
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Emit 分发事件给该类型的所有监听器
func (b *Bus) Emit(e Event) {
	for _, h := range b.handlers[e.Kind] {
		h(e)
	}
}

// HasListeners 是否有该类型的监听器
func (b *Bus) HasListeners(kind Kind) bool {
	return len(b.handlers[kind]) > 0
}
