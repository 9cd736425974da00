package components

// LifetimeComponent 管理投射物的生命周期（以 tick 计）
// 脉冲飞出射程后过期
type LifetimeComponent struct {
	MaxSteps     int // 最大存活 tick 数
	CurrentSteps int // 已存活 tick 数
}

// Advance 推进一个 tick，返回是否已过期
func (l *LifetimeComponent) Advance() bool {
	l.CurrentSteps++
	return l.CurrentSteps >= l.MaxSteps
}
