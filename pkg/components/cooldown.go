package components

import "fmt"

// CooldownComponent 以 tick 为单位的冷却计数器
//
// CooldownSteps 为 0 表示每个 tick 都就绪；否则开火后需要经过
// CooldownSteps 个 tick 才能再次就绪。
type CooldownComponent struct {
	CooldownSteps int
	Remaining     int
}

// NewCooldownComponent 创建冷却计数器，初始即就绪
// steps 不能为负
func NewCooldownComponent(steps int) *CooldownComponent {
	if steps < 0 {
		panic(fmt.Sprintf("cooldown steps must not be negative, got %d", steps))
	}
	return &CooldownComponent{CooldownSteps: steps}
}

// Tick 推进一个 tick，剩余值不低于 0
func (c *CooldownComponent) Tick() {
	if c.Remaining > 0 {
		c.Remaining--
	}
}

// IsReady 是否就绪
func (c *CooldownComponent) IsReady() bool {
	return c.Remaining == 0
}

// Restart 开火后重新开始计时
func (c *CooldownComponent) Restart() {
	c.Remaining = c.CooldownSteps
}
