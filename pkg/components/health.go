package components

// HealthComponent 存储敌人的生命值
// CurrentHealth 永远不会低于 0，等于 0 即视为死亡
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// IsDead 生命值是否已归零
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}

// Percentage 剩余生命值比例 [0, 1]，用于血条渲染
func (h *HealthComponent) Percentage() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	return float64(h.CurrentHealth) / float64(h.MaxHealth)
}
