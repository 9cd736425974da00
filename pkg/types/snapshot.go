package types

// EnemySnapshot 敌人的只读快照，用于事件和渲染
type EnemySnapshot struct {
	ID        uint64
	Type      EnemyType
	X, Y      float64
	Width     float64
	Height    float64
	Health    int
	MaxHealth int
	Points    int
	Wave      int
	Slowed    bool
}

// TowerSnapshot 塔的只读快照
type TowerSnapshot struct {
	ID            uint64
	Type          TowerType
	Cell          Cell
	X, Y          float64
	Rotation      float64
	Level         int
	Damage        int
	CooldownSteps int
	Remaining     int
	Value         int
	LevelCost     int
	RangeRadius   float64
}

// ProjectileSnapshot 投射物的只读快照
type ProjectileSnapshot struct {
	ID       uint64
	Kind     ProjectileKind
	X, Y     float64
	Rotation float64
}

// ProjectileKind 投射物种类
type ProjectileKind string

const (
	// ProjectileMissile 追踪导弹
	ProjectileMissile ProjectileKind = "missile"
	// ProjectilePulse 直线脉冲
	ProjectilePulse ProjectileKind = "pulse"
)
