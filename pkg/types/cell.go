package types

// Cell 网格坐标（列, 行），允许位于网格之外（如入口/出口格）
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// Add 返回偏移后的格子
func (c Cell) Add(d Delta) Cell {
	return Cell{Col: c.Col + d.DX, Row: c.Row + d.DY}
}

// Sub 返回从 o 指向 c 的偏移
func (c Cell) Sub(o Cell) Delta {
	return Delta{DX: c.Col - o.Col, DY: c.Row - o.Row}
}

// Delta 轴对齐的单位移动方向
type Delta struct {
	DX int `yaml:"dx"`
	DY int `yaml:"dy"`
}

// IsZero 是否为零向量
func (d Delta) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// IsUnitAxis 是否为轴对齐的单位向量
func (d Delta) IsUnitAxis() bool {
	return (d.DX == 0) != (d.DY == 0) && d.DX*d.DX+d.DY*d.DY == 1
}
