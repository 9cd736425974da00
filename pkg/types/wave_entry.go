package types

// WaveEntry 波次时间线中的一项
// Step 是相对于入队时刻的激活步数，Enemy 决定使用哪个敌人工厂
type WaveEntry struct {
	Step  int
	Enemy EnemyType
}
