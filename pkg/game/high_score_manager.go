package game

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MaxHighScores 排行榜保留的条目数
const MaxHighScores = 10

// HighScoreEntry 排行榜条目
type HighScoreEntry struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
	Wave  int    `yaml:"wave"` // 结束时到达的波次
}

// HighScoreManager 排行榜管理器
// 按分数降序保存前 MaxHighScores 名，同分时先上榜的排在前面
type HighScoreManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	entries      []HighScoreEntry
}

const (
	highScoreObject   = "highscores"
	highScoreProperty = "top"
)

// NewHighScoreManager 创建排行榜管理器并加载已保存的记录
// 加载失败时从空榜开始
func NewHighScoreManager(gdataManager *gdata.Manager) *HighScoreManager {
	hm := &HighScoreManager{gdataManager: gdataManager}
	if err := hm.Load(); err != nil {
		log.Printf("[HighScoreManager] Warning: Failed to load high scores: %v (starting empty)", err)
	}
	return hm
}

// Load 从 gdata 加载排行榜
func (hm *HighScoreManager) Load() error {
	hm.entries = nil
	if hm.gdataManager == nil || !hm.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		return nil
	}

	data, err := hm.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		return fmt.Errorf("failed to load high scores: %w", err)
	}

	var entries []HighScoreEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal high scores: %w", err)
	}

	// 文件可能被手工修改过，重新排序并截断
	slices.SortStableFunc(entries, func(a, b HighScoreEntry) int { return b.Score - a.Score })
	if len(entries) > MaxHighScores {
		entries = entries[:MaxHighScores]
	}
	hm.entries = entries
	log.Printf("[HighScoreManager] Loaded %d high scores", len(entries))
	return nil
}

// Save 保存排行榜到 gdata
func (hm *HighScoreManager) Save() error {
	if hm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(hm.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal high scores: %w", err)
	}
	if err := hm.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save high scores: %w", err)
	}
	return nil
}

// DoesScoreQualify 分数能否进入排行榜
func (hm *HighScoreManager) DoesScoreQualify(score int) bool {
	if len(hm.entries) < MaxHighScores {
		return true
	}
	return score > hm.entries[len(hm.entries)-1].Score
}

// AddEntry 添加记录，返回名次（从 1 开始），未上榜返回 0
func (hm *HighScoreManager) AddEntry(name string, score, wave int) int {
	if !hm.DoesScoreQualify(score) {
		return 0
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Anonymous"
	}

	// 插在所有不低于该分数的记录之后
	pos := len(hm.entries)
	for i, e := range hm.entries {
		if score > e.Score {
			pos = i
			break
		}
	}
	hm.entries = slices.Insert(hm.entries, pos, HighScoreEntry{Name: name, Score: score, Wave: wave})
	if len(hm.entries) > MaxHighScores {
		hm.entries = hm.entries[:MaxHighScores]
	}

	log.Printf("[HighScoreManager] %s entered the high scores at #%d with %d", name, pos+1, score)
	return pos + 1
}

// Entries 返回排行榜副本
func (hm *HighScoreManager) Entries() []HighScoreEntry {
	return slices.Clone(hm.entries)
}
