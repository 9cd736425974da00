// validate_yaml 检查 data/ 下的全部配置：游戏参数、塔和敌人属性、脚本关卡
//
// 用法：go run ./tools/validate_yaml.go
package main

import (
	"fmt"
	"os"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/embedded"
	"github.com/decker502/towerdefense/pkg/level"
	"github.com/decker502/towerdefense/pkg/simulation"
)

func main() {
	failures := 0
	fail := func(format string, args ...any) {
		fmt.Printf("❌ "+format+"\n", args...)
		failures++
	}

	cfg, err := config.LoadGameConfig(config.GameConfigPath)
	if err != nil {
		fail("%v", err)
	}
	towers, err := config.LoadTowerStats(config.TowerStatsPath)
	if err != nil {
		fail("%v", err)
	} else {
		fmt.Printf("✅ 塔类型数量: %d\n", len(towers.Towers))
	}
	enemies, err := config.LoadEnemyStats(config.EnemyStatsPath)
	if err != nil {
		fail("%v", err)
	} else {
		fmt.Printf("✅ 敌人类型数量: %d\n", len(enemies.Enemies))
	}

	if failures == 0 {
		sim, err := simulation.New(cfg, towers, enemies)
		if err != nil {
			fail("网格不可用: %v", err)
		} else {
			fmt.Printf("✅ 网格 %dx%d，当前路径长度 %d\n", cfg.Columns, cfg.Rows, len(sim.Path()))
		}
	}

	files, err := embedded.Glob("data/levels/*.yaml")
	if err != nil {
		fail("%v", err)
	}
	for _, path := range files {
		lvl, err := level.LoadScriptedLevel(path)
		if err != nil {
			fail("%s: %v", path, err)
			continue
		}
		spawns := 0
		for n := 1; n <= lvl.Waves(); n++ {
			entries, err := lvl.Wave(n)
			if err != nil {
				fail("%s 第 %d 波: %v", path, n, err)
			}
			spawns += len(entries)
		}
		fmt.Printf("✅ %s: %d 波，共 %d 个敌人\n", path, lvl.Waves(), spawns)
	}

	if failures > 0 {
		fmt.Printf("❌ 共 %d 个错误\n", failures)
		os.Exit(1)
	}
	fmt.Printf("✅ 所有配置有效\n")
}
