// simulate 无界面运行一局游戏，按给定的塔布局自动开波，输出每一波结束时的状态
//
// 用法：
//
//	go run ./cmd/simulate -layout "simple:2,2;missile:2,5" -waves 10
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/game"
	"github.com/decker502/towerdefense/pkg/level"
	"github.com/decker502/towerdefense/pkg/simulation"
	"github.com/decker502/towerdefense/pkg/types"
)

// defaultLayout 五座普通塔围出一条拐弯的通道，加一座导弹塔
const defaultLayout = "simple:2,2;simple:3,0;simple:4,1;simple:4,2;simple:4,3;missile:2,5"

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	levelPath = flag.String("level", "", "脚本关卡文件，为空使用标准关卡")
	layout    = flag.String("layout", defaultLayout, "塔布局，格式 type:col,row;type:col,row")
	waves     = flag.Int("waves", 0, "最多运行的波次，0 表示全部")
	maxSteps  = flag.Int("max-steps", 200000, "tick 上限")
)

// placement 布局中的一座塔
type placement struct {
	Type types.TowerType
	Cell types.Cell
}

// parseLayout 解析 "simple:2,2;missile:2,5" 格式的布局
func parseLayout(s string) ([]placement, error) {
	var result []placement
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, coords, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("invalid layout item %q: want type:col,row", item)
		}
		towerType, err := types.ParseTowerType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		colStr, rowStr, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("invalid cell %q in %q", coords, item)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colStr))
		if err != nil {
			return nil, fmt.Errorf("invalid column in %q: %w", item, err)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowStr))
		if err != nil {
			return nil, fmt.Errorf("invalid row in %q: %w", item, err)
		}
		result = append(result, placement{Type: towerType, Cell: types.Cell{Col: col, Row: row}})
	}
	return result, nil
}

// waveReport 一波结束时的统计
type waveReport struct {
	Wave   int
	Step   int
	Kills  int
	Escape int
	Coins  int
	Lives  int
	Score  int
}

// run 放置布局后逐波运行，直到对局结束、达到波次上限或 tick 上限
func run(sim *simulation.Simulation, lvl level.Level, towers []placement, waveLimit, stepLimit int) (*game.Session, []waveReport, error) {
	for _, p := range towers {
		if err := sim.Place(p.Cell, p.Type); err != nil {
			return nil, nil, fmt.Errorf("failed to place %s at (%d, %d): %w", p.Type, p.Cell.Col, p.Cell.Row, err)
		}
	}

	session := game.NewSession(sim, lvl)
	var kills, escapes int
	sim.On(event.EnemyDeath, func(e event.Event) { kills += len(e.Enemies) })
	sim.On(event.EnemyEscape, func(e event.Event) { escapes += len(e.Enemies) })

	last := session.MaxWave()
	if waveLimit > 0 {
		last = min(last, waveLimit)
	}

	var reports []waveReport
	for wave := 1; wave <= last && !session.IsOver(); wave++ {
		if _, err := session.NextWave(); err != nil {
			return session, reports, err
		}
		for !session.IsOver() && (len(sim.Enemies()) > 0 || sim.PendingSpawns() > 0) {
			if sim.CurrentStep() >= stepLimit {
				return session, reports, fmt.Errorf("step limit %d reached during wave %d", stepLimit, wave)
			}
			session.Step()
		}
		reports = append(reports, waveReport{
			Wave:   wave,
			Step:   sim.CurrentStep(),
			Kills:  kills,
			Escape: escapes,
			Coins:  session.Coins(),
			Lives:  session.Lives(),
			Score:  session.Score(),
		})
		kills, escapes = 0, 0
	}
	return session, reports, nil
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	towers, err := parseLayout(*layout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	sim, err := simulation.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 模拟初始化失败: %v\n", err)
		os.Exit(1)
	}
	sim.SetVerbose(*verbose)

	var lvl level.Level = level.NewStandardLevel()
	if *levelPath != "" {
		scripted, err := level.LoadScriptedLevel(*levelPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ 关卡加载失败: %v\n", err)
			os.Exit(1)
		}
		lvl = scripted
	}

	session, reports, err := run(sim, lvl, towers, *waves, *maxSteps)
	fmt.Printf("%5s %7s %6s %7s %6s %6s %7s\n", "wave", "step", "kills", "escape", "coins", "lives", "score")
	for _, r := range reports {
		fmt.Printf("%5d %7d %6d %7d %6d %6d %7d\n", r.Wave, r.Step, r.Kills, r.Escape, r.Coins, r.Lives, r.Score)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	switch session.Status() {
	case game.StatusWon:
		fmt.Printf("✅ 全部 %d 波已清空，分数 %d\n", session.Wave(), session.Score())
	case game.StatusLost:
		fmt.Printf("❌ 第 %d 波生命耗尽，分数 %d\n", session.Wave(), session.Score())
	default:
		fmt.Printf("⏸  运行了 %d 波，剩余生命 %d，分数 %d\n", session.Wave(), session.Lives(), session.Score())
	}
}
