package systems

import (
	"slices"
	"testing"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/types"
)

func newTestSpawner(w *testWorld) *WaveSpawnSystem {
	return NewWaveSpawnSystem(w.em, w.tr, testEnemyStats(), types.Cell{Col: 0, Row: 0})
}

func TestWaveSpawnInjectsDueEntriesImmediately(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)

	wave, spawned := spawner.Enqueue(0, []types.WaveEntry{
		{Step: 0, Enemy: types.EnemySimple},
		{Step: 2, Enemy: types.EnemySimple},
		{Step: 2, Enemy: types.EnemyBig},
	}, false)

	if wave != 1 {
		t.Errorf("wave = %d, want 1", wave)
	}
	if len(spawned) != 1 {
		t.Fatalf("spawned %d enemies immediately, want 1", len(spawned))
	}
	if spawner.PendingCount() != 2 {
		t.Errorf("PendingCount = %d, want 2", spawner.PendingCount())
	}
}

// TestWaveSpawnExactlyOnce 每个条目在到期的 tick 注入且只注入一次
func TestWaveSpawnExactlyOnce(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)
	spawner.Enqueue(0, []types.WaveEntry{
		{Step: 2, Enemy: types.EnemyBig},
		{Step: 2, Enemy: types.EnemySimple},
		{Step: 4, Enemy: types.EnemyAdvance},
	}, false)

	tests := []struct {
		step int
		want []types.EnemyType
	}{
		{1, nil},
		{2, []types.EnemyType{types.EnemyBig, types.EnemySimple}},
		{3, nil},
		{4, []types.EnemyType{types.EnemyAdvance}},
		{5, nil},
	}
	for _, tt := range tests {
		spawned := spawner.Update(tt.step)
		var got []types.EnemyType
		for _, id := range spawned {
			enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.em, id)
			got = append(got, enemy.Type)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("step %d: spawned %v, want %v", tt.step, got, tt.want)
		}
	}
}

func TestWaveSpawnStepsAreRelativeToEnqueue(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)
	spawner.Enqueue(10, []types.WaveEntry{{Step: 3, Enemy: types.EnemySimple}}, false)

	if n := len(spawner.Update(12)); n != 0 {
		t.Errorf("step 12 spawned %d, want 0", n)
	}
	if n := len(spawner.Update(13)); n != 1 {
		t.Errorf("step 13 spawned %d, want 1", n)
	}
}

func TestWaveSpawnMergesWaves(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)
	first, _ := spawner.Enqueue(0, []types.WaveEntry{{Step: 5, Enemy: types.EnemySimple}}, false)
	second, _ := spawner.Enqueue(1, []types.WaveEntry{{Step: 1, Enemy: types.EnemyBig}}, false)

	if first != 1 || second != 2 {
		t.Fatalf("waves = %d, %d, want 1, 2", first, second)
	}
	spawned := spawner.Update(2)
	if len(spawned) != 1 {
		t.Fatalf("step 2 spawned %d, want 1", len(spawned))
	}
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.em, spawned[0])
	if enemy.Wave != 2 || enemy.Type != types.EnemyBig {
		t.Errorf("spawned %+v, want big enemy of wave 2", enemy)
	}
}

func TestWaveSpawnClearDropsPending(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)
	spawner.Enqueue(0, []types.WaveEntry{{Step: 5, Enemy: types.EnemySimple}}, false)

	wave, _ := spawner.Enqueue(0, []types.WaveEntry{{Step: 1, Enemy: types.EnemyBig}}, true)

	if wave != 2 {
		t.Errorf("wave = %d, want 2", wave)
	}
	if spawner.PendingCount() != 1 {
		t.Errorf("PendingCount = %d, want 1", spawner.PendingCount())
	}
	if n := len(spawner.Update(10)); n != 1 {
		t.Errorf("spawned %d, want 1", n)
	}
	// 一个敌人都没注入过的波次被丢弃后不再报告
	w.em.Clear()
	if got := spawner.ClearedWaves(); !slices.Equal(got, []int{2}) {
		t.Errorf("ClearedWaves = %v, want [2]", got)
	}
}

// TestWaveSpawnClearKeepsInjectedWave 丢弃待注入条目后，已注入敌人的波次仍会报告清空
func TestWaveSpawnClearKeepsInjectedWave(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)

	// Given 第 1 波的第一个敌人已经注入，第二个仍在等待
	_, spawned := spawner.Enqueue(0, []types.WaveEntry{
		{Step: 0, Enemy: types.EnemySimple},
		{Step: 100, Enemy: types.EnemySimple},
	}, false)
	if len(spawned) != 1 {
		t.Fatalf("spawned %d, want 1", len(spawned))
	}

	// When 以 clear 方式排入第 2 波
	spawner.Enqueue(1, []types.WaveEntry{{Step: 50, Enemy: types.EnemySimple}}, true)
	if n := spawner.PendingCount(); n != 1 {
		t.Fatalf("PendingCount = %d, want 1", n)
	}

	// Then 第 1 波的敌人还在场上时不报告
	if got := spawner.ClearedWaves(); len(got) != 0 {
		t.Fatalf("ClearedWaves = %v while wave 1 enemy alive", got)
	}

	// 第 1 波的敌人离场后报告第 1 波
	w.em.DestroyEntity(spawned[0])
	w.em.RemoveMarkedEntities()
	if got := spawner.ClearedWaves(); !slices.Equal(got, []int{1}) {
		t.Fatalf("ClearedWaves = %v, want [1]", got)
	}

	// 第 2 波注入并离场后报告第 2 波，第 1 波不再重复
	second := spawner.Update(51)
	if len(second) != 1 {
		t.Fatalf("spawned %d at step 51, want 1", len(second))
	}
	w.em.DestroyEntity(second[0])
	w.em.RemoveMarkedEntities()
	if got := spawner.ClearedWaves(); !slices.Equal(got, []int{2}) {
		t.Errorf("ClearedWaves = %v, want [2]", got)
	}
}

// TestWaveClearedReportedOnce 波次清空只报告一次
func TestWaveClearedReportedOnce(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)
	_, spawned := spawner.Enqueue(0, []types.WaveEntry{
		{Step: 0, Enemy: types.EnemySimple},
		{Step: 1, Enemy: types.EnemySimple},
	}, false)

	if got := spawner.ClearedWaves(); len(got) != 0 {
		t.Fatalf("wave with pending entries reported cleared: %v", got)
	}

	spawned = append(spawned, spawner.Update(1)...)
	w.em.DestroyEntity(spawned[0])
	if got := spawner.ClearedWaves(); len(got) != 0 {
		t.Fatalf("wave with live enemy reported cleared: %v", got)
	}

	w.em.DestroyEntity(spawned[1])
	if got := spawner.ClearedWaves(); !slices.Equal(got, []int{1}) {
		t.Fatalf("ClearedWaves = %v, want [1]", got)
	}
	w.em.RemoveMarkedEntities()
	if got := spawner.ClearedWaves(); len(got) != 0 {
		t.Errorf("wave reported twice: %v", got)
	}
}

func TestWaveSpawnEmptyWaveIsCleared(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)
	spawner.Enqueue(0, nil, false)

	if got := spawner.ClearedWaves(); !slices.Equal(got, []int{1}) {
		t.Errorf("ClearedWaves = %v, want [1]", got)
	}
}

func TestWaveSpawnNegativeStepPanics(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative step")
		}
	}()
	spawner.Enqueue(0, []types.WaveEntry{{Step: -1, Enemy: types.EnemySimple}}, false)
}

func TestWaveSpawnManualSpawn(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)

	id, err := spawner.Spawn(types.EnemyAdvance)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.em, id)
	if enemy.Wave != 0 {
		t.Errorf("manual spawn wave = %d, want 0", enemy.Wave)
	}
	if x, y := position(t, w.em, id).X, position(t, w.em, id).Y; x != 30 || y != 30 {
		t.Errorf("spawned at (%.0f, %.0f), want (30, 30)", x, y)
	}

	if _, err := spawner.Spawn(types.EnemyUnknown); err == nil {
		t.Error("expected error for unknown enemy type")
	}
}

func TestWaveSpawnReset(t *testing.T) {
	w := newCorridorWorld(t, 5)
	spawner := newTestSpawner(w)
	spawner.Enqueue(0, []types.WaveEntry{{Step: 5, Enemy: types.EnemySimple}}, false)

	spawner.Reset()

	if spawner.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0", spawner.PendingCount())
	}
	if wave, _ := spawner.Enqueue(0, nil, false); wave != 1 {
		t.Errorf("wave after reset = %d, want 1", wave)
	}
}
