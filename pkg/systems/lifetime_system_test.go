package systems

import (
	"testing"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxSteps: 3})

	// 前两个 tick 仍存活
	for i := 0; i < 2; i++ {
		system.Update()
		if em.IsMarkedForDestruction(id) {
			t.Fatalf("expired after %d ticks, want 3", i+1)
		}
	}

	// 第三个 tick 过期
	system.Update()
	if !em.IsMarkedForDestruction(id) {
		t.Error("entity should expire on tick 3")
	}
}

func TestLifetimeSkipsMarkedEntities(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	life := &components.LifetimeComponent{MaxSteps: 5}
	ecs.AddComponent(em, id, life)
	em.DestroyEntity(id)

	system.Update()

	if life.CurrentSteps != 0 {
		t.Errorf("CurrentSteps = %d, want 0 for an entity already marked", life.CurrentSteps)
	}
}
