package ecs

import "testing"

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

func TestCreateEntity(t *testing.T) {
	arena := NewArena[testPositionComponent]()
	id1 := arena.CreateEntity(testPositionComponent{})
	id2 := arena.CreateEntity(testPositionComponent{})

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if arena.Len() != 2 {
		t.Errorf("Expected 2 entities, got %d", arena.Len())
	}
}

func TestGetEntity(t *testing.T) {
	arena := NewArena[testPositionComponent]()
	id := arena.CreateEntity(testPositionComponent{X: 100, Y: 200})

	pos := arena.Get(id)
	if pos == nil {
		t.Fatal("Entity should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 修改通过指针生效
	pos.X = 5
	if arena.Get(id).X != 5 {
		t.Error("Get should return a pointer into the arena")
	}
}

func TestGetInvalidEntity(t *testing.T) {
	arena := NewArena[testPositionComponent]()
	arena.CreateEntity(testPositionComponent{})

	if arena.Get(InvalidEntity) != nil {
		t.Error("InvalidEntity should not resolve")
	}
	if arena.Get(2) != nil {
		t.Error("Unknown ID should not resolve")
	}
}

func TestPointerStableAcrossGrowth(t *testing.T) {
	arena := NewArena[testPositionComponent]()
	first := arena.Get(arena.CreateEntity(testPositionComponent{X: 1}))

	// 跨越多个分块
	for i := 0; i < arenaChunkSize*3; i++ {
		arena.CreateEntity(testPositionComponent{X: float64(i)})
	}

	first.X = 42
	if arena.Get(1).X != 42 {
		t.Error("Pointer obtained before growth should still address entity 1")
	}
}

func TestEach(t *testing.T) {
	arena := NewArena[testPositionComponent]()
	for i := 0; i < 5; i++ {
		arena.CreateEntity(testPositionComponent{X: float64(i)})
	}

	var visited []EntityID
	arena.Each(func(id EntityID, value *testPositionComponent) bool {
		visited = append(visited, id)
		return id < 3
	})

	if len(visited) != 3 {
		t.Fatalf("Expected early stop after 3 entities, visited %d", len(visited))
	}
	for i, id := range visited {
		if id != EntityID(i+1) {
			t.Errorf("Expected creation order, got %v", visited)
			break
		}
	}
}
