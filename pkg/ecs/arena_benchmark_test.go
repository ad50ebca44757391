package ecs

import "testing"

type benchmarkComp struct {
	X, Y  float64
	Angle float64
}

// BenchmarkCreateEntity 测试实体创建性能
func BenchmarkCreateEntity(b *testing.B) {
	arena := NewArena[benchmarkComp]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		arena.CreateEntity(benchmarkComp{X: float64(i)})
	}
}

// BenchmarkGet 测试随机访问性能
func BenchmarkGet(b *testing.B) {
	arena := NewArena[benchmarkComp]()
	for i := 0; i < 1000; i++ {
		arena.CreateEntity(benchmarkComp{X: float64(i)})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = arena.Get(EntityID(i%1000 + 1))
	}
}
