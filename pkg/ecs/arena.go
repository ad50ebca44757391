// Package ecs 提供按索引寻址的实体存储
//
// 实体一旦创建就不会被销毁（进程结束时整体释放），
// 因此 EntityID 可以直接映射为切片下标，查询为 O(1)。
package ecs

// EntityID 是实体的唯一标识符
// 0 保留为无效ID，第 n 个创建的实体 ID 为 n
type EntityID uint64

// InvalidEntity 表示"没有实体"
const InvalidEntity EntityID = 0

// Arena 是只增长的实体存储区
// T 通常是一个组件结构体，Arena 持有其值并返回稳定的指针
type Arena[T any] struct {
	// 分块存储，扩容时不会移动已有元素，保证 Get 返回的指针长期有效
	chunks [][]T
	count  int
}

const arenaChunkSize = 64

// NewArena 创建一个空的 Arena
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		chunks: make([][]T, 0, 4),
	}
}

// CreateEntity 存入一个新实体并返回其ID
func (a *Arena[T]) CreateEntity(value T) EntityID {
	chunk := a.count / arenaChunkSize
	if chunk == len(a.chunks) {
		a.chunks = append(a.chunks, make([]T, 0, arenaChunkSize))
	}
	a.chunks[chunk] = append(a.chunks[chunk], value)
	a.count++
	return EntityID(a.count)
}

// Get 根据ID获取实体，ID 无效时返回 nil
func (a *Arena[T]) Get(id EntityID) *T {
	if id == InvalidEntity || int(id) > a.count {
		return nil
	}
	index := int(id) - 1
	return &a.chunks[index/arenaChunkSize][index%arenaChunkSize]
}

// Len 返回实体总数
func (a *Arena[T]) Len() int {
	return a.count
}

// Each 按创建顺序遍历所有实体
// fn 返回 false 时提前结束遍历
func (a *Arena[T]) Each(fn func(id EntityID, value *T) bool) {
	for i := 0; i < a.count; i++ {
		if !fn(EntityID(i+1), &a.chunks[i/arenaChunkSize][i%arenaChunkSize]) {
			return
		}
	}
}
