package ecs

import (
	"reflect"
	"sort"
)

// EntityID 实体标识，从 1 开始递增，0 表示无效
type EntityID uint64

// EntityManager 按组件类型分表保存组件
//
// 每种组件类型一张 map[EntityID]组件；查询时从最小的表开始筛选。
// 删除是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 才真正移除，
// 保证系统遍历期间查询结果不变。
type EntityManager struct {
	nextID  EntityID
	alive   map[EntityID]struct{}
	stores  map[reflect.Type]map[EntityID]interface{}
	pending map[EntityID]struct{}
}

func NewEntityManager() *EntityManager {
	em := &EntityManager{nextID: 1}
	em.reset()
	return em
}

func (em *EntityManager) reset() {
	em.alive = make(map[EntityID]struct{})
	em.stores = make(map[reflect.Type]map[EntityID]interface{})
	em.pending = make(map[EntityID]struct{})
}

// CreateEntity 创建一个没有组件的实体
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.alive[id] = struct{}{}
	return id
}

// DestroyEntity 标记实体待删除，重复标记无副作用
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.alive[id]; ok {
		em.pending[id] = struct{}{}
	}
}

// IsMarked 实体是否已标记待删除
func (em *EntityManager) IsMarked(id EntityID) bool {
	_, ok := em.pending[id]
	return ok
}

// RemoveMarkedEntities 移除所有已标记的实体及其组件，返回移除数量
func (em *EntityManager) RemoveMarkedEntities() int {
	n := len(em.pending)
	for id := range em.pending {
		delete(em.alive, id)
		for _, store := range em.stores {
			delete(store, id)
		}
	}
	if n > 0 {
		em.pending = make(map[EntityID]struct{})
	}
	return n
}

// Clear 立即删除所有实体（新的一局开始时调用），ID 不会复用
func (em *EntityManager) Clear() {
	em.reset()
}

// IsAlive 已标记但未移除的实体仍视为存在
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.alive[id]
	return ok
}

func (em *EntityManager) EntityCount() int {
	return len(em.alive)
}

// AddComponent 按组件的动态类型保存；实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	em.addComponent(id, reflect.TypeOf(component), component)
}

func (em *EntityManager) addComponent(id EntityID, t reflect.Type, component interface{}) {
	if !em.IsAlive(id) {
		return
	}
	store, ok := em.stores[t]
	if !ok {
		store = make(map[EntityID]interface{})
		em.stores[t] = store
	}
	store[id] = component
}

func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	delete(em.stores[componentType], id)
}

func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	comp, ok := em.stores[componentType][id]
	return comp, ok
}

func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.stores[componentType][id]
	return ok
}

// GetEntitiesWith 返回同时拥有所有给定组件的实体，按 ID 升序（即创建顺序）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	if len(componentTypes) == 0 {
		return nil
	}

	stores := make([]map[EntityID]interface{}, 0, len(componentTypes))
	for _, t := range componentTypes {
		store := em.stores[t]
		if len(store) == 0 {
			return nil
		}
		stores = append(stores, store)
	}
	sort.Slice(stores, func(i, j int) bool { return len(stores[i]) < len(stores[j]) })

	result := make([]EntityID, 0, len(stores[0]))
	for id := range stores[0] {
		hasAll := true
		for _, other := range stores[1:] {
			if _, ok := other[id]; !ok {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
