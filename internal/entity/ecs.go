// internal/entity/ecs.go
package entity

import (
	"go-stack-defense/internal/component"
	"go-stack-defense/internal/types"
)

type ECS struct {
	NextID         types.EntityID
	Structures     map[types.EntityID]*component.StructureBody
	StructureTypes map[types.EntityID]*component.StructureType
	Renderables    map[types.EntityID]*component.Renderable
	Texts          map[types.EntityID]*component.Text
}

func NewECS() *ECS {
	return &ECS{
		NextID:         1,
		Structures:     make(map[types.EntityID]*component.StructureBody),
		StructureTypes: make(map[types.EntityID]*component.StructureType),
		Renderables:    make(map[types.EntityID]*component.Renderable),
		Texts:          make(map[types.EntityID]*component.Text),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Exists reports whether any component is attached to id.
func (ecs *ECS) Exists(id types.EntityID) bool {
	if _, ok := ecs.Structures[id]; ok {
		return true
	}
	if _, ok := ecs.Renderables[id]; ok {
		return true
	}
	_, ok := ecs.Texts[id]
	return ok
}

// RemoveEntity strips every component from id.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Structures, id)
	delete(ecs.StructureTypes, id)
	delete(ecs.Renderables, id)
	delete(ecs.Texts, id)
}
