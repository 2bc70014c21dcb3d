// internal/entity/structure_factory.go
package entity

import (
	"errors"
	"fmt"
	"sort"

	"go-stack-defense/internal/component"
	"go-stack-defense/internal/config"
	"go-stack-defense/internal/types"
	"go-stack-defense/pkg/palette"
)

// ErrEntityNotFound is returned when destroying an entity that is already gone.
var ErrEntityNotFound = errors.New("entity not found")

// CreateStructureEntity spawns the representative entity of a block group.
func (ecs *ECS) CreateStructureEntity(groupID int, memberCellIDs []int) types.EntityID {
	id := ecs.NewEntity()
	members := append([]int(nil), memberCellIDs...)
	sort.Ints(members)
	ecs.Structures[id] = &component.StructureBody{GroupID: groupID, Members: members}
	ecs.Renderables[id] = &component.Renderable{Color: palette.GroupColor(groupID)}
	return id
}

// DestroyStructureEntity removes a structure entity immediately.
func (ecs *ECS) DestroyStructureEntity(id types.EntityID) error {
	if _, ok := ecs.Structures[id]; !ok {
		return fmt.Errorf("structure entity %d: %w", id, ErrEntityNotFound)
	}
	ecs.RemoveEntity(id)
	return nil
}

// NotifyStructureType tags the entity with the recognized template and gives
// it a label for the viewer.
func (ecs *ECS) NotifyStructureType(id types.EntityID, templateName string) {
	if _, ok := ecs.Structures[id]; !ok {
		return
	}
	ecs.StructureTypes[id] = &component.StructureType{Template: templateName}
	ecs.Texts[id] = &component.Text{Value: templateName, Color: config.TextLightColor}
	if r, ok := ecs.Renderables[id]; ok {
		r.HasStroke = true
	}
}

// StructureEntityFor finds the live representative of a group.
func (ecs *ECS) StructureEntityFor(groupID int) (types.EntityID, bool) {
	for id, body := range ecs.Structures {
		if body.GroupID == groupID {
			return id, true
		}
	}
	return types.NoEntity, false
}
