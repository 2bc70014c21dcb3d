// internal/structure/recognizer.go
package structure

import (
	"errors"

	"go-stack-defense/internal/defs"
	"go-stack-defense/internal/entity"
	"go-stack-defense/internal/types"
	"go-stack-defense/pkg/gridmap"

	"github.com/charmbracelet/log"
)

// EntityFactory creates and destroys structure-representative entities.
type EntityFactory interface {
	CreateStructureEntity(groupID int, memberCellIDs []int) types.EntityID
	DestroyStructureEntity(id types.EntityID) error
	NotifyStructureType(id types.EntityID, templateName string)
}

// Recognizer turns group memberships into Structures and keeps their
// representative entities in sync.
type Recognizer struct {
	catalog *defs.Catalog
	factory EntityFactory
	logger  *log.Logger
}

// NewRecognizer wires a catalog and an entity factory. A nil logger falls
// back to the package default.
func NewRecognizer(catalog *defs.Catalog, factory EntityFactory, logger *log.Logger) *Recognizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Recognizer{
		catalog: catalog,
		factory: factory,
		logger:  logger,
	}
}

// Catalog returns the template catalog used for matching.
func (r *Recognizer) Catalog() *defs.Catalog {
	return r.catalog
}

// Rebuild replaces prev (may be nil) with a fresh Structure for groupID.
// members must be listed in row-major order. With no members the old entity
// is destroyed and nil is returned.
func (r *Recognizer) Rebuild(prev *Structure, groupID int, members []gridmap.Point, cells gridmap.CellReader) *Structure {
	r.Destroy(prev)
	if len(members) == 0 {
		return nil
	}

	minX, minY, snap := Snapshot(members, cells)
	ids := make([]int, len(members))
	for i, p := range members {
		ids[i] = p.Y*cells.Width() + p.X
	}

	s := &Structure{
		GroupID:   groupID,
		MinX:      minX,
		MinY:      minY,
		Snapshot:  snap,
		Members:   append([]gridmap.Point(nil), members...),
		MemberIDs: ids,
	}
	if tpl, ok := r.catalog.Match(snap); ok {
		s.Template = tpl.Name()
	}

	s.entity.id = r.factory.CreateStructureEntity(groupID, ids)
	if s.Recognized() {
		r.factory.NotifyStructureType(s.entity.id, s.Template)
	}

	r.logger.Debug("structure rebuilt", "group", groupID, "cells", len(members),
		"box", [2]int{s.Width(), s.Height()}, "type", s.TypeName(), "entity", s.entity.id)
	return s
}

// Destroy releases the structure's representative entity. An entity that is
// already gone is not an error.
func (r *Recognizer) Destroy(s *Structure) {
	if s == nil || !s.entity.Valid() {
		return
	}
	id := s.entity.release()
	if err := r.factory.DestroyStructureEntity(id); err != nil {
		if errors.Is(err, entity.ErrEntityNotFound) {
			r.logger.Info("structure entity already removed", "group", s.GroupID, "entity", id)
			return
		}
		r.logger.Warn("failed to destroy structure entity", "group", s.GroupID, "entity", id, "err", err)
	}
}
