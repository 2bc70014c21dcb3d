// internal/event/types.go
package event

import "go-stack-defense/pkg/gridmap"

const (
	BlockPushed      EventType = "BlockPushed"      // блок положен на клетку
	BlockPopped      EventType = "BlockPopped"      // блок снят с клетки
	StructureRebuilt EventType = "StructureRebuilt" // структура группы пересобрана
	StructureRemoved EventType = "StructureRemoved" // группа исчезла
	GridResized      EventType = "GridResized"
)

// BlockData is the payload of BlockPushed and BlockPopped.
type BlockData struct {
	Cell   gridmap.Point
	Height int // after the edit
}

// StructureData is the payload of StructureRebuilt and StructureRemoved.
type StructureData struct {
	GroupID  int
	TypeName string // empty for StructureRemoved
}

// ResizeData is the payload of GridResized.
type ResizeData struct {
	Edge   gridmap.Edge
	Added  bool // false when a line was removed
	Width  int
	Height int
}
