// internal/component/structure.go
package component

// StructureBody marks the representative entity of a block structure.
type StructureBody struct {
	GroupID int
	Members []int // row-major cell ids
}

// StructureType is attached once the structure's shape matched a template.
type StructureType struct {
	Template string
}
