// internal/types/types.go
package types

// EntityID идентифицирует сущность ECS. 0 зарезервирован как «нет сущности».
type EntityID uint64

// NoEntity is the zero EntityID.
const NoEntity EntityID = 0
