// internal/app/level.go
package app

import (
	"errors"
	"fmt"

	"go-stack-defense/internal/config"
	"go-stack-defense/internal/defs"
	"go-stack-defense/internal/entity"
	"go-stack-defense/internal/event"
	"go-stack-defense/internal/grouping"
	"go-stack-defense/internal/structure"
	"go-stack-defense/internal/utils"
	"go-stack-defense/pkg/gridmap"

	"github.com/charmbracelet/log"
)

var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrStackFull   = errors.New("stack is full")
	ErrStackEmpty  = errors.New("stack is empty")
	ErrBadHeight   = errors.New("height out of range")
)

// Level owns the grid and everything derived from it. It is the only place
// where cell heights change, and every change is reported to the grouping
// engine before the call returns.
type Level struct {
	Grid            *gridmap.Grid
	Engine          *grouping.Engine
	ECS             *entity.ECS
	EventDispatcher *event.Dispatcher
	Settings        *config.Settings
	Rng             *utils.PRNGService

	logger *log.Logger
}

// NewLevel loads the template catalog named in settings and builds an empty
// level. A catalog that cannot be loaded is an error.
func NewLevel(settings *config.Settings, logger *log.Logger) (*Level, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	catalog, err := defs.LoadTemplateCatalog(settings.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}
	l := NewLevelWithCatalog(settings, catalog, logger)
	l.logger.Info("loaded template catalog", "path", settings.CatalogPath, "templates", catalog.Len())
	return l, nil
}

// NewLevelWithCatalog builds an empty level around an already loaded catalog.
func NewLevelWithCatalog(settings *config.Settings, catalog *defs.Catalog, logger *log.Logger) *Level {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = log.Default()
	}

	ecs := entity.NewECS()
	grid := gridmap.NewGrid(settings.Grid.Width, settings.Grid.Height)
	recognizer := structure.NewRecognizer(catalog, ecs, logger.WithPrefix("structure"))
	engine := grouping.NewEngine(grid, recognizer, logger.WithPrefix("grouping"))
	engine.EnableVerification(settings.VerifyInvariants)

	l := &Level{
		Grid:            grid,
		Engine:          engine,
		ECS:             ecs,
		EventDispatcher: event.NewDispatcher(),
		Settings:        settings,
		Rng:             utils.NewPRNGService(0),
		logger:          logger,
	}

	l.EventDispatcher.SubscribeAll(&levelEventLogger{logger: logger},
		event.BlockPushed, event.BlockPopped, event.StructureRebuilt, event.StructureRemoved, event.GridResized)

	logger.Info("level ready", "grid", fmt.Sprintf("%dx%d", grid.Width(), grid.Height()),
		"templates", catalog.Len(), "max_stack", settings.MaxStackHeight)
	return l
}

// Reparse throws away every group and structure and rebuilds them from the
// current heights.
func (l *Level) Reparse() grouping.Result {
	res := l.Engine.FullParse()
	l.dispatchResult(res)
	return res
}

// Structures returns the live structures ordered by group id.
func (l *Level) Structures() []*structure.Structure {
	return l.Engine.Structures()
}

// StructureAt returns the structure covering (x, y), if any.
func (l *Level) StructureAt(x, y int) (*structure.Structure, bool) {
	return l.Engine.StructureAt(x, y)
}

func (l *Level) dispatchResult(res grouping.Result) {
	for _, g := range res.Removed {
		l.EventDispatcher.Dispatch(event.Event{Type: event.StructureRemoved, Data: event.StructureData{GroupID: g}})
	}
	for _, g := range res.Rebuilt {
		data := event.StructureData{GroupID: g}
		if s, ok := l.Engine.Structure(g); ok {
			data.TypeName = s.TypeName()
		}
		l.EventDispatcher.Dispatch(event.Event{Type: event.StructureRebuilt, Data: data})
	}
}

// levelEventLogger пишет все события уровня в debug-лог.
type levelEventLogger struct {
	logger *log.Logger
}

func (l *levelEventLogger) OnEvent(e event.Event) {
	l.logger.Debug("event", "type", e.Type, "data", e.Data)
}
