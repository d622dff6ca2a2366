package app

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/config"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/logging"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/observability"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/physics"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/terrain"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/vec"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

// Pipeline строит мир: генерация рельефа -> заполнение -> оптимизация хранилища.
// Каждый этап оборачивается в спан OpenTelemetry и логируется.
type Pipeline struct {
	cfg     *config.Config
	metrics *world.Metrics
	logger  *logging.Logger
	tracer  trace.Tracer
	runID   uuid.UUID
}

// Result содержит итог построения мира
type Result struct {
	RunID      string
	Seed       int64
	World      *world.World
	Populated  world.Stats           // Состояние сразу после заполнения
	Compaction world.CompactionStats // Что освободила оптимизация
	Final      world.Stats           // Состояние после оптимизации
	Digest     uint64
	Counts     map[block.ID]int
	Memory     MemoryReport
	Duration   time.Duration
}

// MemoryReport содержит статистику процесса до и после оптимизации
type MemoryReport struct {
	AfterPopulate observability.ProcessStats
	AfterOptimise observability.ProcessStats
}

// NewPipeline создаёт конвейер. metrics может быть nil.
func NewPipeline(cfg *config.Config, metrics *world.Metrics) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		metrics: metrics,
		logger:  logging.GetAppLogger(),
		tracer:  observability.Tracer(),
		runID:   uuid.New(),
	}
}

// RunID возвращает идентификатор запуска
func (p *Pipeline) RunID() string {
	return p.runID.String()
}

// Generator создаёт генератор рельефа по конфигурации
func (p *Pipeline) Generator() *terrain.Generator {
	t := p.cfg.Terrain
	g := terrain.NewGenerator(t.GetSeed())
	g.Scale = t.Scale
	g.Octaves = t.Octaves
	g.Exponent = t.Exponent
	g.MaxHeight = t.MaxHeight
	g.WaterLevel = t.WaterLevel
	g.TreeDensity = t.TreeDensity
	return g
}

// Run выполняет все этапы построения мира
func (p *Pipeline) Run(ctx context.Context) (result *Result, err error) {
	started := time.Now()
	seed := p.cfg.Terrain.GetSeed()
	dims := p.cfg.World.Dimensions()

	ctx, span := p.tracer.Start(ctx, "world.build", trace.WithAttributes(
		attribute.String("run.id", p.RunID()),
		attribute.Int64("terrain.seed", seed),
		attribute.Int("world.width", dims.WorldWidth),
		attribute.Int("world.height", dims.WorldHeight),
		attribute.Int("world.depth", dims.WorldDepth),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p.logger.Info("🚀 Построение мира %s: сид %d, размер %dx%dx%d",
		p.RunID(), seed, dims.WorldWidth, dims.WorldHeight, dims.WorldDepth)

	w, err := world.NewWorld(dims)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	w.SetMetrics(p.metrics)

	result = &Result{RunID: p.RunID(), Seed: seed, World: w}

	// Этап 1: рельеф
	var maps terrain.Maps
	err = p.stage(ctx, "terrain.generate", func(ctx context.Context) error {
		var genErr error
		maps, genErr = p.Generator().Generate(dims.WorldWidth, dims.WorldDepth)
		return genErr
	})
	if err != nil {
		return nil, err
	}

	// Этап 2: заполнение
	err = p.stage(ctx, "world.populate", func(ctx context.Context) error {
		rng := rand.New(rand.NewSource(seed))
		if popErr := w.Populate(maps.Height, maps.Tree, maps.Water, rng); popErr != nil {
			return popErr
		}
		result.Populated = w.Stats()
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int("world.maps", result.Populated.Maps),
			attribute.Int("world.chunks", result.Populated.Chunks),
			attribute.Int("world.voxels", result.Populated.Voxels),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Memory.AfterPopulate = p.readProcessStats()

	// Этап 3: оптимизация
	err = p.stage(ctx, "world.optimise", func(ctx context.Context) error {
		result.Compaction = w.OptimiseWorldStorage()
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int("released.chunks", result.Compaction.ChunksReleased),
			attribute.Int("released.maps", result.Compaction.MapsReleased),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	runtime.GC()
	result.Memory.AfterOptimise = p.readProcessStats()

	result.Final = w.Stats()
	result.Digest = w.Digest()
	result.Counts = make(map[block.ID]int)
	w.ForEachVoxel(func(_ vec.Vec3, id block.ID) {
		result.Counts[id]++
	})
	result.Duration = time.Since(started)

	p.logger.Info("✅ Мир %s построен за %v: карт %d, чанков %d, вокселей %d, дайджест %016x",
		p.RunID(), result.Duration.Round(time.Millisecond),
		result.Final.Maps, result.Final.Chunks, result.Final.Voxels, result.Digest)
	return result, nil
}

// DeleteAt удаляет воксель под лучом и оптимизирует хранилище.
// Возвращает попадание и false, если луч ни во что не попал.
func (p *Pipeline) DeleteAt(ctx context.Context, w *world.World, ray physics.Ray) (world.Hit, bool) {
	_, span := p.tracer.Start(ctx, "world.delete")
	defer span.End()

	hit, ok := world.NewPicker(p.cfg.Picker.Radius).Pick(w, ray)
	span.SetAttributes(attribute.Bool("pick.hit", ok))
	if !ok {
		p.logger.Info("🎯 Луч не пересёк ни одного вокселя")
		return hit, false
	}

	w.SetVoxel(hit.Voxel.X, hit.Voxel.Y, hit.Voxel.Z, block.Air)
	stats := w.OptimiseWorldStorage()

	span.SetAttributes(attribute.String("pick.voxel", hit.Voxel.String()))
	p.logger.Info("🗑️ Удалён воксель %s %s (tNear=%.3f), освобождено чанков %d, карт %d",
		hit.Type, hit.Voxel, hit.TNear, stats.ChunksReleased, stats.MapsReleased)
	return hit, true
}

// stage выполняет этап в отдельном спане и логирует его длительность
func (p *Pipeline) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	started := time.Now()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("❌ Этап %s завершился ошибкой: %v", name, err)
		return fmt.Errorf("%s: %w", name, err)
	}

	p.logger.Debug("Этап %s завершён за %v", name, time.Since(started).Round(time.Microsecond))
	return nil
}

func (p *Pipeline) readProcessStats() observability.ProcessStats {
	stats, err := observability.ReadProcessStats()
	if err != nil {
		p.logger.Warn("Не удалось прочитать статистику процесса: %v", err)
	}
	p.logger.Debug("Память: %s", stats)
	return stats
}
