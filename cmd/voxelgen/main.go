package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/app"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/config"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/logging"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/observability"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/physics"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world/block"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или VOXEL_CONFIG)")
	seed := flag.Int64("seed", 0, "сид рельефа (перекрывает конфигурацию)")
	origin := flag.String("origin", "", "начало луча для выбора вокселя: x,y,z")
	direction := flag.String("dir", "0,-1,0", "направление луча: x,y,z")
	deleteHit := flag.Bool("delete", false, "удалить воксель под лучом и оптимизировать хранилище")
	serve := flag.Bool("serve", false, "не завершаться и отдавать /metrics до сигнала")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.Terrain.Seed = *seed
	}

	consoleLevel, fileLevel, err := cfg.Logging.Levels()
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации логирования: %v", err)
	}
	if err := logging.InitDefaultLogger("voxelgen", cfg.Logging.Dir); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.SetDefaultLevels(consoleLevel, fileLevel)
	logging.GetLoggerManager().Configure(cfg.Logging.Dir, consoleLevel, fileLevel)
	defer logging.GetLoggerManager().CloseAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("🌍 Запуск генератора воксельного мира")

	// === МЕТРИКИ ===
	var metrics *world.Metrics
	var metricsServer *observability.MetricsServer
	if cfg.Metrics.Enabled || *serve {
		metricsServer = observability.NewMetricsServer(cfg.Metrics.GetAddr())
		metrics = world.NewMetrics(metricsServer.Registry())
		metricsServer.Start()
	}

	pipeline := app.NewPipeline(cfg, metrics)

	// === ТРАССИРОВКА ===
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, pipeline.RunID())
		if err != nil {
			logging.Warn("⚠️ OpenTelemetry недоступен: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
				}
			}()
		}
	}

	result, err := pipeline.Run(ctx)
	if err != nil {
		logging.Error("❌ Ошибка построения мира: %v", err)
		os.Exit(1)
	}

	printSummary(result)

	// === ВЫБОР ВОКСЕЛЯ ===
	if *origin != "" {
		ray, err := parseRay(*origin, *direction)
		if err != nil {
			logging.Error("❌ Неверный луч: %v", err)
			os.Exit(2)
		}
		if *deleteHit {
			if hit, ok := pipeline.DeleteAt(ctx, result.World, ray); ok {
				fmt.Printf("deleted %s at %s, digest %016x\n", hit.Type, hit.Voxel, result.World.Digest())
			} else {
				fmt.Println("no intersection")
			}
		} else {
			hit, ok := world.NewPicker(cfg.Picker.Radius).Pick(result.World, ray)
			if ok {
				fmt.Printf("hit %s at %s, tNear=%.3f tFar=%.3f\n", hit.Type, hit.Voxel, hit.TNear, hit.TFar)
			} else {
				fmt.Println("no intersection")
			}
		}
	}

	if metricsServer == nil {
		return
	}
	if *serve {
		logging.Info("⏳ Ожидание сигнала завершения...")
		<-ctx.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Ошибка остановки сервера метрик: %v", err)
	}
	logging.Info("👋 Генератор остановлен")
}

// printSummary выводит итог построения в stdout
func printSummary(r *app.Result) {
	fmt.Printf("run      %s\n", r.RunID)
	fmt.Printf("seed     %d\n", r.Seed)
	fmt.Printf("maps     %d -> %d\n", r.Populated.Maps, r.Final.Maps)
	fmt.Printf("chunks   %d -> %d (released %d)\n", r.Populated.Chunks, r.Final.Chunks, r.Compaction.ChunksReleased)
	fmt.Printf("voxels   %d\n", r.Final.Voxels)

	for _, id := range block.Solid() {
		fmt.Printf("  %-10s %d\n", id, r.Counts[id])
	}

	fmt.Printf("digest   %016x\n", r.Digest)
	fmt.Printf("memory   %s\n", r.Memory.AfterOptimise)
	fmt.Printf("elapsed  %v\n", r.Duration.Round(time.Millisecond))
}

func parseRay(origin, direction string) (physics.Ray, error) {
	o, err := parseVec3(origin)
	if err != nil {
		return physics.Ray{}, fmt.Errorf("origin: %w", err)
	}
	d, err := parseVec3(direction)
	if err != nil {
		return physics.Ray{}, fmt.Errorf("direction: %w", err)
	}
	if d.Len() == 0 {
		return physics.Ray{}, fmt.Errorf("direction must be non-zero")
	}
	return physics.Ray{Origin: o, Direction: d.Normalize()}, nil
}

func parseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return v, nil
}
