package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/logging"
	"github.com/alan-bolger/4th-year-project-voxel-engine/internal/world"
)

// Config корневая структура конфигурации генератора мира.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Picker    PickerConfig    `yaml:"picker"`
}

type WorldConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Depth     int `yaml:"depth"`
	MapWidth  int `yaml:"map_width"`
	MapHeight int `yaml:"map_height"`
	MapDepth  int `yaml:"map_depth"`
}

type TerrainConfig struct {
	Seed        int64   `yaml:"seed"`
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Exponent    float64 `yaml:"exponent"`
	MaxHeight   int     `yaml:"max_height"`
	WaterLevel  int     `yaml:"water_level"`
	TreeDensity float64 `yaml:"tree_density"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	FileLevel string `yaml:"file_level"`
	Dir       string `yaml:"dir"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type PickerConfig struct {
	Radius int `yaml:"radius"`
}

// Значения по умолчанию
const (
	DefaultSeed        int64 = 1337
	DefaultMetricsAddr       = ":2112"
	DefaultServiceName       = "voxelgen"
)

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	d := world.DefaultDimensions()
	return &Config{
		World: WorldConfig{
			Width:     d.WorldWidth,
			Height:    d.WorldHeight,
			Depth:     d.WorldDepth,
			MapWidth:  d.MapWidth,
			MapHeight: d.MapHeight,
			MapDepth:  d.MapDepth,
		},
		Terrain: TerrainConfig{
			Scale:       1.0,
			Octaves:     6,
			Exponent:    4.0,
			MaxHeight:   63,
			WaterLevel:  18,
			TreeDensity: 0.02,
		},
		Logging: LoggingConfig{
			Level:     "info",
			FileLevel: "debug",
		},
		Telemetry: TelemetryConfig{
			ServiceName: DefaultServiceName,
		},
		Picker: PickerConfig{
			Radius: world.DefaultPickRadius,
		},
	}
}

// Dimensions возвращает размеры мира
func (w WorldConfig) Dimensions() world.Dimensions {
	return world.Dimensions{
		WorldWidth:  w.Width,
		WorldHeight: w.Height,
		WorldDepth:  w.Depth,
		MapWidth:    w.MapWidth,
		MapHeight:   w.MapHeight,
		MapDepth:    w.MapDepth,
	}
}

// GetSeed возвращает сид с приоритетом: config -> env VOXEL_SEED -> default
func (t *TerrainConfig) GetSeed() int64 {
	if t.Seed != 0 {
		return t.Seed
	}
	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil && seed != 0 {
			return seed
		}
	}
	return DefaultSeed
}

// GetAddr возвращает адрес метрик с приоритетом: config -> env VOXEL_METRICS_ADDR -> default
func (m *MetricsConfig) GetAddr() string {
	if m.Addr != "" {
		return m.Addr
	}
	if envVal := os.Getenv("VOXEL_METRICS_ADDR"); envVal != "" {
		return envVal
	}
	return DefaultMetricsAddr
}

// Levels разбирает уровни логирования для консоли и файла
func (l *LoggingConfig) Levels() (console, file logging.LogLevel, err error) {
	if console, err = logging.ParseLevel(l.Level); err != nil {
		return console, file, err
	}
	if file, err = logging.ParseLevel(l.FileLevel); err != nil {
		return console, file, err
	}
	return console, file, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if err := c.World.Dimensions().Validate(); err != nil {
		return fmt.Errorf("world: %w", err)
	}
	if _, _, err := c.Logging.Levels(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.Picker.Radius < 0 {
		return fmt.Errorf("picker: radius must not be negative, got %d", c.Picker.Radius)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV VOXEL_CONFIG;
// если он тоже не задан, возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
