package observability

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats содержит снимок потребления памяти процессом
type ProcessStats struct {
	RSS         uint64  // Resident set size, байт (gopsutil)
	HeapAlloc   uint64  // Занятая куча Go, байт
	HeapObjects uint64  // Число объектов в куче
	NumGC       uint32  // Число завершённых циклов GC
	CPUPercent  float64 // Загрузка CPU процессом, %
}

// ReadProcessStats собирает статистику текущего процесса.
// Ошибка gopsutil не фатальна: поля RSS и CPUPercent остаются нулевыми.
func ReadProcessStats() (ProcessStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := ProcessStats{
		HeapAlloc:   m.HeapAlloc,
		HeapObjects: m.HeapObjects,
		NumGC:       m.NumGC,
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("open process: %w", err)
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("read memory info: %w", err)
	}
	stats.RSS = mem.RSS

	if cpu, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	return stats, nil
}

// String возвращает краткое описание для логов
func (s ProcessStats) String() string {
	return fmt.Sprintf("RSS %.1f MB, heap %.1f MB (%d объектов), GC %d, CPU %.1f%%",
		mb(s.RSS), mb(s.HeapAlloc), s.HeapObjects, s.NumGC, s.CPUPercent)
}

func mb(bytes uint64) float64 {
	return float64(bytes) / 1024 / 1024
}
