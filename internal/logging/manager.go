package logging

import (
	"fmt"
	"sync"
)

// LoggerManager управляет множественными логгерами для разных компонентов
type LoggerManager struct {
	mu           sync.RWMutex
	loggers      map[string]*Logger
	logDir       string
	consoleLevel LogLevel
	fileLevel    LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{
			loggers:      make(map[string]*Logger),
			consoleLevel: INFO,
			fileLevel:    DEBUG,
		}
	})
	return globalManager
}

// Configure задаёт директорию файлов и уровни для логгеров, создаваемых после вызова.
// Уже созданные логгеры получают новые уровни сразу.
func (lm *LoggerManager) Configure(dir string, consoleLevel, fileLevel LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.logDir = dir
	lm.consoleLevel = consoleLevel
	lm.fileLevel = fileLevel
	for _, logger := range lm.loggers {
		logger.SetLevels(consoleLevel, fileLevel)
	}
}

// GetLogger возвращает логгер для компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger, nil
	}
	lm.mu.RUnlock()

	// Создаем новый логгер под write lock
	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз на случай race condition
	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger := NewLogger(component)
	logger.SetLevels(lm.consoleLevel, lm.fileLevel)
	if lm.logDir != "" {
		if err := logger.AttachFile(lm.logDir); err != nil {
			return nil, fmt.Errorf("failed to create logger for %s: %w", component, err)
		}
	}

	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или создает fallback при ошибке
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		// Fallback: консольный логгер без файла
		fallback := NewLogger(component)
		fallback.SetLevels(lm.consoleLevel, ERROR)
		return fallback
	}
	return logger
}

// CloseAll закрывает все логгеры
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close logger for %s: %w", component, err)
		}
	}

	// Очищаем карту
	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// ListComponents возвращает список всех зарегистрированных компонентов
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	return components
}

// SetLogLevel устанавливает уровень логирования для компонента
func (lm *LoggerManager) SetLogLevel(component string, consoleLevel, fileLevel LogLevel) error {
	lm.mu.RLock()
	logger, exists := lm.loggers[component]
	lm.mu.RUnlock()

	if !exists {
		return fmt.Errorf("logger for component %s not found", component)
	}

	logger.SetLevels(consoleLevel, fileLevel)
	return nil
}

// Удобные функции для получения логгеров
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

func GetWorldLogger() *Logger {
	return GetComponentLogger("world")
}

func GetTerrainLogger() *Logger {
	return GetComponentLogger("terrain")
}

func GetAppLogger() *Logger {
	return GetComponentLogger("app")
}
