package logger

import (
	"sync"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

var (
	mu           sync.Mutex
	logger       *zap.Logger
	loggerConfig zap.Config
	namedLevels  []namedLevel
	namedLoggers = make(map[string]CtxLogger)
)

type namedLevel struct {
	name  string
	glob  glob.Glob
	level zap.AtomicLevel
}

func init() {
	loggerConfig = zap.NewDevelopmentConfig()
	logger, _ = loggerConfig.Build()
}

// SetDefault replaces the core used by the default and all named loggers
func SetDefault(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	*logger = *l
	rebuildNamed()
}

// SetNamedLevels sets levels for named loggers
// names may be glob patterns, like "share.*"; the first match wins
func SetNamedLevels(nls []NamedLevel) {
	mu.Lock()
	defer mu.Unlock()
	namedLevels = namedLevels[:0]

	minLevel := logger.Level()
	for _, nl := range nls {
		l, err := zap.ParseAtomicLevel(nl.Level)
		if err != nil {
			continue
		}
		level := namedLevel{name: nl.Name, level: l}
		if g, err := glob.Compile(nl.Name); err == nil {
			level.glob = g
		}
		namedLevels = append(namedLevels, level)
		if l.Level() < minLevel {
			minLevel = l.Level()
		}
	}

	if minLevel < logger.Level() {
		// root core filters everything below its own level, so lower it for verbose named loggers
		loggerConfig.Level = zap.NewAtomicLevelAt(minLevel)
		if lg, err := loggerConfig.Build(); err == nil {
			*logger = *lg
		}
	}
	rebuildNamed()
}

func rebuildNamed() {
	for name, nl := range namedLoggers {
		*(nl.Logger) = *newNamedCore(name)
	}
}

func newNamedCore(name string, fields ...zap.Field) *zap.Logger {
	return zap.New(logger.Core()).Named(name).WithOptions(
		zap.IncreaseLevel(getLevel(name)),
		zap.Fields(fields...),
	)
}

func Default() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// getLevel returns the level of the first matching name or glob pattern
func getLevel(name string) zap.AtomicLevel {
	for _, nl := range namedLevels {
		if nl.name == name {
			return nl.level
		}
		if nl.glob != nil && nl.glob.Match(name) {
			return nl.level
		}
	}
	return zap.NewAtomicLevelAt(logger.Level())
}

// NewNamed returns the named logger, creating it on first use
func NewNamed(name string, fields ...zap.Field) CtxLogger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := namedLoggers[name]; ok {
		return l
	}
	l := CtxLogger{Logger: newNamedCore(name, fields...), name: name}
	namedLoggers[name] = l
	return l
}
