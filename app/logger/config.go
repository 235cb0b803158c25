package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogFormat int

const (
	ColorizedOutput LogFormat = iota
	PlaintextOutput
	JSONOutput
)

type NamedLevel struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

type Config struct {
	Production     bool         `yaml:"production"`
	DefaultLevel   string       `yaml:"defaultLevel"`
	Levels         []NamedLevel `yaml:"levels"` // first match will be used
	AddOutputPaths []string     `yaml:"outputPaths"`
	DisableStdErr  bool         `yaml:"disableStdErr"`
	Format         LogFormat    `yaml:"format"`
}

// ZapConfig builds the zap config described by l
func (l Config) ZapConfig() zap.Config {
	var conf zap.Config
	if l.Production {
		conf = zap.NewProductionConfig()
	} else {
		conf = zap.NewDevelopmentConfig()
	}
	encConfig := conf.EncoderConfig
	switch l.Format {
	case PlaintextOutput:
		encConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		conf.Encoding = "console"
	case JSONOutput:
		encConfig.MessageKey = "msg"
		encConfig.TimeKey = "ts"
		encConfig.LevelKey = "level"
		encConfig.NameKey = "logger"
		encConfig.CallerKey = "caller"
		encConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		conf.Encoding = "json"
	default:
		conf.Encoding = "console"
		encConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	conf.EncoderConfig = encConfig

	if len(l.AddOutputPaths) > 0 {
		conf.OutputPaths = append(conf.OutputPaths, l.AddOutputPaths...)
	}
	if l.DisableStdErr {
		paths := conf.OutputPaths[:0]
		for _, p := range conf.OutputPaths {
			if p != "stderr" {
				paths = append(paths, p)
			}
		}
		conf.OutputPaths = paths
	}
	if defaultLevel, err := zap.ParseAtomicLevel(l.DefaultLevel); err == nil {
		conf.Level = defaultLevel
	}
	return conf
}

// ApplyGlobal replaces the process-wide logger with one built from l
func (l Config) ApplyGlobal() {
	conf := l.ZapConfig()
	lg, err := conf.Build()
	if err != nil {
		Default().Fatal("can't build logger", zap.Error(err))
	}
	mu.Lock()
	loggerConfig = conf
	mu.Unlock()
	SetDefault(lg)
	SetNamedLevels(l.Levels)
}

// LevelsFromStr parses a string of the form "name1=DEBUG;prefix*=WARN;*=ERROR" into a slice of NamedLevel
// a part without "=" applies to every logger
func LevelsFromStr(s string) (levels []NamedLevel) {
	for _, kv := range strings.Split(s, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		parts := strings.Split(kv, "=")
		var key, value string
		switch len(parts) {
		case 1:
			key, value = "*", parts[0]
		case 2:
			key, value = parts[0], parts[1]
		default:
			continue
		}
		if _, err := zap.ParseAtomicLevel(value); err != nil {
			fmt.Printf("Can't parse log level %s: %s\n", value, err.Error())
			continue
		}
		levels = append(levels, NamedLevel{Name: key, Level: value})
	}
	return levels
}
