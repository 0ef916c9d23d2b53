package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sjzsdu/codeide/config"
	"github.com/sjzsdu/codeide/share"
)

var (
	base      *logrus.Logger
	baseOnce  sync.Once
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// root 返回所有组件共享的 logrus.Logger
// 级别来源依次为 CODEIDE_LOG_LEVEL 环境变量 / 配置文件 log_level，默认 warn
func root() *logrus.Logger {
	baseOnce.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stderr)
		base.SetFormatter(&TextFormatter{})

		levelStr := config.GetConfigWithDefault(config.KeyLogLevel, "warn")
		level, err := logrus.ParseLevel(levelStr)
		if err != nil {
			level = logrus.WarnLevel
		}
		base.SetLevel(level)
		if share.GetDebug() {
			base.SetLevel(logrus.DebugLevel)
		}
	})
	return base
}

// NewLogger 返回组件的日志记录器，同一组件只创建一次
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	entry := root().WithField("component", component)
	loggers[component] = entry
	return entry
}

// SetLevel 按字符串设置全局日志级别
func SetLevel(level string) error {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root().SetLevel(lv)
	return nil
}

// SetDebug 打开或关闭调试日志
func SetDebug(on bool) {
	share.SetDebug(on)
	if on {
		root().SetLevel(logrus.DebugLevel)
	}
}

// SetOutput 设置日志输出位置
func SetOutput(w io.Writer) {
	root().SetOutput(w)
}
