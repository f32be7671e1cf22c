package trackercli

import "go.uber.org/zap"

var loggerRaw *zap.Logger
var logger *zap.SugaredLogger

func init() {
	var err error
	cfg := zap.NewDevelopmentConfig()
	cfg.Development = false
	cfg.OutputPaths = []string{"stderr"}
	loggerRaw, err = cfg.Build()
	if err != nil {
		panic(err)
	}
	logger = loggerRaw.Sugar()
}

func Debugw(msg string, keysAndValues ...interface{}) {
	logger.Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	logger.Infow(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	logger.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = loggerRaw.Sync()
}
