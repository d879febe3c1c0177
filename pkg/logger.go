package reader

type Logger interface {
	Info(message string, module string)
	Warn(message string, module string)
	Error(string)
}

var logger Logger

func SetLogger(l Logger) {
	logger = l
}

// The logger is optional, without one the library stays quiet.

func logInfo(message string, module string) {
	if logger != nil {
		logger.Info(message, module)
	}
}

func logWarn(message string, module string) {
	if logger != nil {
		logger.Warn(message, module)
	}
}
