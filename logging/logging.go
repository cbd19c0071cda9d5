// Package logging configures commonlog for the danube tools and hands out
// named loggers.
package logging

import (
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Configure sets the global verbosity (negative silences, 0 notices, 1 info,
// 2 and above debug) and optionally redirects output to a file.
func Configure(verbosity int, path string) {
	if path == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &path)
}

// GetLogger returns the logger for a dotted name such as "danube.parser".
func GetLogger(name string) commonlog.Logger {
	return commonlog.GetLogger(name)
}

// Verbosity maps a level name to the verbosity understood by Configure.
// Unknown names map to 0.
func Verbosity(level string) int {
	switch strings.ToLower(level) {
	case "none", "quiet", "off":
		return -1
	case "info":
		return 1
	case "debug":
		return 2
	}
	return 0
}
