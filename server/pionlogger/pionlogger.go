// Package pionlogger bridges this module's printf-style Logger to
// pion/logging, so the underlying media stack's internal logs flow through
// the same LoggerFactory and enable-list as application logs.
package pionlogger

import (
	"github.com/pion/logging"

	"github.com/peer-calls/sfu-listener/server"
)

// level indexes the five severities pion/logging.LeveledLogger exposes,
// from least to most severe.
type level int

const (
	levelTrace level = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
	numLevels
)

func (lv level) suffix() string {
	switch lv {
	case levelTrace:
		return ":trace"
	case levelDebug:
		return ":debug"
	case levelInfo:
		return ":info"
	case levelWarn:
		return ":warn"
	case levelError:
		return ":error"
	default:
		return ""
	}
}

// Factory adapts a server.LoggerFactory into a pion/logging.LoggerFactory,
// handing out one Logger per subsystem/level pair (e.g. "pion:ice:warn")
// so the enable-list can mute pion subsystems independently of severity.
type Factory struct {
	loggerFactory server.LoggerFactory
}

// NewFactory wraps loggerFactory for use by pion/webrtc's SettingEngine.
func NewFactory(loggerFactory server.LoggerFactory) *Factory {
	return &Factory{loggerFactory: loggerFactory}
}

// NewLogger implements pion/logging.LoggerFactory.
func (f *Factory) NewLogger(subsystem string) logging.LeveledLogger {
	byLevel := make(leveledLogger, numLevels)

	for lv := level(0); lv < numLevels; lv++ {
		byLevel[lv] = f.loggerFactory.GetLogger("pion:" + subsystem + lv.suffix())
	}

	return byLevel
}

// leveledLogger fans pion/logging's five severities out to one
// server.Logger per severity, each independently enabled or disabled by
// the underlying LoggerFactory's namespace pattern.
type leveledLogger []server.Logger

func (l leveledLogger) Trace(msg string) { l[levelTrace].Println(msg) }
func (l leveledLogger) Tracef(format string, args ...interface{}) {
	l[levelTrace].Printf(format, args...)
}
func (l leveledLogger) Debug(msg string) { l[levelDebug].Println(msg) }
func (l leveledLogger) Debugf(format string, args ...interface{}) {
	l[levelDebug].Printf(format, args...)
}
func (l leveledLogger) Info(msg string) { l[levelInfo].Println(msg) }
func (l leveledLogger) Infof(format string, args ...interface{}) {
	l[levelInfo].Printf(format, args...)
}
func (l leveledLogger) Warn(msg string) { l[levelWarn].Println(msg) }
func (l leveledLogger) Warnf(format string, args ...interface{}) {
	l[levelWarn].Printf(format, args...)
}
func (l leveledLogger) Error(msg string) { l[levelError].Println(msg) }
func (l leveledLogger) Errorf(format string, args ...interface{}) {
	l[levelError].Printf(format, args...)
}

var _ logging.LoggerFactory = &Factory{}
var _ logging.LeveledLogger = leveledLogger{}
