package logger

import (
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDebugLevel is the driver's level for command-level messages.
const mongoDebugLevel = 2

// MongoLogSink forwards MongoDB driver log messages to zerolog.
type MongoLogSink struct {
	logger zerolog.Logger
}

var _ options.LogSink = (*MongoLogSink)(nil)

// NewMongoLogSink tags every driver message with component=mongo.
func NewMongoLogSink(logger zerolog.Logger) *MongoLogSink {
	return &MongoLogSink{logger: logger.With().Str("component", "mongo").Logger()}
}

func (s *MongoLogSink) Info(level int, message string, keysAndValues ...interface{}) {
	e := s.logger.Info()
	if level >= mongoDebugLevel {
		e = s.logger.Debug()
	}
	e.Fields(keysAndValues).Msg(message)
}

func (s *MongoLogSink) Error(err error, message string, keysAndValues ...interface{}) {
	s.logger.Error().Err(err).Fields(keysAndValues).Msg(message)
}

// GetMongoLogLevel maps a zerolog level onto the driver's component level.
func GetMongoLogLevel(level zerolog.Level) options.LogLevel {
	if level <= zerolog.DebugLevel {
		return options.LogLevelDebug
	}
	return options.LogLevelInfo
}
