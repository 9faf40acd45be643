package events

import (
	"fmt"
	"puzzlestats/internal/providers"
	"sort"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
)

// loggerAdapter sends watermill's logs to the application logger.
type loggerAdapter struct {
	logger providers.Logger
	fields watermill.LogFields
}

func NewLoggerAdapter(logger providers.Logger) watermill.LoggerAdapter {
	return &loggerAdapter{logger: logger}
}

func (l *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Errorf(providers.TypeIngest, "%s: %v%s", msg, err, l.format(fields))
}

func (l *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.logger.Infof(providers.TypeIngest, "%s%s", msg, l.format(fields))
}

func (l *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debugf(providers.TypeIngest, "%s%s", msg, l.format(fields))
}

func (l *loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debugf(providers.TypeIngest, "%s%s", msg, l.format(fields))
}

func (l *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &loggerAdapter{logger: l.logger, fields: l.fields.Add(fields)}
}

func (l *loggerAdapter) format(fields watermill.LogFields) string {
	all := l.fields.Add(fields)
	if len(all) == 0 {
		return ""
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, all[k])
	}
	return b.String()
}
