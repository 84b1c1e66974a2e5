// Copyright (c) 2023 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
)

// InterceptorLogger adapts a logrus logger to the gRPC logging interceptor.
func InterceptorLogger(l logrus.FieldLogger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		f := make(logrus.Fields, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			f[fmt.Sprint(fields[i])] = fields[i+1]
		}
		entry := l.WithFields(f)

		switch lvl {
		case logging.LevelDebug:
			entry.Debug(msg)
		case logging.LevelInfo:
			entry.Info(msg)
		case logging.LevelWarn:
			entry.Warn(msg)
		case logging.LevelError:
			entry.Error(msg)
		default:
			entry.Infof("%s (unknown level %v)", msg, lvl)
		}
	})
}

// ParseLogLevel returns the logrus level for name, falling back to info.
func ParseLogLevel(name string) logrus.Level {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", name)
		return logrus.InfoLevel
	}
	return lvl
}
