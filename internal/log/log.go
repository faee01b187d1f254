/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package log provides the process-wide structured logger and the
// context plumbing used to carry a request-scoped logger across the
// placement and handover control loops.
package log

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// New builds the process logger. dev selects the human-readable console
// encoder used during local development; production mode emits JSON.
func New(dev bool) *zap.SugaredLogger {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		// A logger that can't be constructed from a hardcoded config is a
		// build-time programming error, not a runtime condition to recover from.
		panic(err)
	}
	return logger.Sugar()
}

type ctxKey struct{}

// IntoContext stores logger on ctx, retrievable with FromContext.
func IntoContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	ctx = logr.NewContext(ctx, zapr.NewLogger(logger.Desugar()))
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored by IntoContext, or a no-op
// sugared logger if none was stored.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		return l
	}
	return zap.NewNop().Sugar()
}

// AsLogr adapts a zap logger to the logr.Logger interface, matching the
// bridge the teacher's controller-runtime manager uses to accept a zap
// sink (see cmd/controller/main.go's zapr.NewLogger call).
func AsLogr(logger *zap.SugaredLogger) logr.Logger {
	return zapr.NewLogger(logger.Desugar())
}
