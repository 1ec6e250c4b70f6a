// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the package logger. It is a no-op logger unless configured
// with SetLogger.
//
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger configures the package logger. A nil logger restores the default
// no-op logger.
//
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
