package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// accessLogFormatter writes chi request logs through the service Logger.
type accessLogFormatter struct {
	logger Logger
}

func (f *accessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessLogEntry{
		logger:    f.logger,
		method:    r.Method,
		path:      r.URL.Path,
		remoteIP:  r.RemoteAddr,
		requestID: middleware.GetReqID(r.Context()),
	}
}

type accessLogEntry struct {
	logger    Logger
	method    string
	path      string
	remoteIP  string
	requestID string
}

func (e *accessLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.logger.Info("request completed",
		"method", e.method,
		"path", e.path,
		"status", status,
		"bytes", bytes,
		"elapsedMs", elapsed.Milliseconds(),
		"remoteIP", e.remoteIP,
		"requestID", e.requestID,
	)
}

func (e *accessLogEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error("request panicked",
		"method", e.method,
		"path", e.path,
		"requestID", e.requestID,
		"panic", fmt.Sprint(v),
		"stack", string(stack),
	)
}
