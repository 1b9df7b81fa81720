// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Logger wraps the standard log package with file output and broadcasting.
// Every line is written to stdout and the log file, and fanned out to any
// subscribed channels (used by the live log stream endpoint).
type Logger struct {
	file        *os.File
	logger      *log.Logger
	broadcast   chan string
	subscribers map[chan string]bool
	subMu       sync.RWMutex
	mu          sync.RWMutex
	closed      bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger. Safe to call more than once; only the
// first call takes effect.
func Init(logFile string) (*Logger, error) {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logFile)
	})
	return defaultLogger, err
}

// NewLogger creates a new logger instance writing to stdout and logFile.
func NewLogger(logFile string) (*Logger, error) {
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		file:        file,
		logger:      log.New(io.MultiWriter(os.Stdout, file), "", log.LstdFlags|log.Lshortfile),
		broadcast:   make(chan string, 100), // Buffered to prevent blocking
		subscribers: make(map[chan string]bool),
	}

	go l.broadcastLoop()

	return l, nil
}

// GetDefault returns the default logger, falling back to a stdout-only
// logger if Init was never called.
func GetDefault() *Logger {
	if defaultLogger == nil {
		defaultLogger = &Logger{
			logger:      log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile),
			broadcast:   make(chan string, 100),
			subscribers: make(map[chan string]bool),
		}
		go defaultLogger.broadcastLoop()
	}
	return defaultLogger
}

// Subscribe creates a per-client channel receiving every log line. Returns
// nil if the logger is closed.
func (l *Logger) Subscribe() chan string {
	l.mu.RLock()
	closed := l.closed
	l.mu.RUnlock()
	if closed {
		return nil
	}

	clientChan := make(chan string, 10)

	l.subMu.Lock()
	l.subscribers[clientChan] = true
	l.subMu.Unlock()

	return clientChan
}

// Unsubscribe removes a client channel and closes it.
func (l *Logger) Unsubscribe(ch chan string) {
	if ch == nil {
		return
	}

	l.subMu.Lock()
	defer l.subMu.Unlock()

	if l.subscribers[ch] {
		delete(l.subscribers, ch)
		close(ch)
	}
}

// broadcastLoop forwards log lines from the broadcast channel to all
// subscribers, dropping lines for any subscriber that cannot keep up.
func (l *Logger) broadcastLoop() {
	defer func() {
		l.subMu.Lock()
		for ch := range l.subscribers {
			close(ch)
		}
		l.subscribers = make(map[chan string]bool)
		l.subMu.Unlock()
	}()

	for logLine := range l.broadcast {
		l.subMu.RLock()
		subs := make([]chan string, 0, len(l.subscribers))
		for ch := range l.subscribers {
			subs = append(subs, ch)
		}
		l.subMu.RUnlock()

		for _, ch := range subs {
			select {
			case ch <- logLine:
			default:
				// Channel full, skip this subscriber
			}
		}
	}
}

func (l *Logger) logMessage(level, format string, v ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return
	}

	message := fmt.Sprintf(format, v...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logLine := fmt.Sprintf("[%s] [%s] %s", timestamp, level, message)

	if l.logger != nil {
		l.logger.Output(3, logLine)
	}

	select {
	case l.broadcast <- logLine:
	default:
		// Channel full, skip broadcast to prevent blocking
	}
}

// Printf logs a message at INFO level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.logMessage("INFO", format, v...)
}

// Warnf logs a message at WARN level
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logMessage("WARN", format, v...)
}

// Errorf logs a message at ERROR level
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logMessage("ERROR", format, v...)
}

// Debugf logs a message at DEBUG level
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logMessage("DEBUG", format, v...)
}

// Fatalf logs a message at FATAL level and exits
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.logMessage("FATAL", format, v...)
	os.Exit(1)
}

// Close closes the log file and stops broadcasting.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	close(l.broadcast)

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Package-level convenience functions
func Printf(format string, v ...interface{}) {
	GetDefault().Printf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	GetDefault().Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	GetDefault().Errorf(format, v...)
}

func Debugf(format string, v ...interface{}) {
	GetDefault().Debugf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	GetDefault().Fatalf(format, v...)
}
