// Package logging defines the leveled logging contract used across the wiki
// storage services, plus a no-op implementation for callers that do not care
// about log output. The interface mirrors github.com/goliatone/go-logger so
// host applications can plug that package in without additional adapters.
package logging

import "context"

// Logger is the leveled logging contract expected by the storage runtime.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers. Implementations can return the same
// instance for every name or scope loggers per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

const (
	rootModule     = "docwiki"
	documentModule = "docwiki.document"
	listingModule  = "docwiki.listing"
	trashModule    = "docwiki.trash"
	assetsModule   = "docwiki.assets"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered predictably.
func ModuleLogger(provider LoggerProvider, module string) Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// DocumentLogger returns the logger namespace reserved for the document store.
func DocumentLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, documentModule)
}

// ListingLogger returns the logger namespace reserved for the listing engine.
func ListingLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, listingModule)
}

// TrashLogger returns the logger namespace reserved for trash retention.
func TrashLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, trashModule)
}

// AssetsLogger returns the logger namespace reserved for upload assets.
func AssetsLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, assetsModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Nil or empty maps are safe.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for key, value := range fields {
			copied[key] = value
		}
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) Logger {
	return n
}
