package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger is a component logger that traces operations step by step. Steps and
// successes are written at debug level, errors at error level.
type StructuredLogger struct {
	name string
	ctx  context.Context
}

func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name}
}

// WithContext returns a copy bound to ctx. The request id found in ctx is attached to every entry.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	return &StructuredLogger{name: l.name, ctx: ctx}
}

func (l *StructuredLogger) Operation(op string) *OperationBuilder {
	return &OperationBuilder{name: l.name, ctx: l.ctx, operation: op}
}

// OperationBuilder collects the fields shared by every entry of one traced operation.
type OperationBuilder struct {
	name      string
	ctx       context.Context
	operation string
	fields    []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	fields := make([]zap.Field, 0, len(b.fields)+2)
	fields = append(fields, zap.String("operation", b.operation))
	if b.ctx != nil {
		if id := requestid.FromContext(b.ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
	}
	fields = append(fields, b.fields...)

	return &OperationTracer{
		logger: zap.L().Named(b.name).WithOptions(zap.AddCallerSkip(1)).With(fields...),
		start:  time.Now(),
	}
}

// OperationTracer emits entries for the steps of one operation.
type OperationTracer struct {
	logger *zap.Logger
	start  time.Time
}

func (t *OperationTracer) Step(name string) *Entry {
	return t.entry(zapcore.DebugLevel, "step", zap.String("step", name))
}

// Success closes the operation and records its total duration.
func (t *OperationTracer) Success() *Entry {
	return t.entry(zapcore.DebugLevel, "success", zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) Error(err error) *Entry {
	return t.entry(zapcore.ErrorLevel, "error", zap.Error(err), zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) entry(level zapcore.Level, msg string, fields ...zap.Field) *Entry {
	return &Entry{logger: t.logger, level: level, msg: msg, fields: fields}
}

// Entry is a single pending log line. Nothing is written until Log is called.
type Entry struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Entry) WithString(key, value string) *Entry {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Entry) WithUUID(key string, value uuid.UUID) *Entry {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithFloat(key string, value float64) *Entry {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Entry) WithBool(key string, value bool) *Entry {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Entry) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
