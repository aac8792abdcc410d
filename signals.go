package fcbuffer

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for schema compilation and codec boundary events.
var (
	SignalCompileStart       = capitan.NewSignal("fcbuffer.compile.start", "Schema compilation beginning")
	SignalCompileComplete    = capitan.NewSignal("fcbuffer.compile.complete", "Schema compilation finished")
	SignalStructBuilt        = capitan.NewSignal("fcbuffer.struct.built", "Struct codec constructed")
	SignalToBufferStart      = capitan.NewSignal("fcbuffer.tobuffer.start", "Encoding a value to bytes")
	SignalToBufferComplete   = capitan.NewSignal("fcbuffer.tobuffer.complete", "Finished encoding a value to bytes")
	SignalFromBufferStart    = capitan.NewSignal("fcbuffer.frombuffer.start", "Decoding a value from bytes")
	SignalFromBufferComplete = capitan.NewSignal("fcbuffer.frombuffer.complete", "Finished decoding a value from bytes")
	SignalSchemaDebug        = capitan.NewSignal("fcbuffer.schema.debug", "Rendered schema debug report")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeyHasBase     = capitan.NewBoolKey("has_base")
	KeyErrorCount  = capitan.NewIntKey("error_count")
	KeyStructCount = capitan.NewIntKey("struct_count")
	KeyReport      = capitan.NewStringKey("report")
)

func emitCompileStart(ctx context.Context) {
	capitan.Emit(ctx, SignalCompileStart)
}

func emitCompileComplete(ctx context.Context, duration time.Duration, structCount, errCount int) {
	fields := []capitan.Field{
		KeyDuration.Field(duration),
		KeyStructCount.Field(structCount),
		KeyErrorCount.Field(errCount),
	}
	if errCount > 0 {
		capitan.Error(ctx, SignalCompileComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalCompileComplete, fields...)
}

func emitSchemaDebug(ctx context.Context, report []byte) {
	capitan.Emit(ctx, SignalSchemaDebug, KeyReport.Field(string(report)))
}

func emitStructBuilt(ctx context.Context, name string, fieldCount int, hasBase bool) {
	capitan.Emit(ctx, SignalStructBuilt,
		KeyTypeName.Field(name),
		KeyFieldCount.Field(fieldCount),
		KeyHasBase.Field(hasBase),
	)
}

func emitToBufferStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalToBufferStart, KeyTypeName.Field(typeName))
}

func emitToBufferComplete(ctx context.Context, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalToBufferComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalToBufferComplete, fields...)
}

func emitFromBufferStart(ctx context.Context, typeName string, size int) {
	capitan.Emit(ctx, SignalFromBufferStart,
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
	)
}

func emitFromBufferComplete(ctx context.Context, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalFromBufferComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalFromBufferComplete, fields...)
}
