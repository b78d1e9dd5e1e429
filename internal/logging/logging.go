// Package logging provides the engine's internal trace logger: structured,
// level-gated, console/file tee'd logging for diagnosing the evaluator and
// layouter during development. This is never the channel user-visible
// compile diagnostics travel on (that is internal/diag's job) — it is the
// "what is the engine doing" trace a host can turn on while debugging a
// show/set rule or a layout pass.
//
// Grounded on rupor-github-fb2cng's config/logger.go: a console core split
// by priority plus an optional file core, combined with zapcore.NewTee, and
// an encoder that flattens wrapped errors before they hit a human's
// terminal. Generalized from that file's YAML-driven, report-aware shape
// down to the handful of knobs an embedding engine actually needs.
package logging

import (
	"errors"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Level mirrors the three-tier vocabulary the teacher's LoggerConfig.Level
// uses ("none", "normal", "debug"), rather than exposing zap's finer-grained
// level set to callers who only ever want one of these three postures.
type Level string

const (
	LevelNone   Level = "none"
	LevelNormal Level = "normal"
	LevelDebug  Level = "debug"
)

// Config selects the engine trace logger's destinations and verbosity. A
// zero Config produces a logger that discards everything, matching the
// teacher's "none" level behavior (zapcore.NewNopCore on every core).
type Config struct {
	// Console is the level gating stdout output. At normal or debug,
	// errors go to stderr instead, mirroring the teacher's
	// high-priority/low-priority console split; at none (or empty) the
	// console discards errors too.
	Console Level
	// File, if non-empty, is a path engine trace logs are additionally
	// written to at debug verbosity, regardless of Console.
	File string
	// Color forces (or suppresses) ANSI level coloring on console output.
	// The caller decides this (typically via isatty against the stream
	// it intends to write to) rather than this package probing os.Stdout
	// itself, since the host may redirect output anywhere.
	Color bool
}

// New builds the tee'd zap logger described by cfg. The returned close
// function flushes and releases the opened file, aggregating any error
// encountered while doing so with multierr.
func New(cfg Config) (*zap.Logger, func() error, error) {
	consoleLP, consoleHP := consoleCores(cfg.Console, cfg.Color)

	fileCore := zapcore.NewNopCore()
	closeFile := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		fileCore = zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(f),
			zap.NewAtomicLevelAt(zap.DebugLevel),
		)
		closeFile = f.Close
	}

	core := zapcore.NewTee(consoleHP, consoleLP, fileCore)
	logger := zap.New(core, zap.AddCaller()).Named("typeset")
	return logger, closeFile, nil
}

// Close runs fn (as returned by New) and folds any error into a combined
// error via multierr, so callers can defer-close several loggers/writers
// and report every failure instead of only the first.
func Close(errs *error, fn func() error) {
	*errs = multierr.Append(*errs, fn())
}

func consoleCores(level Level, color bool) (lowPriority, highPriority zapcore.Core) {
	lowEnc := consoleEncoder(color)
	highEnc := errorFlatteningEncoder(consoleEncoder(color))

	isHighPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	switch level {
	case LevelDebug:
		low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
		})
		return zapcore.NewCore(lowEnc, zapcore.Lock(os.Stdout), low),
			zapcore.NewCore(highEnc, zapcore.Lock(os.Stderr), isHighPriority)
	case LevelNormal:
		low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
		})
		return zapcore.NewCore(lowEnc, zapcore.Lock(os.Stdout), low),
			zapcore.NewCore(highEnc, zapcore.Lock(os.Stderr), isHighPriority)
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}
}

func consoleEncoder(color bool) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// flattenedErrorEncoder strips wrapped-error verbosity before it reaches a
// human's terminal — the same superficial-today-but-load-bearing-later
// trick the teacher's consoleEnc applies, kept here in case trace errors
// grow multierr chains that would otherwise dump every wrapped frame.
type flattenedErrorEncoder struct {
	zapcore.Encoder
}

func errorFlatteningEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return flattenedErrorEncoder{zapcore.NewConsoleEncoder(cfg)}
}

func (e flattenedErrorEncoder) Clone() zapcore.Encoder {
	return flattenedErrorEncoder{e.Encoder.Clone()}
}

func (e flattenedErrorEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	flattened := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		if f.Type == zapcore.ErrorType {
			if err, ok := f.Interface.(error); ok {
				f.Interface = errors.New(err.Error())
			}
		}
		flattened[i] = f
	}
	return e.Encoder.EncodeEntry(ent, flattened)
}
