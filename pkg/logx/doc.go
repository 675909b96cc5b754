// Package logx configures finecron's structured logging.
//
// A small wrapper (logx.Logger) on top of zerolog keeps:
//   - Console output readable (short timestamp + short caller)
//   - Derived loggers cheap (With fixed fields)
//   - The zero value safe (no-op)
package logx
