// Package logging arma el logger del cliente de terminal. La salida va a un
// archivo: stdout pertenece a la UI y no se puede contaminar.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AbrirArchivo abre (o crea) el archivo de log en modo append. Ruta vacía
// significa sin log a archivo.
func AbrirArchivo(ruta string) (*os.File, error) {
	if ruta == "" {
		return nil, nil
	}

	f, err := os.OpenFile(ruta, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo de log: %w", err)
	}
	return f, nil
}

// ConArchivo agrega al logger base un core JSON hacia el archivo.
func ConArchivo(base *zap.Logger, f *os.File, debug bool) *zap.Logger {
	if f == nil {
		return base
	}

	encCfg := zap.NewProductionEncoderConfig()
	nivel := zap.InfoLevel
	if debug {
		nivel = zap.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), nivel)
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, core)
	}))
}
