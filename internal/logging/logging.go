package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"image-management-server/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init 按配置设置全局 zerolog 级别与输出格式，之后各包直接使用 zerolog/log
func Init(cfg config.LogConfig) {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(newWriter(cfg.Format, os.Stderr)).With().Timestamp().Logger()
}

func newWriter(format string, out io.Writer) io.Writer {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
