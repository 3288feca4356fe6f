package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the rotating log file written under the log directory.
const FileName = "ticketlens.log"

// Init configures the global logger with a console sink on stderr and a
// rotating file sink. Stdout stays free for report output and the MCP stdio
// transport. When the log directory cannot be written the file sink is
// dropped with a warning.
func Init(verbose bool) {
	// Init runs before config.Load, so LOGS_FOLDER may only be in the binary's .env.
	exePath, exeErr := os.Executable()
	if exeErr == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	logDir := Dir(exePath, exeErr)
	file, fileErr := fileSink(logDir)

	var out io.Writer = console
	if fileErr == nil {
		out = zerolog.MultiLevelWriter(console, file)
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("dir", logDir).Msg("Log directory is not writable, logging to stderr only")
	}
}

// Dir resolves the log directory: LOGS_FOLDER, else logs/ next to the binary,
// else logs/ in the working directory.
func Dir(exePath string, exeErr error) string {
	if dir := os.Getenv("LOGS_FOLDER"); dir != "" {
		return dir
	}
	if exeErr == nil {
		return filepath.Join(filepath.Dir(exePath), "logs")
	}
	return "logs"
}

func fileSink(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	probe := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return nil, err
	}
	_ = os.Remove(probe)

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    8, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}, nil
}
