package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/recap-build/gometastore/config"
)

var Output io.WriteCloser

// InitializeFileLogger sends the standard logger to logs.txt in the gometastore home directory.
func InitializeFileLogger() {
	InitializeFileLoggerIn(config.HomeDir)
}

func InitializeFileLoggerIn(dir string) {
	path := filepath.Join(dir, "logs.txt")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("couldn't create %s directory: %s", dir, err)
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("couldn't create logs file: %s", err)
	}
	Output = f
	log.SetOutput(Output)
}

// InitializeStderrLogger is used in verbose mode.
func InitializeStderrLogger() {
	Output = nopCloser{os.Stderr}
	log.SetOutput(Output)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

func CloseLogger() {
	if Output != nil {
		Output.Close()
	}
}
