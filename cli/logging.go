package main

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("minisql")

var stderrFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.5s} ▶ %{message}%{color:reset}`,
)

func setupLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)
	leveled := logging.AddModuleLevel(backend)
	switch os.Getenv("MINISQL_LOG_LEVEL") {
	case "DEBUG":
		leveled.SetLevel(logging.DEBUG, "")
	case "INFO":
		leveled.SetLevel(logging.INFO, "")
	case "ERROR":
		leveled.SetLevel(logging.ERROR, "")
	default:
		leveled.SetLevel(logging.NOTICE, "")
	}
	logging.SetBackend(leveled)
}
