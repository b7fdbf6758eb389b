package main

import (
	"github.com/lanternlab/lantern/internal/server"
	"github.com/lanternlab/lantern/internal/util"
	"github.com/lanternlab/lantern/pkg/logger"
	"github.com/lanternlab/lantern/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
