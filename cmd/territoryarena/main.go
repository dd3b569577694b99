package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/territoryarena/server/common/config"
	"github.com/territoryarena/server/common/console"
	"github.com/territoryarena/server/common/network"
	"github.com/territoryarena/server/common/utils"
	"github.com/territoryarena/server/roomserver"
)

func main() {
	app := cli.NewApp()
	app.Name = "territoryarena"
	app.Usage = "territory-capture room server"

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Value: "", Usage: "path to a JSON config file"},
		cli.IntFlag{Name: "port", Value: 0, Usage: "override the configured listen port"},
		cli.IntFlag{Name: "tick-rate", Value: 0, Usage: "override the configured tick rate (Hz)"},
		cli.BoolFlag{Name: "console", Usage: "start the interactive admin console"},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		utils.Check(err, "territoryarena exited with an error")
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		cfg = config.Load(path)
	}
	if port := c.Int("port"); port != 0 {
		cfg.Port = port
	}
	if tickRate := c.Int("tick-rate"); tickRate != 0 {
		cfg.TickRate = tickRate
	}
	config.Clamp(cfg)

	room := roomserver.NewRoom(cfg)
	hub := network.NewHub(room)

	go hub.Run()
	go room.Run()

	router := network.NewRouter(hub, room)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	go func() {
		utils.Debug("territoryarena", "listening on "+addr)
		if err := network.ListenAndServe(addr, router); err != nil {
			utils.Check(err, "Failed to listen on "+addr)
		}
	}()

	if c.Bool("console") {
		shell := console.New(room)
		shell.Run()
	} else {
		waitForShutdownSignal()
	}

	utils.Debug("territoryarena", "shutting down")
	room.Stop()

	return nil
}

func waitForShutdownSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}
