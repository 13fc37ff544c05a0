package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/pbd/config"
	"github.com/lixenwraith/pbd/parameter"
	"github.com/lixenwraith/pbd/physics"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	logPath := flag.String("log", "pbd-sandbox.log", "log file; the terminal belongs to the UI")
	mute := flag.Bool("mute", false, "disable contact sound")
	fine := flag.Bool("fine", false, "use the 120 Hz sub-step")
	printConfig := flag.Bool("print-config", false, "print the effective config as TOML and exit")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "pbd ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *fine {
		cfg.Step = parameter.PhysicsStepFine
	}

	if *printConfig {
		if err := writeConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	sb, err := NewSandbox(cfg, logger, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sb.cleanup()

	sb.run()
}

func writeConfig(cfg physics.Config) error {
	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
