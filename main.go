package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"betledger/cmd"
	"betledger/config"
	"betledger/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Long simulations and prediction calls stop on interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, cancelling...")
		cancel()
	}()

	if err := cmd.Run(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: betledger migrate [up|down|status] [args...]")
	}

	path := config.Get().DatabasePath

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp(path)
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(path, steps)
	case "status":
		return database.MigrateStatus(path)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}
