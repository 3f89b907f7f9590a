package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/eliterealty/internal/catalog"
	"github.com/jask/eliterealty/internal/config"
	"github.com/jask/eliterealty/internal/leads"
	"github.com/jask/eliterealty/internal/logging"
	"github.com/jask/eliterealty/internal/tui"
)

func main() {
	writeConfig := flag.Bool("write-config", false, "write the effective configuration to the config file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *writeConfig {
		path, err := config.Save(cfg)
		if err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Println(path)
		return
	}

	logFile, err := logging.OpenFile(cfg.Log.Path)
	if err != nil {
		log.Fatalf("log file: %v", err)
	}
	defer logFile.Close()

	logger, err := logging.New(logging.Options{Writer: logFile, Level: cfg.Log.Level, Color: cfg.Log.Color})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	slog.SetDefault(logger)

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	sink, err := leadSink(cfg.Leads, logger)
	if err != nil {
		log.Fatalf("leads: %v", err)
	}
	logger.Info("starting", "listings", cat.Stats().Count, "sink", sink.Name())

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(tui.New(tui.Options{
		Catalog: cat,
		Leads:   leads.NewService(sink, logger),
		Log:     logger,
		UI:      cfg.UI,
	}), opts...)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func leadSink(cfg config.LeadsConfig, logger *slog.Logger) (leads.Sink, error) {
	switch cfg.Sink {
	case "crm":
		sink := leads.NewCRMSink(cfg.CRMEndpoint, cfg.Token(), cfg.Timeout)
		if sink == nil {
			return nil, errors.New("crm sink needs leads.crm_endpoint")
		}
		return sink, nil
	default:
		return leads.NewLogSink(logger), nil
	}
}
