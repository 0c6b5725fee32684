package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"touchbridge/internal/bridge"
	"touchbridge/internal/config"
	"touchbridge/internal/store"
	"touchbridge/internal/stream"
	"touchbridge/internal/tui"
	"touchbridge/internal/units"
)

func main() {
	var configPath, logPath, addr string
	flag.StringVar(&configPath, "config", "", "path to config.toml (default $XDG_CONFIG_HOME/touchbridge/config.toml)")
	flag.StringVar(&logPath, "log", "", "write log output to this file")
	flag.StringVar(&addr, "addr", "", "peer host:port, overrides the config file")
	flag.Parse()

	// the terminal belongs to the UI, so logs only go to a file
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "touchbridge ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Couldn't open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	if configPath == "" {
		configPath = filepath.Join(config.Dir(), config.FileName)
	}
	conf, err := config.Load(configPath)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Couldn't load config: %v\n", err)
	}
	if logPath == "" && conf.LogFile != "" {
		f, err := tea.LogToFile(conf.LogFile, "touchbridge ")
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("Couldn't open log file: %v\n", err)
		}
		defer f.Close()
	}
	if addr == "" {
		addr = conf.Addr()
	}
	log.Printf("Application starting, config %s, peer %s\n", configPath, addr)

	client := stream.New(stream.Options{
		Addr:             addr,
		HandshakeTimeout: conf.HandshakeTimeout(),
	})
	defer client.Close()

	coord := bridge.New(bridge.Options{
		MinSize:      conf.MinSize,
		HandleRadius: conf.HandleRadius,
		Converter:    units.FromDPI(conf.DPI),
		Sender:       client,
		Store:        store.New(filepath.Join(filepath.Dir(configPath), store.FileName)),
	})
	if err := coord.Restore(); err != nil {
		// a broken area file falls back to the default area
		log.Printf("Couldn't restore area: %v\n", err)
	}

	p := tea.NewProgram(tui.New(coord, client, addr), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		client.Close()
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
