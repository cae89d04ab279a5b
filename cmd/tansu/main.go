// Package main is the tansu CLI entry point.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/tansu/internal/cli"
	"github.com/hyperjump/tansu/internal/config"
	"github.com/hyperjump/tansu/internal/export"
	"github.com/hyperjump/tansu/internal/images"
	"github.com/hyperjump/tansu/internal/interpreter"
	"github.com/hyperjump/tansu/internal/inventory"
	"github.com/hyperjump/tansu/internal/models"
	"github.com/hyperjump/tansu/internal/search"
	"github.com/hyperjump/tansu/internal/server"
	"github.com/hyperjump/tansu/internal/storage"
	"github.com/hyperjump/tansu/internal/watcher"
	"github.com/hyperjump/tansu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/tansu/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "chat":
		runChat()
	case "ask":
		runAsk()
	case "server":
		runServer()
	case "add":
		runAdd()
	case "list":
		runList()
	case "move":
		runMove()
	case "delete":
		runDelete()
	case "stats":
		runStats()
	case "image":
		runImage()
	case "export":
		runExport()
	case "version", "--version", "-v":
		fmt.Printf("tansu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store       storage.Store
	Index       *search.ShirtIndex
	Inventory   *inventory.Service
	Knowledge   *interpreter.KnowledgeIndex
	Interpreter *interpreter.Interpreter
}

func (c *Components) Close() {
	if c.Inventory != nil {
		_ = c.Inventory.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	idx, err := search.NewShirtIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		// The store is the source of truth; keep working with a scan
		// fallback when the index cannot be opened.
		logger.Warn("search index unavailable, falling back to store scans",
			zap.String("path", cfg.Storage.BleveIndexPath), zap.Error(err))
		idx = nil
	}

	inv := inventory.NewService(store, idx, logger)
	if err := inv.RebuildIndex(context.Background()); err != nil {
		logger.Warn("search index rebuild failed", zap.Error(err))
	}

	knowledge := interpreter.NewKnowledgeIndex(cfg.Knowledge.Path, logger)
	interp := interpreter.New(inv, knowledge, interpreter.Options{
		ActionThreshold:    cfg.Interpreter.ActionThreshold,
		KnowledgeThreshold: cfg.Interpreter.KnowledgeThreshold,
	}, logger)

	return &Components{
		Store:       store,
		Index:       idx,
		Inventory:   inv,
		Knowledge:   knowledge,
		Interpreter: interp,
	}, nil
}

// setup is the shared flag/config/logger/component boilerplate for
// subcommands that work against local storage.
func setup(name string, args []string) (*Components, *config.Config, *zap.Logger) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	return components, cfg, logger
}

func runChat() {
	components, _, logger := setup("chat", os.Args[2:])
	defer components.Close()
	defer logger.Sync()

	fmt.Println(`👕 tansu shirt assistant. Type "help" for commands, "exit" to quit.`)
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		message := scanner.Text()
		fmt.Println(components.Interpreter.Process(ctx, message))
		if components.Interpreter.IsExit(message) {
			return
		}
	}
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: tansu ask <message>")
		os.Exit(1)
	}
	message := strings.TrimSpace(strings.Join(fs.Args(), " "))

	components, logger := openComponents(*configPath)
	defer components.Close()
	defer logger.Sync()

	fmt.Println(components.Interpreter.Process(context.Background(), message))
}

func runServer() {
	components, cfg, logger := setup("server", os.Args[2:])
	defer components.Close()
	defer logger.Sync()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Knowledge.WatchReload {
		w := watcher.NewKnowledgeWatcher(cfg.Knowledge.Path, func() {
			entries := components.Knowledge.Reload()
			logger.Info("knowledge reloaded", zap.Int("entries", entries))
		}, logger)
		if err := w.Start(watchCtx); err != nil {
			logger.Warn("knowledge watcher failed to start", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	srv := server.NewServer(components.Interpreter, components.Inventory, components.Knowledge, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	name := fs.String("name", "", "shirt name (default: \"<color> <size>\")")
	status := fs.String("status", "", "initial status (default: In Drawer)")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 2 {
		fmt.Println("Usage: tansu add [flags] <color> <size>")
		os.Exit(1)
	}

	components, logger := openComponents(*configPath)
	defer components.Close()
	defer logger.Sync()

	shirt, err := components.Inventory.CreateShirt(context.Background(), models.ShirtInput{
		Name:   *name,
		Color:  fs.Arg(0),
		Size:   fs.Arg(1),
		Status: *status,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Add failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added %q (ID: #%d, %s)\n", shirt.Name, shirt.ID, shirt.Status)
}

func runList() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	components, logger := openComponents(*configPath)
	defer components.Close()
	defer logger.Sync()

	shirts, err := components.Inventory.ListShirts(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "List failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteShirts(os.Stdout, shirts, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runMove() {
	fs := flag.NewFlagSet("move", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 2 {
		fmt.Println("Usage: tansu move <id> <status>")
		os.Exit(1)
	}
	id := parseID(fs.Arg(0))
	status := strings.Join(fs.Args()[1:], " ")

	components, logger := openComponents(*configPath)
	defer components.Close()
	defer logger.Sync()

	shirt, err := components.Inventory.UpdateStatus(context.Background(), id, status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Move failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Moved %q to %s\n", shirt.Name, shirt.Status)
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: tansu delete <id>")
		os.Exit(1)
	}
	id := parseID(fs.Arg(0))

	components, logger := openComponents(*configPath)
	defer components.Close()
	defer logger.Sync()

	if err := components.Inventory.DeleteShirt(context.Background(), id); err != nil {
		fmt.Fprintf(os.Stderr, "Delete failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted shirt #%d\n", id)
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	components, logger := openComponents(*configPath)
	defer components.Close()
	defer logger.Sync()

	stats, err := components.Inventory.Statistics(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Stats failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteStatistics(os.Stdout, stats, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runImage() {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 2 {
		fmt.Println("Usage: tansu image <id> <file>")
		os.Exit(1)
	}
	id := parseID(fs.Arg(0))
	srcPath := fs.Arg(1)

	fsCfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(fsCfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	components, err := initializeComponents(fsCfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	shirt, err := components.Inventory.GetShirt(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Shirt lookup failed: %v\n", err)
		os.Exit(1)
	}

	imageStore, err := images.NewStore(fsCfg.Storage.ImagesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Image store failed: %v\n", err)
		os.Exit(1)
	}
	stored, err := imageStore.Save(shirt.ID, srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Image save failed: %v\n", err)
		os.Exit(1)
	}
	if err := components.Inventory.SetImagePath(ctx, shirt.ID, stored); err != nil {
		_ = imageStore.Remove(stored)
		fmt.Fprintf(os.Stderr, "Image attach failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Attached image to %q: %s\n", shirt.Name, stored)
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outPath := fs.String("out", "inventory.xlsx", "output workbook path")
	_ = fs.Parse(os.Args[2:])

	components, logger := openComponents(*configPath)
	defer components.Close()
	defer logger.Sync()

	ctx := context.Background()
	shirts, err := components.Inventory.ListShirts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	stats, err := components.Inventory.Statistics(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	if err := export.WriteWorkbook(*outPath, shirts, stats); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d shirt(s) to %s\n", len(shirts), *outPath)
}

// openComponents is setup without a FlagSet, for subcommands that parse
// their own flags first.
func openComponents(configPath string) (*Components, *zap.Logger) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	return components, logger
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id < 1 {
		fmt.Fprintf(os.Stderr, "Invalid shirt id %q\n", arg)
		os.Exit(1)
	}
	return id
}

func printUsage() {
	fmt.Println(`tansu - conversational shirt inventory assistant

Usage:
  tansu chat [flags]                 Interactive chat session
  tansu ask [flags] <message>        Process one message and exit
  tansu server [flags]               Start the HTTP server
  tansu add [flags] <color> <size>   Add a shirt
  tansu list [flags]                 List all shirts
  tansu move <id> <status>           Move a shirt to a status
  tansu delete <id>                  Delete a shirt
  tansu stats [flags]                Show inventory statistics
  tansu image <id> <file>            Attach an image to a shirt
  tansu export [flags]               Export the inventory as xlsx
  tansu version                      Show version
  tansu help                         Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/tansu/config.yaml)

Server Flags:
  --debug            Enable debug logging (classification scores, reloads, etc.)

List / Stats Flags:
  --output string    Output format: text or json (default: text)

Add Flags:
  --name string      Shirt name (default: "<color> <size>")
  --status string    Initial status (default: In Drawer)

Export Flags:
  --out string       Output workbook path (default: inventory.xlsx)

Statuses: "In Drawer", "Laundry", "Worn"

Examples:
  tansu chat
  tansu ask "add a blue large shirt"
  tansu ask "move blue large to laundry"
  tansu add --status laundry red medium
  tansu move 3 worn
  tansu list --output json
  tansu export --out shirts.xlsx`)
}
