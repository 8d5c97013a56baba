package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/arena/internal/config"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/handler"
	gonet "github.com/l1jgo/arena/internal/net"
	"github.com/l1jgo/arena/internal/net/packet"
	"github.com/l1jgo/arena/internal/persist"
	"github.com/l1jgo/arena/internal/scripting"
	"github.com/l1jgo/arena/internal/spawn"
	"github.com/l1jgo/arena/internal/system"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             L1JGO Arena  v0.1.0           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        headless physics sandbox           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/arena.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Load data tables
	printSection("data")
	kinds, err := data.LoadKindTable(cfg.Data.Kinds)
	if err != nil {
		return fmt.Errorf("load kind table: %w", err)
	}
	printStat("spawn kinds", kinds.Count())

	arena, err := data.LoadArena(cfg.Data.Arena)
	if err != nil {
		return fmt.Errorf("load arena: %w", err)
	}
	printStat("arena blocks", len(arena.Blocks))
	printStat("arena props", len(arena.Props))

	// 4. Lua scripts
	var (
		damage   system.DamageCalculator
		resolver system.KindResolver
	)
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		damage, resolver = engine, engine
		printOK("Lua scripts loaded")
	}
	fmt.Println()

	// 5. Optional PostgreSQL combat log
	var (
		matches   *persist.MatchRepo
		combatLog system.CombatLogWriter = discardLog{}
		matchID   int64
	)
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")

		matches = persist.NewMatchRepo(db)
		combatLog = persist.NewCombatLogRepo(db)
		matchID, err = matches.Start(ctx, cfg.Server.Name, arena.Name)
		if err != nil {
			return err
		}
		printStat("match", int(matchID))
		fmt.Println()
	}

	// 6. Build the simulation
	store := ecs.NewStore(log)
	grid := world.NewGrid(cfg.Simulation.GridCellSize)
	bus := event.NewBus()
	input := world.NewInputState()
	controls := &world.Controls{Camera: world.Camera{Sensitivity: cfg.Simulation.MouseSensitivity}}
	queue := spawn.NewQueue()
	factory := spawn.NewFactory(store, kinds)

	player, err := factory.SpawnArena(arena)
	if err != nil {
		return fmt.Errorf("spawn arena: %w", err)
	}

	system.NewActionHandler(bus, store, controls, queue, resolver, player.ID(), log)
	collision := system.NewCollisionSystem(store, grid, bus, damage, cfg.Simulation.CombustionDamage, log)
	persistSys := system.NewPersistenceSystem(bus, combatLog, matchID, log, cfg.Database.FlushInterval)

	// 7. Optional remote clients
	presenter := system.Presenters{&logPresenter{log: log}}
	var hub *gonet.Hub
	if cfg.Network.Enabled {
		printSection("network")
		netServer, err := gonet.NewServer(cfg.Network.BindAddress, gonet.SessionConfig{
			InQueueSize:      cfg.Network.InQueueSize,
			OutQueueSize:     cfg.Network.OutQueueSize,
			MaxPacketsPerSec: cfg.Network.MaxPacketsPerSec,
		}, log)
		if err != nil {
			return fmt.Errorf("network: %w", err)
		}
		go netServer.AcceptLoop()
		hub = gonet.NewHub(netServer, log)
		presenter = append(presenter, hub)
		printReady(fmt.Sprintf("listening on %s", netServer.Addr()))
		fmt.Println()
	}

	runner := coresys.NewRunner()
	runner.Register(system.NewFlushSystem(store))
	if hub != nil {
		reg := packet.NewRegistry(log)
		handler.RegisterAll(reg, &handler.Deps{Input: input, Hub: hub, TickRate: cfg.Simulation.TickRate, Log: log})
		runner.Register(system.NewNetInputSystem(hub, reg, cfg.Network.MaxPacketsPerTick, log))
	}
	runner.Register(system.NewInputSystem(input, controls, bus, log))
	runner.Register(system.NewDispatchSystem(bus))
	runner.Register(system.NewSpawnSystem(queue, factory, log))
	runner.Register(system.NewMovementSystem(store, controls, cfg.Simulation.MoveSpeed, cfg.Simulation.JumpStrength))
	runner.Register(system.NewGravitySystem(store, cfg.Simulation.Gravity))
	runner.Register(collision)
	runner.Register(system.NewLifespanSystem(store, bus))
	runner.Register(system.NewPresentSystem(store, presenter))
	if hub != nil {
		runner.Register(system.NewNetOutputSystem(hub))
	}
	runner.Register(persistSys)
	runner.Register(system.NewStatsSystem(store, grid, collision, log, cfg.Simulation.StatsInterval))

	go readConsole(os.Stdin, input, log)

	// 8. Start simulation loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("arena %q", arena.Name))
	printReady(fmt.Sprintf("simulation loop running (tick: %s)", cfg.Simulation.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			shutdown(persistSys, matches, matchID, runner.Ticks(), log)
			if hub != nil {
				hub.Shutdown()
			}
			log.Info("arena stopped", zap.Uint64("ticks", runner.Ticks()))
			return nil
		}
	}
}

// shutdown flushes the buffered combat log and closes the match record.
func shutdown(persistSys *system.PersistenceSystem, matches *persist.MatchRepo, matchID int64, ticks uint64, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := persistSys.Flush(ctx); err != nil {
		log.Error("final combat log flush failed", zap.Error(err))
	}
	if matches == nil {
		return
	}
	if err := matches.Finish(ctx, matchID, ticks); err != nil {
		log.Error("finish match failed", zap.Int64("match", matchID), zap.Error(err))
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
