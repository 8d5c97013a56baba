// arenabench drives the simulation pipeline without a clock and reports
// per-tick cost.
//
// Usage:
//
//	go run ./cmd/arenabench [-ticks n] [-crates n] [-fire n] [-profile cpu|mem] [-out dir]
//
// Profiling:
//
//	go tool pprof -http=":8000" ./arenabench cpu.pprof
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/spawn"
	"github.com/l1jgo/arena/internal/system"
	"github.com/l1jgo/arena/internal/world"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

const tick = 16 * time.Millisecond

func main() {
	ticks := flag.Int("ticks", 3000, "ticks to simulate")
	crates := flag.Int("crates", 500, "crates dropped into the arena")
	fire := flag.Int("fire", 4, "projectiles fired per tick")
	mode := flag.String("profile", "", "cpu or mem")
	out := flag.String("out", ".", "profile output directory")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*out), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(*out), profile.NoShutdownHook).Stop()
	case "":
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *mode)
		os.Exit(2)
	}

	res, err := bench(*ticks, *crates, *fire, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	res.print()
}

type result struct {
	ticks    []time.Duration
	entities int
	contacts int
	combust  int
}

func bench(ticks, crates, fire int, rng *rand.Rand) (*result, error) {
	log := zap.NewNop()
	kinds, err := data.LoadKindTable("")
	if err != nil {
		return nil, err
	}
	arena, err := data.LoadArena("")
	if err != nil {
		return nil, err
	}

	store := ecs.NewStore(log)
	grid := world.NewGrid(4)
	bus := event.NewBus()
	input := world.NewInputState()
	controls := &world.Controls{Camera: world.Camera{Sensitivity: 0.002}}
	queue := spawn.NewQueue()
	factory := spawn.NewFactory(store, kinds)

	player, err := factory.SpawnArena(arena)
	if err != nil {
		return nil, err
	}
	for i := 0; i < crates; i++ {
		queue.Push(spawn.Request{
			Kind:   "crate",
			Origin: mgl64.Vec3{rng.Float64()*16 - 8, 2 + rng.Float64()*20, rng.Float64()*16 - 8},
		})
	}

	system.NewActionHandler(bus, store, controls, queue, nil, player.ID(), log)
	collision := system.NewCollisionSystem(store, grid, bus, nil, 30, log)

	runner := coresys.NewRunner()
	runner.Register(system.NewFlushSystem(store))
	runner.Register(system.NewInputSystem(input, controls, bus, log))
	runner.Register(system.NewDispatchSystem(bus))
	runner.Register(system.NewSpawnSystem(queue, factory, log))
	runner.Register(system.NewMovementSystem(store, controls, 6, 8))
	runner.Register(system.NewGravitySystem(store, 20))
	runner.Register(collision)
	runner.Register(system.NewLifespanSystem(store, bus))

	res := &result{ticks: make([]time.Duration, 0, ticks)}
	for i := 0; i < ticks; i++ {
		input.AddPointerDelta(rng.Float64()*20-10, 0)
		for j := 0; j < fire; j++ {
			input.PushAction(event.Action{Name: world.ActionAttack, Phase: event.ActionStart})
		}
		start := time.Now()
		runner.Tick(tick)
		res.ticks = append(res.ticks, time.Since(start))

		st := collision.Stats()
		res.contacts += st.Contacts
		res.combust += st.Combusted
	}
	res.entities = store.Len()
	return res, nil
}

func (r *result) print() {
	if len(r.ticks) == 0 {
		return
	}
	sorted := append([]time.Duration(nil), r.ticks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	pct := func(p float64) time.Duration { return sorted[int(p*float64(len(sorted)-1))] }

	fmt.Printf("ticks      %d\n", len(sorted))
	fmt.Printf("entities   %d (final)\n", r.entities)
	fmt.Printf("contacts   %d\n", r.contacts)
	fmt.Printf("combusted  %d\n", r.combust)
	fmt.Printf("mean       %s\n", total/time.Duration(len(sorted)))
	fmt.Printf("p50        %s\n", pct(0.50))
	fmt.Printf("p99        %s\n", pct(0.99))
	fmt.Printf("max        %s\n", sorted[len(sorted)-1])
}
