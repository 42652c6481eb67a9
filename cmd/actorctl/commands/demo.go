package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/archon-search/actorcore/internal/actorutil"
	"github.com/archon-search/actorcore/internal/baselib/actor"
	"github.com/archon-search/actorcore/internal/demoactor"
	"github.com/archon-search/actorcore/internal/metrics"
)

var (
	demoCount     int
	demoCapacity  int
	demoFailAfter int

	// demoSpawnOpts carries the loaded config's per-actor timing
	// overrides into every pool member; set by loadConfigAndLogger.
	demoSpawnOpts []actor.SpawnOption
)

// demoCmd spawns demoCount FailingCounter actors sharing one KillSwitch via
// actorutil.Pool, then drops into a small stdin REPL ("status", "send <n>",
// "kill", "quit", "exit") driving the pool's Handles.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Spawn a pool of demo actors and drive them interactively",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&demoCount, "count", 3, "number of actors to spawn")
	demoCmd.Flags().IntVar(&demoCapacity, "capacity", 8, "per-actor mailbox capacity")
	demoCmd.Flags().IntVar(&demoFailAfter, "fail-after", 0,
		"number of messages each actor processes before failing (0 disables)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	pool := newDemoPool(demoCount, demoCapacity, demoFailAfter)

	fmt.Fprintf(cmd.OutOrStdout(), "spawned %d actors sharing one kill switch\n", pool.Size())
	fmt.Fprintln(cmd.OutOrStdout(), "commands: status | send <n> | kill | quit | exit")

	printStatus(cmd, pool)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "status":
			printStatus(cmd, pool)

		case "send":
			if len(fields) != 2 {
				fmt.Fprintln(cmd.OutOrStdout(), "usage: send <n>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "bad message %q: %v\n", fields[1], err)
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			err = pool.Send(ctx, n)
			cancel()
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "send failed: %v\n", err)
			}

		case "kill":
			pool.Kill()
			fmt.Fprintln(cmd.OutOrStdout(), "kill switch tripped")

		case "quit":
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			for _, h := range pool.Handles() {
				_ = h.Quit(ctx)
			}
			cancel()

		case "exit":
			return joinAndReport(cmd, pool)

		default:
			fmt.Fprintf(cmd.OutOrStdout(), "unknown command %q\n", fields[0])
		}
	}

	return joinAndReport(cmd, pool)
}

// newDemoPool spawns count FailingCounter actors, each uuid-named, sharing
// one KillSwitch. Split out of runDemo so the CLI's spawn/kill/join wiring
// is testable without driving the stdin REPL.
func newDemoPool(count, capacity, failAfter int) *actorutil.Pool[int, demoactor.CounterState] {
	if count <= 0 {
		count = 1
	}

	pool := actorutil.NewPool(actorutil.PoolConfig[int, demoactor.CounterState]{
		ID:   "demo",
		Size: count,
		Factory: func(idx int) actor.Actor[int, demoactor.CounterState] {
			name := fmt.Sprintf("demo-%s", uuid.NewString()[:8])
			return demoactor.NewFailingCounter(name, capacity, failAfter)
		},
		SpawnOpts: demoSpawnOpts,
	})

	// Mirror each actor's progress beacon into a gauge on the process-wide
	// metrics registry, so liveness shows up alongside the rest of the
	// supervisor-facing counters.
	for _, h := range pool.Handles() {
		gauge := metrics.NewGauge(
			fmt.Sprintf("actor:%s:progress", h.Name()),
			"Liveness tick count for this actor",
		)
		h.Progress().Attach(gauge)
	}

	return pool
}

func printStatus(cmd *cobra.Command, pool *actorutil.Pool[int, demoactor.CounterState]) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"name", "processed"})

	for i, h := range pool.Handles() {
		state := h.Observe()
		table.Append([]string{
			fmt.Sprintf("%s[%d]", pool.ID(), i),
			strconv.Itoa(state.Processed),
		})
	}

	table.Render()
}

func joinAndReport(cmd *cobra.Command, pool *actorutil.Pool[int, demoactor.CounterState]) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results := actorutil.JoinAll(ctx, pool.Handles())
	for i, res := range results {
		status, err := res.Unpack()
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "demo-%d: join error: %v\n", i, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "demo-%d: exited %s\n", i, status.Kind())
	}

	return nil
}
