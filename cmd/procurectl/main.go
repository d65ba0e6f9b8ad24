package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/procuredesk/cmd/procurectl/cli"
	"github.com/odyssey-erp/procuredesk/internal/app"
	"github.com/odyssey-erp/procuredesk/jobs"
)

const usage = `usage:
  procurectl jobs warmup [--kinds departments,users] [--json]
  procurectl jobs stats [--json]
  procurectl jobs scheduled [--size 10] [--json]
  procurectl chain progress --uuid <chain> [--variant dashboard|pipeline] [--json]`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	switch args[0] + " " + args[1] {
	case "jobs warmup", "jobs stats", "jobs scheduled":
		return runJobs(ctx, cfg, args[1], args[2:])
	case "chain progress":
		return runChainProgress(ctx, cfg, args[2:])
	}
	fmt.Fprintln(os.Stderr, usage)
	return 2
}

func runJobs(ctx context.Context, cfg *app.Config, command string, args []string) int {
	fs := flag.NewFlagSet("jobs "+command, flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print JSON")
	kinds := fs.String("kinds", "", "comma separated lookup kinds")
	size := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	client := jobs.NewClient(redisOpts)
	defer client.Close()
	inspector := asynq.NewInspector(redisOpts)
	defer inspector.Close()

	jobsCLI := cli.NewJobsCLI(client, inspector)
	out := cli.Output{JSON: *asJSON}
	switch command {
	case "warmup":
		var names []string
		if *kinds != "" {
			names = strings.Split(*kinds, ",")
		}
		return jobsCLI.WarmupCommand(ctx, cli.WarmupOptions{Output: out, Kinds: names})
	case "stats":
		return jobsCLI.StatsCommand(out)
	default:
		return jobsCLI.ScheduledCommand(out, *size)
	}
}

func runChainProgress(ctx context.Context, cfg *app.Config, args []string) int {
	fs := flag.NewFlagSet("chain progress", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print JSON")
	chainUUID := fs.String("uuid", "", "chain UUID")
	variant := fs.String("variant", "", "stage set: dashboard or pipeline")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	clients, err := app.NewClients(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chain progress: %v\n", err)
		return 1
	}
	return cli.NewChainCLI(clients.Chains).ProgressCommand(ctx, cli.ProgressOptions{
		Output:  cli.Output{JSON: *asJSON},
		UUID:    *chainUUID,
		Variant: *variant,
	})
}
