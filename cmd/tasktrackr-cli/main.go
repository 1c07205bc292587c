package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dmitrymomot/tasktrackr/core/config"
	"github.com/dmitrymomot/tasktrackr/pkg/authclient"
)

type cliConfig struct {
	ServerURL string        `env:"TASKTRACKR_URL" envDefault:"http://localhost:8081"`
	Timeout   time.Duration `env:"TASKTRACKR_TIMEOUT" envDefault:"10s"`
}

func main() {
	var cfg cliConfig
	config.MustLoad(&cfg)

	fs := flag.NewFlagSet("tasktrackr-cli", flag.ExitOnError)
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "tasktrackr API base URL")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	_ = fs.Parse(os.Args[1:])

	client, err := authclient.New(cfg.ServerURL, authclient.WithTimeout(cfg.Timeout))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in := bufio.NewReader(os.Stdin)
	sh := &shell{
		client:       client,
		in:           in,
		out:          os.Stdout,
		readPassword: passwordReader(in),
	}
	if err := sh.run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// passwordReader reads without echo on a terminal and falls back to a plain
// line read when stdin is piped.
func passwordReader(in *bufio.Reader) func() (string, error) {
	fd := int(os.Stdin.Fd())
	return func() (string, error) {
		if term.IsTerminal(fd) {
			b, err := term.ReadPassword(fd)
			fmt.Println()
			return string(b), err
		}
		line, err := in.ReadString('\n')
		return strings.TrimRight(line, "\r\n"), err
	}
}
