package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/unfurl-go/unfurl"
	"github.com/unfurl-go/unfurl/extract"
	ungoquery "github.com/unfurl-go/unfurl/goquery"
	uhttp "github.com/unfurl-go/unfurl/http"
	unslog "github.com/unfurl-go/unfurl/slog"
)

// Version is the CLI version reported by the version subcommand.
const Version = "0.2.0"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("unfurl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'unfurl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if strings.HasPrefix(kongCtx.Command(), "get") {
		deps.Service = m.buildService(stderr, cli)
	}

	return kongCtx.Run(deps)
}

// buildService wires the orchestrator: browser fetcher, HTML extractors,
// vendor API clients, and the remote rendering fallback.
func (m *Main) buildService(stderr io.Writer, cli *CLI) unfurl.Service {
	var fetcher unfurl.Fetcher = uhttp.NewFetcher()
	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
		fetcher = unslog.NewLoggingFetcher(fetcher, logger)
	}

	var service unfurl.Service = &extract.Service{
		Fetcher:       fetcher,
		Generic:       ungoquery.NewReader(),
		Amazon:        ungoquery.NewAmazonExtractor(),
		Packt:         ungoquery.NewPacktExtractor(),
		Twitter:       uhttp.NewTwitterClient(),
		YouTube:       uhttp.NewYouTubeClient(),
		Fallback:      uhttp.NewMicrolinkClient(),
		EagerFallback: cli.Get.EagerFallback,
	}
	if logger != nil {
		service = unslog.NewLoggingService(service, logger)
	}
	return service
}
