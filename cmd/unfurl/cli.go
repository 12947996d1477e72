package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/unfurl-go/unfurl"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Service unfurl.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Get     GetCmd     `cmd:"" help:"Extract metadata for one or more URLs"`
	Version VersionCmd `cmd:"" help:"Print version"`

	Verbose bool `short:"v" help:"Log fetches and extractions to stderr"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URLs          []string `arg:"" help:"URLs to extract"`
	Concurrency   int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	RPS           float64  `name:"rps" default:"2" help:"Requests per second across the batch"`
	EagerFallback bool     `help:"Skip the local attempt on blocked fetches and call the remote fallback directly"`
	Pretty        bool     `short:"p" help:"Indent JSON output"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}

// errorLine is emitted for URLs whose extraction failed entirely, so a
// batch keeps one output line per input URL.
type errorLine struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Run extracts all URLs concurrently, bounded by the concurrency limit and
// the shared rate limiter, and writes one JSON value per URL in input
// order. Per-URL failures do not abort the batch.
func (c *GetCmd) Run(deps *Dependencies) error {
	limiter := rate.NewLimiter(rate.Limit(c.RPS), 1)

	type outcome struct {
		rec *unfurl.Record
		err error
	}
	results := make([]outcome, len(c.URLs))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, u := range c.URLs {
		i, u := i, u
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				results[i] = outcome{err: err}
				return nil
			}
			rec, err := deps.Service.Extract(ctx, u)
			results[i] = outcome{rec: rec, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failures := 0
	for i, res := range results {
		var v interface{} = res.rec
		if res.err != nil {
			failures++
			v = errorLine{URL: c.URLs[i], Error: unfurl.ErrorMessage(res.err)}
		}
		if err := c.writeJSON(deps.Stdout, v); err != nil {
			return err
		}
	}

	if failures == len(c.URLs) && failures > 0 {
		return fmt.Errorf("all %d extraction(s) failed", failures)
	}
	return nil
}

func (c *GetCmd) writeJSON(w io.Writer, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if c.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Run prints the version.
func (c *VersionCmd) Run(deps *Dependencies) error {
	_, err := fmt.Fprintln(deps.Stdout, "unfurl "+Version)
	return err
}
