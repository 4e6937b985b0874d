package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openpetstore/petstore-contract-tests/client"
	"github.com/openpetstore/petstore-contract-tests/contract"
	"github.com/openpetstore/petstore-contract-tests/framework"
	"github.com/openpetstore/petstore-contract-tests/petstore"
	"github.com/openpetstore/petstore-contract-tests/report"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitFatal  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	var params commandParams
	code := exitOK
	cmd := &cobra.Command{
		Use:           "petstore-contract-tests",
		Short:         "Checks that a pet store service conforms to its documented HTTP contract",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.resolve(cmd, getenv); err != nil {
				return err
			}
			var err error
			code, err = runCommand(cmd.Context(), params, stdout)
			return err
		},
	}
	params.addFlags(cmd.Flags())
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, c.UsageString())
	})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitFatal
	}
	return code
}

func runCommand(ctx context.Context, params commandParams, stdout io.Writer) (int, error) {
	if params.noColor {
		color.NoColor = true
	}
	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(stdout, "", log.LstdFlags)
	}

	catalog, err := loadCatalog(params, mainDebugLogger)
	if err != nil {
		return exitFatal, err
	}
	executor := client.NewExecutor(client.Options{
		BaseURL:           params.baseURL,
		Timeout:           params.timeout,
		RequestsPerSecond: params.rate,
	})

	if params.list {
		return exitOK, listCatalog(stdout, catalog, executor, params.filters)
	}

	fmt.Fprintln(stdout)
	framework.PrintFilterDescription(stdout, params.filters, params.categoryLabels())

	code, err := runTestSuite(ctx, params, catalog, executor, stdout)
	if err != nil || !params.watch {
		return code, err
	}

	watcher, err := newCatalogWatcher(params.catalogFiles, mainDebugLogger)
	if err != nil {
		return exitFatal, err
	}
	fmt.Fprintln(stdout, "Watching catalog files for changes; press Ctrl-C to stop")
	err = watcher.Run(ctx, func() {
		updated, err := loadCatalog(params, mainDebugLogger)
		if err != nil {
			fmt.Fprintf(stdout, "Not running: %s\n", err)
			return
		}
		code, err = runTestSuite(ctx, params, updated, executor, stdout)
		if err != nil {
			fmt.Fprintf(stdout, "Error: %s\n", err)
		}
	})
	return code, err
}

// loadCatalog merges the built-in scenarios with any catalog files, validates the whole, and
// applies the category filter.
func loadCatalog(params commandParams, logger framework.Logger) (contract.Catalog, error) {
	catalog := petstore.Catalog()
	for _, path := range params.catalogFiles {
		more, err := contract.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Printf("Loaded %d scenarios from %s", len(more), path)
		catalog = append(catalog, more...)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog.Filter(params.categories...), nil
}

func runTestSuite(
	ctx context.Context,
	params commandParams,
	catalog contract.Catalog,
	executor *client.Executor,
	stdout io.Writer,
) (int, error) {
	fmt.Fprintf(stdout, "Running %d scenarios against %s\n", len(catalog), executor.BaseURL())

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
		Out:                  stdout,
	}
	collector := report.NewCollector()
	config := petstore.SuiteConfig{
		Executor:         executor,
		CheckIdempotence: params.checkIdempotence,
		OnVerdict:        collector.OnVerdict,
	}

	results := petstore.RunTestSuite(ctx, catalog, config, params.filters.AsFilter, testLogger)
	cancelled := ctx.Err() != nil

	fmt.Fprintln(stdout)
	if !cancelled || !results.OK() {
		framework.PrintResults(stdout, results)
	}
	if cancelled {
		fmt.Fprintf(stdout, "Test run was cancelled before it finished (%s)\n", results.Summary())
	}

	if params.reportFile != "" {
		if err := collector.Build(executor.BaseURL(), results).WriteFile(params.reportFile); err != nil {
			return exitFatal, err
		}
		fmt.Fprintf(stdout, "Report written to %s\n", params.reportFile)
	}
	if cancelled || !results.OK() {
		return exitFailed, nil
	}
	return exitOK, nil
}

// listCatalog prints each scenario that the filters select, with a command that reproduces its
// request.
func listCatalog(out io.Writer, catalog contract.Catalog, executor *client.Executor, filters framework.RegexFilters) error {
	for _, g := range catalog.Groups() {
		for _, cg := range g.Categories {
			for _, s := range cg.Scenarios {
				id := framework.TestID{Path: []string{g.Endpoint.String(), cg.Category.Label(), s.Description}}
				if !filters.AsFilter(id) {
					continue
				}
				r, err := executor.Request(s)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "[%s]\n  expect %d\n  %s\n", id, s.ExpectedStatus, r.CurlCommand())
			}
		}
	}
	return nil
}
