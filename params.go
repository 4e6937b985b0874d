package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	valid "github.com/asaskevich/govalidator"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openpetstore/petstore-contract-tests/client"
	"github.com/openpetstore/petstore-contract-tests/contract"
	"github.com/openpetstore/petstore-contract-tests/framework"
)

const (
	defaultBaseURL = "https://petstore.swagger.io/v2"

	envBaseURL = "PETSTORE_BASE_URL"
	envTimeout = "PETSTORE_TIMEOUT"
)

var errConfig = errors.New("invalid configuration")

// commandParams holds the settings for a run once flags, environment and config file have been
// combined.
type commandParams struct {
	configFile       string
	baseURL          string
	timeout          time.Duration
	categoryNames    []string
	categories       []contract.Category
	catalogFiles     []string
	reportFile       string
	rate             float64
	filters          framework.RegexFilters
	checkIdempotence bool
	debug            bool
	debugAll         bool
	noColor          bool
	list             bool
	watch            bool
}

func (c *commandParams) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "YAML file with default settings")
	fs.StringVar(&c.baseURL, "url", "", "base URL of the pet store service (default "+defaultBaseURL+")")
	fs.DurationVar(&c.timeout, "timeout", 0, "timeout for each request (default "+client.DefaultTimeout.String()+")")
	fs.StringSliceVar(&c.categoryNames, "category", nil, "only run scenarios in these categories (functional, negative, edge-case)")
	fs.StringArrayVar(&c.catalogFiles, "catalog", nil, "YAML file of additional scenarios (repeatable)")
	fs.StringVar(&c.reportFile, "report", "", "write a JSON report to this file")
	fs.Float64Var(&c.rate, "rate", 0, "maximum requests per second (0 for no limit)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.checkIdempotence, "check-idempotence", false, "repeat read-only requests and compare the answers")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&c.list, "list", false, "list the scenarios that would run, without running them")
	fs.BoolVar(&c.watch, "watch", false, "run again whenever a --catalog file changes")
}

// resolve fills in every setting not given on the command line, from the environment, then the
// config file, then defaults, and validates the result.
func (c *commandParams) resolve(cmd *cobra.Command, getenv func(string) string) error {
	flags := cmd.Flags()
	var fc fileConfig
	if c.configFile != "" {
		var err error
		if fc, err = loadConfig(c.configFile); err != nil {
			return err
		}
	}

	if !flags.Changed("url") {
		c.baseURL = firstNonEmpty(getenv(envBaseURL), fc.BaseURL, defaultBaseURL)
	}
	if !flags.Changed("timeout") {
		c.timeout = client.DefaultTimeout
		if fc.TimeoutMS > 0 {
			c.timeout = time.Duration(fc.TimeoutMS) * time.Millisecond
		}
		if s := getenv(envTimeout); s != "" {
			d, err := parseTimeout(s)
			if err != nil {
				return fmt.Errorf("%w: %s: %s", errConfig, envTimeout, err)
			}
			c.timeout = d
		}
	}
	if !flags.Changed("category") {
		c.categoryNames = fc.Categories
	}
	if !flags.Changed("catalog") {
		c.catalogFiles = fc.Catalogs
	}
	if !flags.Changed("report") {
		c.reportFile = fc.Report
	}
	if !flags.Changed("rate") {
		c.rate = fc.Rate
	}
	if !flags.Changed("check-idempotence") && fc.CheckIdempotence != nil {
		c.checkIdempotence = *fc.CheckIdempotence
	}

	if err := validateBaseURL(c.baseURL); err != nil {
		return err
	}
	if c.timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", errConfig)
	}
	if c.rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", errConfig)
	}
	if c.watch && len(c.catalogFiles) == 0 {
		return fmt.Errorf("%w: --watch requires at least one --catalog file", errConfig)
	}
	cats, err := contract.ParseCategories(c.categoryNames)
	if err != nil {
		return fmt.Errorf("%w: %s", errConfig, err)
	}
	c.categories = cats
	return nil
}

func validateBaseURL(s string) error {
	if !valid.IsURL(s) {
		return fmt.Errorf("%w: %q is not a valid base URL", errConfig, s)
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: base URL %q must be an absolute http or https URL", errConfig, s)
	}
	return nil
}

// parseTimeout accepts a duration such as "5s", or a plain number of milliseconds.
func parseTimeout(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *commandParams) categoryLabels() []string {
	var ret []string
	for _, cat := range c.categories {
		ret = append(ret, cat.String())
	}
	return ret
}
