package main

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpetstore/petstore-contract-tests/client"
	"github.com/openpetstore/petstore-contract-tests/contract"
)

func envFrom(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func resolveParams(t *testing.T, env map[string]string, args ...string) (commandParams, error) {
	var p commandParams
	cmd := &cobra.Command{}
	p.addFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	err := p.resolve(cmd, envFrom(env))
	return p, err
}

func TestResolveDefaults(t *testing.T) {
	p, err := resolveParams(t, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, p.baseURL)
	assert.Equal(t, client.DefaultTimeout, p.timeout)
	assert.Len(t, p.categories, 0)
	assert.Equal(t, float64(0), p.rate)
}

func TestResolvePrecedence(t *testing.T) {
	config := writeFile(t, "config.yaml", `
base_url: http://config.example.com/v2
timeout_ms: 2000
categories: [negative]
rate: 3
check_idempotence: true
`)

	p, err := resolveParams(t, nil, "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "http://config.example.com/v2", p.baseURL)
	assert.Equal(t, 2*time.Second, p.timeout)
	assert.Equal(t, []contract.Category{contract.Negative}, p.categories)
	assert.Equal(t, float64(3), p.rate)
	assert.True(t, p.checkIdempotence)

	env := map[string]string{envBaseURL: "http://env.example.com/v2", envTimeout: "2500"}
	p, err = resolveParams(t, env, "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com/v2", p.baseURL)
	assert.Equal(t, 2500*time.Millisecond, p.timeout)

	p, err = resolveParams(t, env, "--config", config,
		"--url", "http://127.0.0.1:8080/v2", "--timeout", "1s", "--category", "functional,edge-case",
		"--check-idempotence=false")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/v2", p.baseURL)
	assert.Equal(t, time.Second, p.timeout)
	assert.Equal(t, []contract.Category{contract.Functional, contract.EdgeCase}, p.categories)
	assert.False(t, p.checkIdempotence)
}

func TestResolveEnvTimeoutFormats(t *testing.T) {
	p, err := resolveParams(t, map[string]string{envTimeout: "3s"})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, p.timeout)

	_, err = resolveParams(t, map[string]string{envTimeout: "soon"})
	assert.True(t, errors.Is(err, errConfig))
}

func TestResolveRejectsBadSettings(t *testing.T) {
	for name, args := range map[string][]string{
		"url without scheme":      {"--url", "petstore.swagger.io/v2"},
		"non-http scheme":         {"--url", "ftp://petstore.example.com/v2"},
		"unknown category":        {"--category", "happy-path"},
		"negative rate":           {"--rate", "-1"},
		"zero timeout":            {"--timeout", "0s"},
		"watch without a catalog": {"--watch"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := resolveParams(t, nil, args...)
			assert.True(t, errors.Is(err, errConfig), "%v", err)
		})
	}
}

func TestConfigFileErrors(t *testing.T) {
	_, err := resolveParams(t, nil, "--config", writeFile(t, "bad.yaml", "base_uri: http://x.example.com\n"))
	assert.True(t, errors.Is(err, errConfig))

	_, err = resolveParams(t, nil, "--config", "/no/such/file.yaml")
	assert.True(t, errors.Is(err, errConfig))

	p, err := resolveParams(t, nil, "--config", writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, p.baseURL)
}
