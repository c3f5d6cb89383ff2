package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicletax/internal/stubcalc"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(stubcalc.NewRouter(stubcalc.Config{}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("VTAX_ENDPOINT", srv.URL+stubcalc.CalculatePath)
	t.Setenv("VTAX_STATE_FILE", filepath.Join(dir, "state.json"))
	t.Setenv("VTAX_LOCALE", "en")
	t.Setenv("VTAX_LOG_LEVEL", "error")
	return dir
}

func TestCLICalculatesAndPrints(t *testing.T) {
	dir := setupEnv(t)
	printPath := filepath.Join(dir, "result.html")

	out, _, err := runCLI(t,
		"--reg-type", "private",
		"--category", "motorcycle",
		"--cc-power", "100",
		"--last-paid-date", "20790401",
		"--next-payment-date", "2080-04-01",
		"--print", printPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Tax Calculation Results")
	assert.Contains(t, out, "2079/80")
	assert.Contains(t, out, "Grand Total      : Rs. 3,300.00")

	html, err := os.ReadFile(printPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Vehicle Tax Calculation Results")
}

func TestCLIRestoresSavedValues(t *testing.T) {
	setupEnv(t)

	_, _, err := runCLI(t,
		"--reg-type", "private",
		"--category", "tractor",
		"--last-paid-date", "2079-04-01",
		"--next-payment-date", "2080-04-01",
	)
	require.NoError(t, err)

	// Второй запуск использует сохранённые значения
	out, _, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Tractor")

	_, _, err = runCLI(t, "--reset")
	require.NoError(t, err)

	_, stderr, err := runCLI(t)
	require.Error(t, err)
	assert.Contains(t, stderr, "Please fill all required fields correctly.")
}

func TestCLIWritesMetrics(t *testing.T) {
	dir := setupEnv(t)
	metricsPath := filepath.Join(dir, "metrics.prom")

	_, _, err := runCLI(t,
		"--reg-type", "private",
		"--category", "tractor",
		"--last-paid-date", "2079-04-01",
		"--next-payment-date", "2080-04-01",
		"--metrics", metricsPath,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `vehicletax_submissions_total{outcome="success"} 1`)

	_, _, err = runCLI(t, "--reset")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--category", "car", "--metrics", "-")
	require.Error(t, err)
	assert.Contains(t, out, `vehicletax_submissions_rejected_total{reason="invalid"} 1`)
	assert.Contains(t, out, `vehicletax_validation_failures_total{field="cc_power"} 1`)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "next-payment-date", flagName("next_payment_date"))
	assert.Equal(t, "category", flagName("category"))
}
