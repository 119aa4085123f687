package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailscan/internal/entitlement"
	"tailscan/internal/platform/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalizeCommand(t *testing.T) {
	out, err := run(t, "normalize", "n9305p", "cgwkq")
	require.NoError(t, err)
	assert.Equal(t, "N9305P\tUS\t9305P\nC-GWKQ\tCA\tC-GWKQ\n", out)
}

func TestNormalizeCommand_RejectsGarbage(t *testing.T) {
	_, err := run(t, "normalize", "???")
	require.Error(t, err)
}

func TestEntitlementIssue(t *testing.T) {
	t.Setenv("ENTITLEMENT_SIGNING_KEY", "cli-test-key")

	out, err := run(t, "entitlement", "issue", "--plan", "full", "--tail", "n904gs")
	require.NoError(t, err)

	cfg := config.FromEnv()
	claims, err := entitlement.NewTokenService(cfg.Entitlement.SigningKey, cfg.Entitlement.Issuer, cfg.Entitlement.Audience).
		Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, entitlement.Entitlement{
		PaymentStatus: entitlement.StatusPaid,
		Plan:          entitlement.PlanFull,
		TailNumber:    "N904GS",
	}, claims.Entitlement())
}

func TestMigrateWithoutDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, "migrate")
	require.ErrorIs(t, err, errNoDatabase)
}
