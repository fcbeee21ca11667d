package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stripedb "github.com/bayanlab/bayanlab-commerce/api/services/stripe/db"
)

func TestCatalogCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog"})
	require.NoError(t, cmd.Execute())

	s := out.String()
	assert.Contains(t, s, "developer")
	assert.Contains(t, s, "$99")
	assert.Contains(t, s, "complete")
	assert.Contains(t, s, "$249")
	assert.Contains(t, s, "/v1/halal-eateries")
}

func TestRootCommand_RejectsUnknown(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"nope"})
	assert.Error(t, cmd.Execute())
}

func TestPrintDeliveries(t *testing.T) {
	var out bytes.Buffer
	printDeliveries(&out, nil)
	assert.Equal(t, "No deliveries recorded.\n", out.String())

	out.Reset()
	printDeliveries(&out, []stripedb.Delivery{{
		EventID:    "evt_1",
		EventType:  "checkout.session.completed",
		Outcome:    "provisioned",
		ReceivedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	assert.Contains(t, out.String(), "2026-01-02T03:04:05Z")
	assert.Contains(t, out.String(), "evt_1")
	assert.Contains(t, out.String(), "provisioned")
}

func TestPrintEventCount(t *testing.T) {
	var out bytes.Buffer
	printEventCount(&out, "evt_1", 0)
	printEventCount(&out, "evt_2", 1)
	printEventCount(&out, "evt_3", 2)

	lines := out.String()
	assert.Contains(t, lines, "evt_1: no deliveries recorded\n")
	assert.Contains(t, lines, "evt_2: delivered once\n")
	assert.Contains(t, lines, "evt_3: delivered 2 times")
}

func TestDeliveriesCommand_HasEventFlag(t *testing.T) {
	cmd := deliveriesCmd()
	f := cmd.Flags().Lookup("event")
	require.NotNil(t, f)
	assert.Equal(t, "", f.DefValue)
}
