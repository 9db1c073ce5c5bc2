package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/cli"
	"github.com/warp/shift-engine/engine"
	"github.com/warp/shift-engine/engine/store"
)

var fixedNow = time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

func testApp(t *testing.T) (*cli.App, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	h := api.NewHandler(mem, zerolog.Nop())

	now := func() time.Time { return fixedNow }
	h.Now = now
	h.Shifts.Now = now
	h.Gate.Now = now
	h.Achievements.Now = now

	n := 0
	seq := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	h.NewID = seq
	h.Shifts.NewID = seq

	sweeper := api.NewMissedShiftSweeper(mem, h.Shifts, zerolog.Nop())
	sweeper.Now = now

	return cli.NewApp(h, sweeper), mem
}

func executeCmd(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- scenario ---

func TestScenarioList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "scenario", "list")
	require.NoError(t, err)
	for _, id := range []string{"new-server", "busy-week", "tip-master", "missed-shifts"} {
		assert.Contains(t, out, id)
	}
}

func TestScenarioLoad_RequiresUser(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "scenario", "load", "tip-master")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")
}

func TestScenarioLoad_UnknownScenario(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "scenario", "load", "nope", "--user", "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

// --- sweep ---

func TestSweep_MarksPastShifts(t *testing.T) {
	// GIVEN: two past shifts without outcomes
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "scenario", "load", "missed-shifts", "--user", "u1")
	require.NoError(t, err)

	// WHEN: sweeping twice
	out, err := executeCmd(t, app, "sweep")
	require.NoError(t, err)
	again, err := executeCmd(t, app, "sweep")
	require.NoError(t, err)

	// THEN: the first pass marks both, the second marks none
	assert.Contains(t, out, "Swept 1 user for 2024-03-06: 2 shifts marked missed")
	assert.Contains(t, again, "0 shifts marked missed")
}

// --- stats ---

func TestStats_DefaultsToCurrentMonth(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "scenario", "load", "tip-master", "--user", "u1")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "stats", "--user", "u1", "--compare")
	require.NoError(t, err)

	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "2024-03-31")
	assert.Contains(t, out, "5 worked")
	assert.Contains(t, out, "vs ")
}

func TestStats_InvertedWindow(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "stats", "--user", "u1", "--from", "2024-03-10", "--to", "2024-03-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

// --- usage ---

func TestUsage_PartTimeCap(t *testing.T) {
	app, mem := testApp(t)
	require.NoError(t, mem.SaveSubscription(context.Background(), engine.Subscription{
		UserID: "u1", Tier: engine.TierPartTime, Status: engine.SubscriptionActive,
	}))

	out, err := executeCmd(t, app, "usage", "--user", "u1", "--today", "2024-03-06")
	require.NoError(t, err)

	assert.Contains(t, out, "parttime")
	assert.Contains(t, out, "0 / 3")
}

func TestUsage_NoSubscription(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "usage", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "0 / unlimited")
}

// --- achievements ---

func TestAchievements_EvaluateAfterScenario(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "scenario", "load", "tip-master", "--user", "u1")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "achievements", "--user", "u1", "--evaluate")
	require.NoError(t, err)

	// The scenario load already ran a pass, so nothing new unlocks.
	assert.NotContains(t, out, "Unlocked ")
	assert.Contains(t, out, "tip_master")
	assert.Contains(t, out, "steady_tracker")
}
