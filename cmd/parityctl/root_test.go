package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/parity/log"
)

func TestExitCodeForUsageErrIsOne(t *testing.T) {
	assert.Equal(t, 1, exitCodeFor(usageErrorf("bad flag")))
}

func TestExitCodeForOtherErrIsTwo(t *testing.T) {
	assert.Equal(t, 2, exitCodeFor(errors.New("boom")))
}

func TestBuildTableRejectsNonPositiveNodes(t *testing.T) {
	opts := &rootOptions{nodes: 0, seed: 1, dim: 8}
	_, err := buildTable(opts, log.NewNoOpLogger())
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeFor(err))
}

func TestBuildTableIsDeterministicGivenSeed(t *testing.T) {
	opts := &rootOptions{nodes: 6, seed: 42, dim: 8}
	logger := log.NewNoOpLogger()

	a, err := buildTable(opts, logger)
	require.NoError(t, err)
	defer a.Shutdown()
	b, err := buildTable(opts, logger)
	require.NoError(t, err)
	defer b.Shutdown()

	na, err := a.NodeAt(0)
	require.NoError(t, err)
	nb, err := b.NodeAt(0)
	require.NoError(t, err)
	assert.Equal(t, na.Vector, nb.Vector)
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInjectVecThenFindNearestEndToEnd(t *testing.T) {
	out, err := runCmd(t, "--nodes", "6", "--seed", "7", "injectvec", "0", "1", "0", "0", "0", "0", "0", "0", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "injected vector into node 0")

	out, err = runCmd(t, "--nodes", "6", "--seed", "7", "findnearest", "0", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Node")
	assert.Contains(t, out, "Similarity")
}

func TestFindNearestRejectsBadKArgument(t *testing.T) {
	_, err := runCmd(t, "--nodes", "6", "--seed", "7", "findnearest", "0", "not-a-number")
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeFor(err))
}

func TestFindNearestRejectsWrongArgCount(t *testing.T) {
	_, err := runCmd(t, "--nodes", "6", "--seed", "7", "findnearest", "0")
	require.Error(t, err)
}

func TestAnnounceThenDistributeEndToEnd(t *testing.T) {
	out, err := runCmd(t, "--nodes", "6", "--seed", "7", "announce", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "node 0 announced")

	out, err = runCmd(t, "--nodes", "6", "--seed", "7", "distribute", "hot-shard")
	require.NoError(t, err)
	assert.Contains(t, out, "distributed tag \"hot-shard\"")
}

func TestRootRejectsNonPositiveNodes(t *testing.T) {
	_, err := runCmd(t, "--nodes", "0", "announce", "0")
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeFor(err))
}
