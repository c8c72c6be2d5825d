package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/core"
	"github.com/tonionlabs/ledgerkit/pkg/sandbox"
)

func TestTraceStore_AppendLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	alice := ton.MustParseAccountID("0:1111111111111111111111111111111111111111111111111111111111111111")
	bob := ton.MustParseAccountID("0:2222222222222222222222222222222222222222222222222222222222222222")
	first := []sandbox.Transaction{
		{From: alice, To: bob, Op: "jetton_mint", Value: core.Nano(2), Success: true, Deploy: true},
		{From: bob, To: alice, Op: "excesses", Value: core.MilliNano(10), Success: true},
	}
	second := []sandbox.Transaction{
		{From: alice, To: bob, Op: "jetton_transfer", Value: core.Nano(1), ExitCode: core.ExitInsufficientBalance},
	}

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(first))
	require.NoError(t, s.Append(second))
	require.NoError(t, s.Close())

	// Reopen: appends from separate sessions read back as one ordered trace.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, append(first, second...), got)
}

func TestTraceStore_LoadEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, got)
}
