package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestNewDemoPoolSharesKillSwitch(t *testing.T) {
	pool := newDemoPool(3, 4, 0)
	require.Equal(t, 3, pool.Size())

	pool.Kill()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := joinAndReport(cmd, pool)
	require.NoError(t, err)

	require.Equal(t, pool.Size(), strings.Count(buf.String(), "exited killed"))
}

func TestNewDemoPoolDefaultsCountToOne(t *testing.T) {
	pool := newDemoPool(0, 4, 0)
	require.Equal(t, 1, pool.Size())
	pool.Kill()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, joinAndReport(cmd, pool))
}
