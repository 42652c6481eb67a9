package build

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

func TestFanoutHandlerDuplicatesRecords(t *testing.T) {
	var console, file bytes.Buffer
	handler := NewConsoleFileHandler(&console, &file)

	logger := btclogv2.NewSLogger(handler)
	logger.Infof("fan-out check %d", 7)

	require.Contains(t, console.String(), "fan-out check 7")
	require.Contains(t, file.String(), "fan-out check 7")
}

func TestFanoutHandlerConsoleOnlyWithoutFile(t *testing.T) {
	var console bytes.Buffer
	handler := NewConsoleFileHandler(&console, nil)

	logger := btclogv2.NewSLogger(handler)
	logger.Info("console only")

	require.Contains(t, console.String(), "console only")
}

func TestFanoutHandlerSetLevelFiltersRecords(t *testing.T) {
	var console bytes.Buffer
	handler := NewConsoleFileHandler(&console, nil)
	handler.SetLevel(btclog.LevelWarn)
	require.Equal(t, btclog.LevelWarn, handler.Level())

	logger := btclogv2.NewSLogger(handler)
	logger.Debug("below the gate")
	logger.Error("above the gate")

	require.NotContains(t, console.String(), "below the gate")
	require.Contains(t, console.String(), "above the gate")
}

func TestRotatingWriterCreatesLogFile(t *testing.T) {
	dir := t.TempDir()

	w, err := NewRotatingWriter(RotatorOptions{Dir: dir, Name: "rotate-check"})
	require.NoError(t, err)

	_, err = w.Write([]byte("one line of log output\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// The rotator drains the pipe asynchronously; the file shows up
	// shortly after Close.
	logFile := filepath.Join(dir, "rotate-check.log")
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logFile)
		return err == nil && bytes.Contains(data, []byte("one line"))
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRotatingWriterDefaultsName(t *testing.T) {
	dir := t.TempDir()

	w, err := NewRotatingWriter(RotatorOptions{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "actorcore.log"))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}
