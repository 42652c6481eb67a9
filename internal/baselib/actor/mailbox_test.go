package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMailbox_SendRecvTimeoutRunning(t *testing.T) {
	mb, inbox := NewMailbox[int]("m", 4)
	defer mb.Close()

	require.NoError(t, mb.Send(context.Background(), 42))

	item, err := inbox.RecvTimeout(true)
	require.NoError(t, err)
	require.False(t, item.IsCommand)
	require.Equal(t, 42, item.Msg)
}

func TestMailbox_RecvTimeoutErrTimeoutWhenEmpty(t *testing.T) {
	mb, inbox := NewMailbox[int]("m", 4)
	defer mb.Close()

	_, err := inbox.RecvTimeout(true)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestMailbox_CommandTakesPriorityOverMessage(t *testing.T) {
	mb, inbox := NewMailbox[int]("m", 4)
	defer mb.Close()

	require.NoError(t, mb.Send(context.Background(), 1))
	require.NoError(t, mb.SendCommand(context.Background(), Observe()))

	item, err := inbox.RecvTimeout(true)
	require.NoError(t, err)
	require.True(t, item.IsCommand)
	require.Equal(t, CmdObserve, item.Cmd.Kind)

	item, err = inbox.RecvTimeout(true)
	require.NoError(t, err)
	require.False(t, item.IsCommand)
	require.Equal(t, 1, item.Msg)
}

func TestMailbox_PausedOnlyReceivesCommands(t *testing.T) {
	mb, inbox := NewMailbox[int]("m", 4)
	defer mb.Close()

	require.NoError(t, mb.Send(context.Background(), 7))

	_, err := inbox.RecvTimeout(false)
	require.ErrorIs(t, err, ErrTimeout)

	require.NoError(t, mb.SendCommand(context.Background(), Pause()))
	item, err := inbox.RecvTimeout(false)
	require.NoError(t, err)
	require.True(t, item.IsCommand)
}

func TestMailbox_IsLastMailbox(t *testing.T) {
	mb, _ := NewMailbox[int]("m", 4)
	defer mb.Close()

	require.True(t, mb.IsLastMailbox())

	clone := mb.Clone()
	require.False(t, mb.IsLastMailbox())

	clone.Close()
	require.True(t, mb.IsLastMailbox())
}

func TestMailbox_DisconnectedAfterAllClosed(t *testing.T) {
	mb, inbox := NewMailbox[int]("m", 4)

	clone := mb.Clone()
	mb.Close()
	clone.Close()

	_, err := inbox.RecvTimeout(true)
	require.ErrorIs(t, err, ErrDisconnected)
}

func TestMailbox_SendAfterCloseFails(t *testing.T) {
	mb, _ := NewMailbox[int]("m", 4)
	mb.Close()

	err := mb.Send(context.Background(), 1)
	require.ErrorIs(t, err, ErrDisconnected)
}

func TestMailbox_SendRespectsContextCancellation(t *testing.T) {
	mb, _ := NewMailbox[int]("m", 1)
	defer mb.Close()

	require.NoError(t, mb.Send(context.Background(), 1)) // fill the one slot

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := mb.Send(ctx, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWatch_LatestValueOnly(t *testing.T) {
	w := NewWatch(0)
	require.Equal(t, 0, w.Value())

	sub, cancel := w.Subscribe()
	defer cancel()

	w.Publish(1)
	w.Publish(2)
	w.Publish(3)

	require.Equal(t, 3, w.Value())

	select {
	case v := <-sub:
		require.Equal(t, 3, v)
	case <-time.After(time.Second):
		t.Fatal("expected a value on the subscription channel")
	}
}
