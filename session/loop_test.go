package session

import (
	"bufio"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nightjar-irc/nightjar/irc"
)

func TestLoopReturnsCleanlyOnEOF(t *testing.T) {
	s, server := pipedSession(t, SessionConfig{Nick: "n"})

	go func() {
		server.Write([]byte("PING :x\r\n"))
		server.Close()
	}()

	// Drain the PONG the PING triggers so the reader, which sends it
	// inline, doesn't block forever on the unread pipe.
	go func() {
		r := bufio.NewReader(server)
		r.ReadString('\n')
	}()

	done := make(chan error, 1)
	go func() {
		done <- s.Loop(LoopOptions{})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not return after EOF")
	}
}

func TestLoopRunsCallbackOnSpawnedGoroutineWhenRequested(t *testing.T) {
	s, server := pipedSession(t, SessionConfig{Nick: "n"})
	defer server.Close()

	var mu sync.Mutex
	var calledOnGoroutine bool
	release := make(chan struct{})

	opts := LoopOptions{
		Callback: func(msg irc.Message) irc.Message {
			<-release
			mu.Lock()
			calledOnGoroutine = true
			mu.Unlock()
			return nil
		},
		ShouldSpawn: func(msg irc.Message) bool { return true },
	}

	// The callback blocks until released, so HandleLine only returns
	// here if the callback was handed to another goroutine.
	returned := make(chan struct{})
	go func() {
		s.HandleLine(":nick!u@h JOIN #chan", opts)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("HandleLine ran the callback inline instead of spawning it")
	}
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calledOnGoroutine
	}, time.Second, time.Millisecond)
}

func TestLoopRawCallbackSeesEveryParsedLine(t *testing.T) {
	s, server := pipedSession(t, SessionConfig{Nick: "n", Channels: []string{"#a"}})
	defer server.Close()

	go func() {
		r := bufio.NewReader(server)
		r.ReadString('\n')
	}()

	var seen []irc.CommandTag
	opts := LoopOptions{
		RawCallback: func(pm *irc.ProtoMessage) {
			seen = append(seen, pm.Command)
		},
	}

	s.HandleLine(":irc.example.net 376 n :End of MOTD", opts)
	require.Equal(t, []irc.CommandTag{irc.RplEndOfMotd}, seen)
}
