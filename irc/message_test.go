package irc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func liftLine(t *testing.T, line string) Message {
	t.Helper()
	pm, err := Parse(line)
	require.NoError(t, err)
	msg, ok := Lift(pm)
	require.True(t, ok)
	return msg
}

func TestLiftJoin(t *testing.T) {
	msg := liftLine(t, ":nick!u@h JOIN #chan")
	j, ok := msg.(JoinMessage)
	require.True(t, ok)
	require.Equal(t, "#chan", j.Channels)
	require.Equal(t, "nick", j.Raw().Prefix.Nick)
}

func TestLiftQuitWithReason(t *testing.T) {
	msg := liftLine(t, "QUIT :bye!")
	q, ok := msg.(QuitMessage)
	require.True(t, ok)
	require.NotNil(t, q.Reason)
	require.Equal(t, "bye!", *q.Reason)
}

func TestLiftNickWithHopcount(t *testing.T) {
	msg := liftLine(t, "NICK mynick 255")
	n, ok := msg.(NickMessage)
	require.True(t, ok)
	require.Equal(t, "mynick", n.Nickname)
	require.NotNil(t, n.Hopcount)
	require.Equal(t, uint8(255), *n.Hopcount)
}

func TestLiftNickWithoutHopcount(t *testing.T) {
	msg := liftLine(t, ":old!u@h NICK newnick")
	n, ok := msg.(NickMessage)
	require.True(t, ok)
	require.Equal(t, "newnick", n.Nickname)
	require.Nil(t, n.Hopcount)
}

func TestLiftTopicReply(t *testing.T) {
	msg := liftLine(t, ":srv 332 nick #chan :current topic")
	tr, ok := msg.(TopicReplyMessage)
	require.True(t, ok)
	require.Equal(t, "nick", tr.Nick)
	require.Equal(t, "#chan", tr.Channel)
	require.Equal(t, "current topic", tr.Text)
}

func TestLiftNoTypedMessageForEndOfMotd(t *testing.T) {
	pm, err := Parse(":srv 376 nick :End of MOTD")
	require.NoError(t, err)
	_, ok := Lift(pm)
	require.False(t, ok)
}

func TestLiftPrivmsg(t *testing.T) {
	msg := liftLine(t, ":nick!user@host PRIVMSG #chan :hello world!")
	p, ok := msg.(PrivMessage)
	require.True(t, ok)
	require.Equal(t, "#chan", p.Targets)
	require.Equal(t, "hello world!", p.Text)
}

func TestLiftNickInUse(t *testing.T) {
	msg := liftLine(t, ":srv 433 * takennick :Nickname is already in use")
	n, ok := msg.(NickInUseMessage)
	require.True(t, ok)
	require.Equal(t, "takennick", n.Attempted)
}
