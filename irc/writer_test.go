package irc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRegistration(t *testing.T) {
	line := FormatNick("nick") + "\r\n" + FormatUser("user", "Real Name") + "\r\n"
	require.Equal(t, "NICK nick\r\nUSER user * * :Real Name\r\n", line)
}

func TestFormatQuitAlwaysHasTrailing(t *testing.T) {
	require.Equal(t, "QUIT :", FormatQuit(""))
	require.Equal(t, "QUIT :done", FormatQuit("done"))
}

func TestFormatTopicQueryVsSet(t *testing.T) {
	require.Equal(t, "TOPIC #chan", FormatTopic("#chan", ""))
	require.Equal(t, "TOPIC #chan :new topic", FormatTopic("#chan", "new topic"))
}

func TestFormatJoinMultipleChannels(t *testing.T) {
	require.Equal(t, "JOIN #a,#b", FormatJoin("#a", "#b"))
}

func TestFormatPrivmsgLinesShortMessage(t *testing.T) {
	lines := FormatPrivmsgLines("#chan", "hi")
	require.Equal(t, []string{"PRIVMSG #chan :hi"}, lines)
}

func TestFormatPrivmsgLinesSplitsLongMessage(t *testing.T) {
	text := strings.Repeat("a", 600)
	lines := FormatPrivmsgLines("#chan", text)
	require.Greater(t, len(lines), 1)

	var rebuilt strings.Builder
	header := "PRIVMSG #chan :"
	for _, line := range lines {
		require.LessOrEqual(t, len(line), maxLineLength)
		require.True(t, strings.HasPrefix(line, header))
		rebuilt.WriteString(strings.TrimPrefix(line, header))
	}
	require.Equal(t, text, rebuilt.String())
}

func TestFormatPrivmsgLinesSplitsOnSpaceWhenPossible(t *testing.T) {
	words := strings.Repeat("word ", 200)
	lines := FormatPrivmsgLines("#chan", strings.TrimSpace(words))
	require.Greater(t, len(lines), 1)
	for _, line := range lines[:len(lines)-1] {
		require.False(t, strings.HasSuffix(line, "wor"))
	}
}
