package irc

import "strings"

// maxLineLength is the maximum length of a single outbound line,
// mirroring the teacher's IRC_MAX_LENGTH: 510 bytes (512 minus the
// trailing CRLF) minus room for the server to prepend a full host mask
// when rebroadcasting to other clients.
const maxLineLength = 510 - 62

// splitBackward bounds how far back from the split point splitLines
// will search for a space to break on, rather than cutting mid-word.
const splitBackward = 20

// FormatPing renders a PONG reply carrying the same token the server's
// PING supplied.
func FormatPing(token string) string {
	return "PONG :" + token
}

// FormatNick renders a NICK command.
func FormatNick(nick string) string {
	return "NICK " + nick
}

// FormatUser renders the USER command sent once at registration.
func FormatUser(user, realName string) string {
	return "USER " + user + " * * :" + realName
}

// FormatJoin renders a JOIN command for one or more channels.
func FormatJoin(channels ...string) string {
	return "JOIN " + strings.Join(channels, ",")
}

// FormatPart renders a PART command for one or more channels with a
// reason. The trailing parameter is always present, empty or not.
func FormatPart(reason string, channels ...string) string {
	return "PART " + strings.Join(channels, ",") + " :" + reason
}

// FormatQuit renders a QUIT command. The trailing parameter is always
// present, empty or not.
func FormatQuit(reason string) string {
	return "QUIT :" + reason
}

// FormatTopic renders a TOPIC command, querying the current topic when
// topic is empty or setting it otherwise.
func FormatTopic(channel, topic string) string {
	if len(topic) == 0 {
		return "TOPIC " + channel
	}
	return "TOPIC " + channel + " :" + topic
}

// FormatPrivmsgLines renders a PRIVMSG to target, splitting text across
// as many lines as needed to respect maxLineLength.
func FormatPrivmsgLines(target, text string) []string {
	return formatTextLines("PRIVMSG "+target+" :", text)
}

// FormatNoticeLines renders a NOTICE to target, splitting text across
// as many lines as needed to respect maxLineLength.
func FormatNoticeLines(target, text string) []string {
	return formatTextLines("NOTICE "+target+" :", text)
}

// formatTextLines breaks text into chunks so that header+chunk never
// exceeds maxLineLength, preferring to split on a space within
// splitBackward characters of the cut point. Ported from the teacher's
// splitSend, adapted to return the finished lines instead of writing
// them directly.
func formatTextLines(header, text string) []string {
	msg := text
	msgMax := maxLineLength - len(header)
	if msgMax <= 0 {
		return nil
	}

	if len(msg) <= msgMax {
		return []string{header + msg}
	}

	var lines []string
	for len(msg) > 0 {
		if len(msg) <= msgMax {
			lines = append(lines, header+msg)
			break
		}

		size := msgMax
		advance := 0
		for i := msgMax; i > 0 && i > msgMax-splitBackward; i-- {
			if msg[i] == ' ' {
				size = i
				advance = 1
				break
			}
		}

		lines = append(lines, header+msg[:size])
		msg = msg[size+advance:]
	}

	return lines
}
