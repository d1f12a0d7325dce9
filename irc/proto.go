package irc

import "strings"

// errMsgParseFailure is given when a line does not fit the irc grammar,
// mirroring the teacher's single-message error string.
const errMsgParseFailure = "irc: unable to parse received irc protocol"

// ParseError is returned by Parse when a line can't be tokenised into a
// ProtoMessage. It is never surfaced past the reader: inbound parse
// failures are silently dropped (see session.Session.HandleLine).
type ParseError struct {
	Msg  string
	Line string
}

func (e ParseError) Error() string {
	return e.Msg
}

// ProtoMessage is the low-level record produced by Parse: an optional
// prefix, a recognised command tag, and a lazy iterator over the
// remaining parameters. It borrows from the line it was parsed from.
type ProtoMessage struct {
	Prefix  *Prefix
	Command CommandTag
	Params  Params
}

// Parse tokenises a single raw IRC line (already framed on '\n', CRLF or
// bare whitespace tolerated at both ends) into a ProtoMessage. Parse does
// not allocate beyond the owning string conversion the caller already
// performed: every field of the result is a substring of line.
func Parse(line string) (*ProtoMessage, error) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return nil, ParseError{Msg: errMsgParseFailure, Line: line}
	}

	rest := trimmed
	var prefixToken string
	if rest[0] == ':' {
		rest = rest[1:]
		tok, remainder := splitToken(rest)
		prefixToken = tok
		rest = remainder
	}

	prefix, hasPrefix := DecomposePrefix(prefixToken)

	cmdToken, paramSegment := splitToken(rest)
	if len(cmdToken) == 0 {
		return nil, ParseError{Msg: errMsgParseFailure, Line: line}
	}

	tag, ok := LookupCommand(cmdToken)
	if !ok {
		return nil, ParseError{Msg: errMsgParseFailure, Line: line}
	}

	pm := &ProtoMessage{
		Command: tag,
		Params:  NewParams(paramSegment),
	}
	if hasPrefix {
		pm.Prefix = &prefix
	}
	return pm, nil
}

// splitToken returns the token up to the first run of spaces in s, and
// the remainder with any leading spaces stripped. If s has no space,
// the whole of s is the token and the remainder is empty.
func splitToken(s string) (token, rest string) {
	idx := strings.IndexByte(s, ' ')
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeft(s[idx+1:], " ")
}
