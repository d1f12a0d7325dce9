package irc

import "strings"

// Prefix is the decomposed origin of an IRC message: nick[!user][@host].
type Prefix struct {
	Nick string
	User string
	Host string
}

// DecomposePrefix splits a raw prefix token (the text between a leading
// ':' and the first whitespace) into its three optional fields. ok is
// false for anything that isn't a valid prefix shape: empty, containing
// whitespace, or with the '!' delimiter appearing at or after the '@'
// delimiter.
func DecomposePrefix(raw string) (prefix Prefix, ok bool) {
	if len(raw) == 0 {
		return Prefix{}, false
	}
	if strings.IndexFunc(raw, isASCIISpace) >= 0 {
		return Prefix{}, false
	}

	bang := strings.IndexByte(raw, '!')
	at := strings.IndexByte(raw, '@')

	switch {
	case bang < 0 && at < 0:
		return Prefix{Nick: raw}, true
	case bang >= 0 && at < 0:
		return Prefix{Nick: raw[:bang], User: raw[bang+1:]}, true
	case bang < 0 && at >= 0:
		return Prefix{Nick: raw[:at], Host: raw[at+1:]}, true
	default: // both present
		if bang >= at {
			return Prefix{}, false
		}
		return Prefix{Nick: raw[:bang], User: raw[bang+1 : at], Host: raw[at+1:]}, true
	}
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// String reassembles the full prefix token: nick[!user][@host].
func (p Prefix) String() string {
	var b strings.Builder
	b.WriteString(p.Nick)
	if len(p.User) > 0 {
		b.WriteByte('!')
		b.WriteString(p.User)
	}
	if len(p.Host) > 0 {
		b.WriteByte('@')
		b.WriteString(p.Host)
	}
	return b.String()
}
