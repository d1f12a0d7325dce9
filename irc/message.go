package irc

import "strconv"

// Message is the marker interface implemented by every typed message
// variant. A host application type-switches on the concrete type to
// react to specific commands.
type Message interface {
	isMessage()
	// Raw returns the ProtoMessage the variant was lifted from, so a
	// caller can still reach the prefix or any parameter the variant
	// itself didn't surface.
	Raw() *ProtoMessage
}

type base struct {
	raw *ProtoMessage
}

func (b base) Raw() *ProtoMessage { return b.raw }

// JoinMessage carries a JOIN: the channels joined, comma-separated as
// they arrived on the wire.
type JoinMessage struct {
	base
	Channels string
}

func (JoinMessage) isMessage() {}

// NickMessage carries a NICK: either a nick-change notification (one
// parameter) or, vestigially, an old-style registration NICK carrying
// a hopcount second parameter. Hopcount is nil when absent or
// unparsable.
type NickMessage struct {
	base
	Nickname string
	Hopcount *uint8
}

func (NickMessage) isMessage() {}

// NoticeMessage carries a NOTICE, conventionally not auto-replied to
// so as to avoid reply loops with other bots.
type NoticeMessage struct {
	base
	Targets string
	Text    string
}

func (NoticeMessage) isMessage() {}

// PartMessage carries a PART. Reason is nil when no reason parameter
// was supplied.
type PartMessage struct {
	base
	Channels string
	Reason   *string
}

func (PartMessage) isMessage() {}

// PrivMessage carries a PRIVMSG.
type PrivMessage struct {
	base
	Targets string
	Text    string
}

func (PrivMessage) isMessage() {}

// QuitMessage carries a QUIT. Reason is nil when no reason parameter
// was supplied.
type QuitMessage struct {
	base
	Reason *string
}

func (QuitMessage) isMessage() {}

// TopicMessage carries an inbound TOPIC change notification. Text is
// nil when the command carried no trailing parameter.
type TopicMessage struct {
	base
	Channel string
	Text    *string
}

func (TopicMessage) isMessage() {}

// TopicReplyMessage carries either RPL_NOTOPIC (331) or RPL_TOPIC
// (332), the server's answer to a topic query; Raw().Command
// distinguishes the two.
type TopicReplyMessage struct {
	base
	Nick    string
	Channel string
	Text    string
}

func (TopicReplyMessage) isMessage() {}

// ChannelErrorMessage carries either ERR_CHANOPRIVSNEEDED (482) or
// ERR_NOSUCHCHANNEL (403); Raw().Command distinguishes the two.
type ChannelErrorMessage struct {
	base
	Nick    string
	Channel string
	Text    string
}

func (ChannelErrorMessage) isMessage() {}

// ErroneousNicknameMessage carries ERR_ERRONEUSNICKNAME (432).
type ErroneousNicknameMessage struct {
	base
	Nick    string
	NewNick string
	Text    string
}

func (ErroneousNicknameMessage) isMessage() {}

// NoSuchNickMessage carries ERR_NOSUCHNICK (401).
type NoSuchNickMessage struct {
	base
	Nick         string
	SuppliedNick string
	Text         string
}

func (NoSuchNickMessage) isMessage() {}

// NickInUseMessage carries ERR_NICKNAMEINUSE (433), added to the
// taxonomy beyond the core command set so a session can surface the
// collision to the host during registration; see
// session.SessionConfig.AltNick.
type NickInUseMessage struct {
	base
	Nick      string
	Attempted string
	Text      string
}

func (NickInUseMessage) isMessage() {}

// Lift converts a parsed ProtoMessage into its typed Message variant.
// ok is false for any command outside the typed set (including
// RPL_ENDOFMOTD, which the session consumes directly from the
// ProtoMessage rather than through this path; see session.Session).
func Lift(pm *ProtoMessage) (msg Message, ok bool) {
	b := base{raw: pm}

	switch pm.Command {
	case JOIN:
		channels, _ := pm.Params.Next()
		return JoinMessage{base: b, Channels: channels}, true

	case NICK:
		nickname, _ := pm.Params.Next()
		var hop *uint8
		if hopField, present := pm.Params.Next(); present {
			if v, err := strconv.ParseUint(hopField, 10, 8); err == nil {
				h := uint8(v)
				hop = &h
			}
		}
		return NickMessage{base: b, Nickname: nickname, Hopcount: hop}, true

	case NOTICE:
		targets, _ := pm.Params.Next()
		text, _ := pm.Params.Next()
		return NoticeMessage{base: b, Targets: targets, Text: text}, true

	case PART:
		channels, _ := pm.Params.Next()
		reason := optionalField(pm.Params)
		return PartMessage{base: b, Channels: channels, Reason: reason}, true

	case PRIVMSG:
		targets, _ := pm.Params.Next()
		text, _ := pm.Params.Next()
		return PrivMessage{base: b, Targets: targets, Text: text}, true

	case QUIT:
		reason := optionalField(pm.Params)
		return QuitMessage{base: b, Reason: reason}, true

	case TOPIC:
		channel, _ := pm.Params.Next()
		text := optionalField(pm.Params)
		return TopicMessage{base: b, Channel: channel, Text: text}, true

	case RplNoTopic, RplTopic:
		nick, _ := pm.Params.Next()
		channel, _ := pm.Params.Next()
		text, _ := pm.Params.Next()
		return TopicReplyMessage{base: b, Nick: nick, Channel: channel, Text: text}, true

	case ErrChanOPrivsNeeded, ErrNoSuchChannel:
		nick, _ := pm.Params.Next()
		channel, _ := pm.Params.Next()
		text, _ := pm.Params.Next()
		return ChannelErrorMessage{base: b, Nick: nick, Channel: channel, Text: text}, true

	case ErrErroneusNickname:
		nick, _ := pm.Params.Next()
		newNick, _ := pm.Params.Next()
		text, _ := pm.Params.Next()
		return ErroneousNicknameMessage{base: b, Nick: nick, NewNick: newNick, Text: text}, true

	case ErrNoSuchNick:
		nick, _ := pm.Params.Next()
		supplied, _ := pm.Params.Next()
		text, _ := pm.Params.Next()
		return NoSuchNickMessage{base: b, Nick: nick, SuppliedNick: supplied, Text: text}, true

	case ErrNicknameInUse:
		nick, _ := pm.Params.Next()
		attempted, _ := pm.Params.Next()
		text, _ := pm.Params.Next()
		return NickInUseMessage{base: b, Nick: nick, Attempted: attempted, Text: text}, true

	default:
		return nil, false
	}
}

// optionalField pulls the next field if present, returning nil rather
// than a pointer to the empty string when the parameter was absent
// entirely (as opposed to present-but-empty).
func optionalField(params Params) *string {
	field, ok := params.Next()
	if !ok {
		return nil
	}
	return &field
}
