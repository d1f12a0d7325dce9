package session

import (
	"io"
	"strings"

	"github.com/nightjar-irc/nightjar/irc"
)

// Callback maps one inbound typed message to an optional outbound
// typed message. A nil return sends nothing.
type Callback func(irc.Message) irc.Message

// ShouldSpawn decides, per inbound message, whether its Callback
// invocation runs on a freshly spawned, detached goroutine (true) or
// inline on the reader goroutine (false).
type ShouldSpawn func(irc.Message) bool

// RawCallback observes every successfully parsed line, independent of
// whether it lifted to a typed Message — grounded on the teacher's
// HandleRaw hook, and useful for commands (e.g. MODE) the typed union
// doesn't model.
type RawCallback func(*irc.ProtoMessage)

// LoopOptions configures Loop.
type LoopOptions struct {
	Callback    Callback
	ShouldSpawn ShouldSpawn
	RawCallback RawCallback
}

// Loop spawns the writer on its own goroutine, then runs the reader on
// the calling goroutine until the connection reaches EOF or a read
// error. Once the reader returns, Loop closes the reply queue and waits
// for the writer to drain it and exit before returning.
func (s *Session) Loop(opts LoopOptions) error {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.runWriter()
	}()

	err := s.runReader(opts)

	s.queue.close()
	<-writerDone

	return err
}

// runReader reads lines until EOF or a read error, handing each to
// HandleLine. An empty read before any delimiter (clean EOF) ends the
// loop without error.
func (s *Session) runReader(opts LoopOptions) error {
	for {
		line, err := s.conn.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			s.Logger.Error("reader stopped", "err", err)
			return err
		}

		s.HandleLine(line, opts)
	}
}

// runWriter drains the reply queue, dispatching each reply through the
// session emitter matching its concrete type. It returns once the
// queue is closed and drained, or a write fails.
func (s *Session) runWriter() {
	for {
		msg, ok := s.queue.pop()
		if !ok {
			return
		}

		if err := s.dispatchReply(msg); err != nil {
			s.Logger.Error("writer stopped", "err", err)
			return
		}
	}
}

// dispatchReply calls the emitter matching reply's concrete type. Any
// type without a matching emitter (e.g. a numeric reply variant, which
// a host would never construct as an outbound reply) is ignored.
func (s *Session) dispatchReply(reply irc.Message) error {
	switch m := reply.(type) {
	case irc.JoinMessage:
		return s.Join(strings.Split(m.Channels, ",")...)
	case irc.PartMessage:
		reason := ""
		if m.Reason != nil {
			reason = *m.Reason
		}
		return s.Part(reason, strings.Split(m.Channels, ",")...)
	case irc.PrivMessage:
		return s.Privmsg(m.Targets, m.Text)
	case irc.NoticeMessage:
		return s.Notice(m.Targets, m.Text)
	case irc.QuitMessage:
		reason := ""
		if m.Reason != nil {
			reason = *m.Reason
		}
		return s.Quit(reason)
	case irc.NickMessage:
		if m.Hopcount != nil {
			return s.Nick(m.Nickname, int(*m.Hopcount))
		}
		return s.Nick(m.Nickname)
	case irc.TopicMessage:
		text := ""
		if m.Text != nil {
			text = *m.Text
		}
		return s.Topic(m.Channel, text)
	default:
		return nil
	}
}

// HandleLine implements the inbound dispatch policy for one already
// line-framed piece of wire input.
//
//  1. Lines shorter than 4 bytes are ignored outright.
//  2. A line starting with "PING" is answered with PONG carrying the
//     same token, read directly off the raw bytes without going
//     through the parser, and dispatch stops there.
//  3. Otherwise the line is parsed. A parse failure is silently
//     dropped; the reader keeps going.
//  4. RPL_ENDOFMOTD (376) triggers one JOIN per configured channel, in
//     configured order. The session inspects the parsed CommandTag for
//     this rather than scanning the raw bytes for " 376 ", which the
//     naive substring check would also match inside chat text.
//  5. Any command that lifts to a typed Message is handed to
//     opts.Callback (inline or on a spawned goroutine, per
//     opts.ShouldSpawn); a non-nil reply is pushed onto the reply
//     queue for the writer to drain.
func (s *Session) HandleLine(line string, opts LoopOptions) {
	if len(line) < 4 {
		return
	}

	if line[:4] == "PING" {
		if idx := strings.IndexByte(line, ':'); idx >= 0 {
			s.pong(line[idx+1:])
		}
		return
	}

	pm, err := irc.Parse(line)
	if err != nil {
		return
	}

	if opts.RawCallback != nil {
		opts.RawCallback(pm)
	}

	if pm.Command == irc.RplEndOfMotd {
		for _, channel := range s.cfg.Channels {
			if err := s.Join(channel); err != nil {
				s.Logger.Error("auto-join failed", "channel", channel, "err", err)
			}
		}
	}

	msg, ok := irc.Lift(pm)
	if !ok || opts.Callback == nil {
		return
	}

	spawn := opts.ShouldSpawn != nil && opts.ShouldSpawn(msg)
	if spawn {
		go s.runCallback(opts.Callback, msg)
	} else {
		s.runCallback(opts.Callback, msg)
	}
}

// runCallback invokes cb and pushes a non-nil reply onto the queue.
// Messages crossing into a spawned goroutine here are already
// independent Go strings (ReadLine/Parse never hand out slices of a
// buffer the reader will later overwrite), so no extra copy step is
// needed before the handoff; the reference implementation's
// borrowed-buffer hazard doesn't arise on this runtime.
func (s *Session) runCallback(cb Callback, msg irc.Message) {
	reply := cb(msg)
	if reply != nil {
		s.queue.push(reply)
	}
}
