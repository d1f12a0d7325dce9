/*
Package config loads a session.SessionConfig from a TOML file, an
additive convenience over building one directly as a struct literal.
It is a deliberately thin wrapper: the teacher's config package
validates a map of many named networks with a long list of optional
per-network knobs (SSL cert paths, flood control, reconnect scale); a
single-session library only ever configures the one network it's
embedded in, so that schema collapses to one flat struct.
*/
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/nightjar-irc/nightjar/session"
)

// LoadFile decodes the TOML file at path into a session.SessionConfig.
func LoadFile(path string) (*session.SessionConfig, error) {
	var cfg session.SessionConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
