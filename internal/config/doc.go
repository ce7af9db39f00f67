// Package config manages the persistent CLI settings stored at
// ~/.skilldock/config.yaml, most notably the optional GitHub token used to
// raise API rate limits. Values can be overridden through SKILLDOCK_-prefixed
// environment variables.
package config
