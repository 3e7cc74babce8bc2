// Package config loads and validates the plugin's JSON configuration.
//
// The config file lives in the host's settings directory and may carry
// whole-line // or # comments, which are stripped before parsing. A
// missing, unreadable, or malformed file never fails the caller: every
// problem degrades to defaults with a logged note, because a broken
// config must not take linting down with it.
//
// The package also detects project-level tool configuration (ruff.toml,
// .ruff.toml, or a [tool.ruff] table in pyproject.toml) by walking up
// from a source file's directory, and offers live reload of the plugin
// config through a file watcher.
package config
