package view

import "time"

// Data contains everything `mycli commands` displays
type Data struct {
	Version string
	Shell   string
	Timeout time.Duration

	// Files lists the command tables in merge order
	Files []string

	Commands []CommandInfo

	// Cache is nil when the candidate cache location is unknown
	Cache *CacheInfo
}

// CacheInfo summarizes the candidate cache file
type CacheInfo struct {
	Path    string
	Size    int64
	Entries int
	Stale   int
}

// CommandInfo describes one command of the table
type CommandInfo struct {
	Name        string
	Description string
	Options     []OptionInfo
}

// OptionInfo describes one option and where its values come from
type OptionInfo struct {
	Name   string
	Kind   string // static, http, exec or none
	Detail string // values, URL or command line
	Quote  bool
	Cache  time.Duration
}
