// Package view renders the command table for humans.
package view

import (
	"strings"

	"github.com/NikitaCOEUR/mycli/internal/config"
	"github.com/NikitaCOEUR/mycli/internal/shell"
	"github.com/NikitaCOEUR/mycli/pkg/version"
)

// Collect gathers the display data of cfg. If only is set, only the commands
// with those names are kept.
func Collect(cfg *config.Config, only ...string) *Data {
	data := &Data{
		Version:  version.Version,
		Shell:    shell.Detect(),
		Timeout:  cfg.Timeout,
		Files:    append([]string{}, cfg.Files...),
		Commands: make([]CommandInfo, 0, len(cfg.Commands)),
	}

	keep := make(map[string]bool, len(only))
	for _, name := range only {
		keep[name] = true
	}

	for _, cmd := range cfg.Commands {
		if len(keep) > 0 && !keep[cmd.Name] {
			continue
		}

		info := CommandInfo{
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     make([]OptionInfo, 0, len(cmd.Options)),
		}
		for _, opt := range cmd.Options {
			info.Options = append(info.Options, OptionInfo{
				Name:   opt.Name,
				Kind:   opt.Kind(),
				Detail: detail(opt),
				Quote:  opt.Quote,
				Cache:  opt.Cache,
			})
		}
		data.Commands = append(data.Commands, info)
	}

	return data
}

func detail(opt config.Option) string {
	switch opt.Kind() {
	case "http":
		return opt.HTTP.URL
	case "exec":
		return opt.Exec.Run
	case "static":
		return strings.Join(opt.Values, ", ")
	default:
		return ""
	}
}
