// Package config defines the command line and configuration file layout.
package config

import (
	"github.com/Alia5/vtinput/internal/cmd"
	"github.com/Alia5/vtinput/internal/log"
)

// CLI is the root kong command structure.
type CLI struct {
	ConfigFile string     `name:"config" help:"Configuration file (json, yaml or toml)" type:"path" env:"VTINPUT_CONFIG"`
	Log        log.Config `embed:"" prefix:"log."`

	Run     cmd.Run           `cmd:"" default:"withargs" help:"Take over the console and pump keyboard input"`
	Info    cmd.Info          `cmd:"" help:"Report console, driver and keymap state without taking over the console"`
	Config  cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
	Install cmd.Install       `cmd:"" help:"Grant the executable the capability to override keymap entries"`
}
