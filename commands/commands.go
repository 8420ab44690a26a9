// Package commands implements the slash command framework: a static registry
// mapping command names to handlers, built at startup.
package commands

import (
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/chis-dev/chisbot/common"
)

var logger = common.GetFixedPrefixLogger("commands")

// AutocompleteFunc produces suggestion choices for one option of a command.
type AutocompleteFunc func(data *Data, input string) ([]*discordgo.ApplicationCommandOptionChoice, error)

// Command is a single slash command and the full set of interactions it
// handles. Name and RunFunc are required, the rest is optional.
type Command struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption

	RunFunc func(data *Data) error

	// Autocomplete handlers keyed by option name.
	Autocomplete map[string]AutocompleteFunc

	// HandleButton is invoked for message components whose custom id carries
	// this command's prefix, see ButtonCustomID.
	HandleButton func(data *ButtonData) error
}

// CommandProvider is implemented by plugins that add commands.
type CommandProvider interface {
	AddCommands()
}

var registry = make(map[string]*Command)

// RegisterCommands adds commands to the registry, panicking on duplicate names
// so conflicts surface at startup rather than at dispatch time.
func RegisterCommands(cmds ...*Command) {
	for _, cmd := range cmds {
		if _, ok := registry[cmd.Name]; ok {
			panic("duplicate command registered: " + cmd.Name)
		}
		registry[cmd.Name] = cmd
	}
}

// Get returns the registered command with the given name.
func Get(name string) *Command {
	return registry[name]
}

// All returns the registered commands sorted by name.
func All() []*Command {
	out := make([]*Command, 0, len(registry))
	for _, cmd := range registry {
		out = append(out, cmd)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ApplicationCommands builds the discord application command definitions for
// every registered command, for bulk registration at startup.
func ApplicationCommands() []*discordgo.ApplicationCommand {
	cmds := All()
	out := make([]*discordgo.ApplicationCommand, len(cmds))
	for i, cmd := range cmds {
		out[i] = &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		}
	}
	return out
}

// ButtonCustomID builds the custom id for a button belonging to cmdName, in the
// form the dispatcher routes back to that command's HandleButton.
func ButtonCustomID(cmdName, action string) string {
	return cmdName + ":" + action
}
