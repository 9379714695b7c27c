package commands

import (
	"GophMart/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <email> <password>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out - общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// sections задаёт группы в справке. Команды вне списка попадают в "Other".
var sections = []struct {
	title string
	names []string
}{
	{"Account", []string{"signup", "login", "logout", "status"}},
	{"Items", []string{"items", "my-items", "item-get", "item-add", "item-edit", "item-delete"}},
	{"Files", []string{"upload", "download", "files", "file-delete", "attach", "detach", "sweep"}},
}

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
// Повторная регистрация имени - ошибка программиста.
func RegisterCmd(cmd Command) {
	if _, dup := registry[cmd.Name()]; dup {
		panic("commands: duplicate command " + cmd.Name())
	}
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage builds a help text for all commands, grouped by section.
func FormatGlobalUsage() string {
	width := 0
	for _, c := range registry {
		width = max(width, len(c.Usage()))
	}

	var b strings.Builder
	b.WriteString("GophMart CLI\n\nUsage:\n  gmcli [--base-url <host:port>] [--https] [--token-file <path>] <command> [args]\n")

	listed := map[string]bool{}
	writeSection := func(title string, cmds []Command) {
		if len(cmds) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, c := range cmds {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, c.Usage(), c.Description())
			listed[c.Name()] = true
		}
	}
	for _, s := range sections {
		cmds := make([]Command, 0, len(s.names))
		for _, n := range s.names {
			if c, ok := registry[n]; ok {
				cmds = append(cmds, c)
			}
		}
		writeSection(s.title, cmds)
	}

	var other []Command
	for _, c := range List() {
		if !listed[c.Name()] {
			other = append(other, c)
		}
	}
	writeSection("Other", other)
	return b.String()
}
