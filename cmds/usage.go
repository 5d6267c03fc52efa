package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	seen := make(map[*Command]bool)
	names := make([]string, 0, len(p.commands))
	for name := range p.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		command := p.commands[name]
		if command == nil || seen[command] {
			continue
		}
		seen[command] = true
		writeCommand(w, 0, name, command)
	}
}

func writeCommand(w io.Writer, depth int, name string, command *Command) {
	indent := strings.Repeat("  ", depth)
	line := indent + name
	if params := command.Params(); params != "" {
		line += " " + params
	}
	if len(command.Aliases) > 0 {
		line += " (" + strings.Join(command.Aliases, ", ") + ")"
	}
	if command.Description != "" {
		line += "\t" + command.Description
	}
	fmt.Fprintln(w, line)

	subNames := make([]string, 0, len(command.Subs))
	for subName := range command.Subs {
		subNames = append(subNames, subName)
	}
	slices.Sort(subNames)
	for _, subName := range subNames {
		sub := command.Subs[subName]
		if sub == nil {
			continue
		}
		writeCommand(w, depth+1, subName, sub)
	}
}
