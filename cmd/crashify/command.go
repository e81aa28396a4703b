// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/crashify/diffusion"
)

type command struct {
	name   string
	mode   diffusion.Mode
	input  string // seed or prepare input
	output string // prepare only
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("%w: missing command", errUsage)
	}

	name, rest := args[0], args[1:]
	want := map[string]int{"generate": 0, "drumify": 1, "variation": 1, "prepare": 2}

	n, ok := want[name]
	if !ok {
		return command{}, fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
	if len(rest) != n {
		return command{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, name, n, len(rest))
	}

	cmd := command{name: name}
	switch name {
	case "generate":
		cmd.mode = diffusion.ModeUnconditional
	case "drumify":
		cmd.mode = diffusion.ModeSeeded
		cmd.input = rest[0]
	case "variation":
		cmd.mode = diffusion.ModeInpaint
		cmd.input = rest[0]
	case "prepare":
		cmd.input, cmd.output = rest[0], rest[1]
	}

	return cmd, nil
}
