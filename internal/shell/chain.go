package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gYonder/folio-shell/internal/commands"
	"github.com/gYonder/folio-shell/internal/session"
)

// CommandChain is a sequence of commands connected by &&, ||, or ;
type CommandChain struct {
	Commands []ChainedInvocation
}

// ChainedInvocation is one command with the operator connecting it to the next.
type ChainedInvocation struct {
	Name     string
	Args     []string
	Operator ChainOperator // operator AFTER this command
}

// ParseCommandChain parses a command line into a CommandChain, expanding a
// leading alias in each command. It returns nil for a blank line.
func ParseCommandChain(line string, aliases map[string]string) (*CommandChain, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	chain := &CommandChain{}
	for i, cc := range SplitByChain(tokens) {
		if len(cc.Tokens) == 0 {
			if i == 0 && cc.Operator != ChainSeq {
				return nil, fmt.Errorf("syntax error near unexpected token '%s'", operatorString(cc.Operator))
			}
			continue
		}

		words, err := expandAlias(cc.Tokens, aliases)
		if err != nil {
			return nil, err
		}

		args := make([]string, len(words))
		for j, w := range words {
			args[j] = w.Value
		}
		chain.Commands = append(chain.Commands, ChainedInvocation{
			Name:     args[0],
			Args:     args[1:],
			Operator: cc.Operator,
		})
	}

	if len(chain.Commands) == 0 {
		return nil, nil
	}
	return chain, nil
}

func operatorString(op ChainOperator) string {
	switch op {
	case ChainAnd:
		return "&&"
	case ChainOr:
		return "||"
	case ChainSeq:
		return ";"
	}
	return ""
}

// Execute runs the command chain, respecting &&, ||, and ; semantics.
// Errors of commands other than the last one run are reported on
// env.Stderr; the last error is returned. commands.ErrExit stops the chain.
func (c *CommandChain) Execute(ctx context.Context, sess *session.Session, env *commands.ExecutionEnv) error {
	if c == nil || len(c.Commands) == 0 {
		return nil
	}

	var lastErr error
	for i, inv := range c.Commands {
		// Determine whether to run this command based on previous result
		shouldRun := true
		if i > 0 {
			switch c.Commands[i-1].Operator {
			case ChainAnd:
				shouldRun = lastErr == nil
			case ChainOr:
				shouldRun = lastErr != nil
			case ChainSeq:
				shouldRun = true
			}
		}

		if !shouldRun {
			continue
		}

		if lastErr != nil {
			fmt.Fprintf(env.Stderr, "folio: %v\n", lastErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = commands.Execute(ctx, sess, env, inv.Name, inv.Args)
		if errors.Is(lastErr, commands.ErrExit) {
			return lastErr
		}
	}

	return lastErr
}
