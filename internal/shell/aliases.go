package shell

import (
	"fmt"
)

// expandAlias replaces an unquoted leading alias name with its expansion.
// Expansion is applied once; an alias naming another alias is not followed.
func expandAlias(tokens []Token, aliases map[string]string) ([]Token, error) {
	if len(tokens) == 0 || len(aliases) == 0 || tokens[0].Quoted {
		return tokens, nil
	}

	expansion, ok := aliases[tokens[0].Value]
	if !ok {
		return tokens, nil
	}

	expanded, err := Tokenize(expansion)
	if err != nil {
		return nil, fmt.Errorf("alias %s: %w", tokens[0].Value, err)
	}
	for _, tok := range expanded {
		if tok.Type != TokenWord {
			return nil, fmt.Errorf("alias %s: chains are not allowed in aliases", tokens[0].Value)
		}
	}

	return append(expanded, tokens[1:]...), nil
}
