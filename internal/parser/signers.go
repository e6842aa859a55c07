package parser

import "strings"

const maxSigners = 10

// ExtractSigners collects signer names following the closing formula
// (REGÍSTRESE / COMUNÍQUESE): uppercase-only lines of at least 10 characters.
func (p *Parser) ExtractSigners(text string) []string {
	loc := p.termCierre.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	var signers []string

	for _, line := range strings.Split(text[loc[1]:], "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) < 10 {
			continue
		}

		if !p.signerLine.MatchString(line) {
			continue
		}

		signers = append(signers, line)
		if len(signers) == maxSigners {
			break
		}
	}

	return signers
}
