package parser

import "leavesmoke/internal/domain"

// Parser parses case results and extracts failures
type Parser interface {
	ParseFailure(result domain.CaseResult) domain.CaseFailure
}
