package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Конфигурация: frontmatter и директивы
	CfgInfo                    Code = 1000
	CfgInvalidFrontmatter      Code = 1001
	CfgFrontmatterNotMapping   Code = 1002
	CfgInvalidConfigValue      Code = 1003
	CfgUnknownDirective        Code = 1004
	CfgInvalidDirectivePayload Code = 1005
	CfgUnterminatedDirective   Code = 1006
	CfgUnclosedFrontmatter     Code = 1007

	// Определение диалекта
	DetInfo               Code = 2000
	DetUnknownDiagramType Code = 2001
	DetBadFrontmatter     Code = 2002

	// Лексические
	LexInfo               Code = 3000
	LexInvalidCharacter   Code = 3001
	LexUnterminatedString Code = 3002
	LexTokenTooLong       Code = 3003

	// Парсерные
	SynInfo                Code = 4000
	SynUnexpectedToken     Code = 4001
	SynExpectedToken       Code = 4002
	SynUnexpectedEOF       Code = 4003
	SynUnbalancedDelimiter Code = 4004
	SynMissingHeader       Code = 4005
	SynInvalidDirection    Code = 4006
	SynInvalidArrow        Code = 4007
	SynEmptyLabel          Code = 4008
	SynUnclosedSubgraph    Code = 4009
	SynUnexpectedEnd       Code = 4010

	// Семантические (внутри одного диалекта)
	SemaInfo                 Code = 5000
	SemaConflictingNodeShape Code = 5001
	SemaDuplicateSubgraph    Code = 5002
	SemaInvalidValue         Code = 5003
	SemaDuplicateSlice       Code = 5004

	// Ошибки I/O (только CLI)
	IOInfo         Code = 6000
	IOReadFailed   Code = 6001
	IODecodeFailed Code = 6002
)

type codeInfo struct {
	name  string
	title string
}

var codeTable = map[Code]codeInfo{
	UnknownCode:                {"Unknown", "Unknown error"},
	CfgInvalidFrontmatter:      {"Config.InvalidFrontmatter", "Frontmatter is not valid YAML"},
	CfgFrontmatterNotMapping:   {"Config.FrontmatterNotMapping", "Frontmatter is not a mapping"},
	CfgInvalidConfigValue:      {"Config.InvalidConfigValue", "Invalid configuration value"},
	CfgUnknownDirective:        {"Config.UnknownDirective", "Unknown directive"},
	CfgInvalidDirectivePayload: {"Config.InvalidDirectivePayload", "Invalid directive payload"},
	CfgUnterminatedDirective:   {"Config.UnterminatedDirective", "Unterminated directive"},
	CfgUnclosedFrontmatter:     {"Config.UnclosedFrontmatter", "Unclosed frontmatter"},
	DetUnknownDiagramType:      {"Detect.UnknownDiagramType", "Unknown diagram type"},
	DetBadFrontmatter:          {"Detect.BadFrontmatter", "Malformed frontmatter"},
	LexInvalidCharacter:        {"Lex.InvalidCharacter", "Invalid character"},
	LexUnterminatedString:      {"Lex.UnterminatedString", "Unterminated string"},
	LexTokenTooLong:            {"Lex.TokenTooLong", "Token too long"},
	SynUnexpectedToken:         {"Syntax.UnexpectedToken", "Unexpected token"},
	SynExpectedToken:           {"Syntax.ExpectedToken", "Expected token"},
	SynUnexpectedEOF:           {"Syntax.UnexpectedEOF", "Unexpected end of input"},
	SynUnbalancedDelimiter:     {"Syntax.UnbalancedDelimiter", "Unbalanced delimiter"},
	SynMissingHeader:           {"Syntax.MissingHeader", "Missing diagram header"},
	SynInvalidDirection:        {"Syntax.InvalidDirection", "Invalid direction"},
	SynInvalidArrow:            {"Syntax.InvalidArrow", "Invalid arrow"},
	SynEmptyLabel:              {"Syntax.EmptyLabel", "Empty label"},
	SynUnclosedSubgraph:        {"Syntax.UnclosedSubgraph", "Unclosed subgraph"},
	SynUnexpectedEnd:           {"Syntax.UnexpectedEnd", "Unexpected 'end'"},
	SemaConflictingNodeShape:   {"Semantic.ConflictingNodeShape", "Conflicting node shape"},
	SemaDuplicateSubgraph:      {"Semantic.DuplicateSubgraph", "Duplicate subgraph"},
	SemaInvalidValue:           {"Semantic.InvalidValue", "Invalid value"},
	SemaDuplicateSlice:         {"Semantic.DuplicateSlice", "Duplicate slice"},
	IOReadFailed:               {"IO.ReadFailed", "Failed to read input"},
	IODecodeFailed:             {"IO.DecodeFailed", "Failed to decode input"},
}

var codesByName = func() map[string]Code {
	out := make(map[string]Code, len(codeTable))
	for c, info := range codeTable {
		out[info.name] = c
	}
	return out
}()

// ID returns the short identifier, e.g. SYN4002.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DET%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Name returns the stable dotted name, e.g. Syntax.ExpectedToken.
func (c Code) Name() string {
	if info, ok := codeTable[c]; ok {
		return info.name
	}
	return codeTable[UnknownCode].name
}

func (c Code) Title() string {
	if info, ok := codeTable[c]; ok {
		return info.title
	}
	return codeTable[UnknownCode].title
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// LookupCode resolves a dotted name or a short ID back to its Code.
func LookupCode(s string) (Code, bool) {
	if c, ok := codesByName[s]; ok {
		return c, true
	}
	for c := range codeTable {
		if c != UnknownCode && c.ID() == s {
			return c, true
		}
	}
	return UnknownCode, false
}
