package lexer

import "mermaidlint/internal/diag"

// DefaultMaxTokenLen bounds a single lexeme when Options leave it unset.
const DefaultMaxTokenLen = 1 << 14

type Options struct {
	Reporter    diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	MaxTokenLen int           // 0 → DefaultMaxTokenLen, < 0 → без ограничения
}

func (o Options) maxTokenLen() int {
	if o.MaxTokenLen == 0 {
		return DefaultMaxTokenLen
	}
	return o.MaxTokenLen
}
