package token

// Kind is satisfied by every dialect's token kind enum.
type Kind interface {
	~uint8
	String() string
}

// Set names the kinds the shared lexer and parser machinery must
// recognize in a dialect's enum.
type Set[K Kind] struct {
	EOF     K
	Invalid K
	Newline K
}
