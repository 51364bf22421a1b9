package hoconparser

// TokenType enumerates every lexical category the Scanner can produce.
type TokenType int

const (
	WhitespaceToken TokenType = iota + 1
	NewLineToken
	CommentToken

	LeftCurlyToken
	RightCurlyToken
	LeftSquareToken
	RightSquareToken
	LeftParenToken
	RightParenToken

	EqualsToken
	ColonToken
	PlusEqualsToken
	CommaToken
	DotToken

	BoolToken
	NullToken
	NumberToken
	DurationToken

	QuotedStringToken
	TripleQuotedStringToken
	UnquotedStringToken
	KeyToken

	SubstitutionToken
	OptionalSubstitutionToken

	IncludeToken
	RequiredToken
	UrlToken
	FileToken
	PackageToken

	UnterminatedQuotedStringErrorToken
	UnterminatedTripleQuotedStringErrorToken
	UnterminatedSubstitutionErrorToken
	NonUTF8ErrorToken
	UnexpectedCharacterToken

	EOFToken
)

func (tt TokenType) String() string {
	return tokenToDescription[tt]
}

func (tt TokenType) GoString() string {
	return tokenToDescription[tt]
}

func init() {
	for tt := TokenType(1); tt != EOFToken; tt++ {
		if tokenToDescription[tt] == "" {
			panic("hoconparser: tokenToDescription is missing an entry")
		}
	}
}

var tokenToDescription = map[TokenType]string{
	WhitespaceToken: "WhitespaceToken",
	NewLineToken:    "NewLineToken",
	CommentToken:    "CommentToken",

	LeftCurlyToken:   "LeftCurlyToken",
	RightCurlyToken:  "RightCurlyToken",
	LeftSquareToken:  "LeftSquareToken",
	RightSquareToken: "RightSquareToken",
	LeftParenToken:   "LeftParenToken",
	RightParenToken:  "RightParenToken",

	EqualsToken:     "EqualsToken",
	ColonToken:      "ColonToken",
	PlusEqualsToken: "PlusEqualsToken",
	CommaToken:      "CommaToken",
	DotToken:        "DotToken",

	BoolToken:     "BoolToken",
	NullToken:     "NullToken",
	NumberToken:   "NumberToken",
	DurationToken: "DurationToken",

	QuotedStringToken:       "QuotedStringToken",
	TripleQuotedStringToken: "TripleQuotedStringToken",
	UnquotedStringToken:     "UnquotedStringToken",
	KeyToken:                "KeyToken",

	SubstitutionToken:         "SubstitutionToken",
	OptionalSubstitutionToken: "OptionalSubstitutionToken",

	IncludeToken:  "IncludeToken",
	RequiredToken: "RequiredToken",
	UrlToken:      "UrlToken",
	FileToken:     "FileToken",
	PackageToken:  "PackageToken",

	UnterminatedQuotedStringErrorToken:       "UnterminatedQuotedStringErrorToken",
	UnterminatedTripleQuotedStringErrorToken: "UnterminatedTripleQuotedStringErrorToken",
	UnterminatedSubstitutionErrorToken:       "UnterminatedSubstitutionErrorToken",
	NonUTF8ErrorToken:                        "NonUTF8ErrorToken",
	UnexpectedCharacterToken:                 "UnexpectedCharacterToken",

	EOFToken: "EOFToken",
}

// keywords are case-insensitive per spec.md §4.1.
var keywords = map[string]TokenType{
	"true":     BoolToken,
	"false":    BoolToken,
	"null":     NullToken,
	"include":  IncludeToken,
	"required": RequiredToken,
	"url":      UrlToken,
	"file":     FileToken,
	"package":  PackageToken,
}
