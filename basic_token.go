// basic_token.go - fixed token vocabulary for the BASIC lexer/parser
package main

// TokenType enumerates every lexical category the lexer produces.
type TokenType int

const (
	TokEOF TokenType = iota
	TokNewline
	TokNumber
	TokString
	TokIdentifier
	TokUnknown

	// keywords
	TokPRINT
	TokIF
	TokTHEN
	TokFOR
	TokTO
	TokSTEP
	TokNEXT
	TokGOTO
	TokGOSUB
	TokRETURN
	TokDIM
	TokDATA
	TokREAD
	TokRESTORE
	TokREM
	TokLET
	TokEND
	TokSTOP
	TokDEF
	TokFN
	TokINPUT
	TokGET
	TokON
	TokPEEK
	TokPOKE
	TokCALL
	TokAND
	TokOR
	TokNOT
	TokHOME
	TokCLEAR
	TokHTAB
	TokVTAB
	TokTEXT
	TokGR
	TokHGR
	TokHGR2
	TokCOLOR
	TokHCOLOR
	TokPLOT
	TokHPLOT
	TokDRAW
	TokXDRAW
	TokINVERSE
	TokFLASH
	TokNORMAL
	TokSLEEP
	TokHIMEM
	TokLOMEM

	// builtins (treated as identifiers by the parser, tagged for the lexer's convenience)
	TokABS
	TokSGN
	TokINT
	TokSQR
	TokSIN
	TokCOS
	TokTAN
	TokATN
	TokLOG
	TokEXP
	TokRND
	TokLEN
	TokVAL
	TokSTRS
	TokCHRS
	TokASC
	TokLEFTS
	TokRIGHTS
	TokMIDS
	TokFRE
	TokPOS
	TokTAB
	TokSPC

	// punctuation/operators
	TokColon
	TokSemicolon
	TokComma
	TokHash
	TokAt
	TokAmpersand
	TokQuestion
	TokLParen
	TokRParen
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokCaret
	TokEqual
	TokNotEqual
	TokLess
	TokLessEqual
	TokGreater
	TokGreaterEqual
)

// Token is one lexical unit: its type, the source text it came from, an
// optional literal value (float64 for numbers, string for strings), and its
// source position.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
	Column  int
}

// keywordTable maps the upper-cased spelling of every keyword/builtin to
// its token type. ? is a PRINT alias and is matched by the lexer directly,
// not through this table.
var keywordTable = map[string]TokenType{
	"PRINT": TokPRINT, "IF": TokIF, "THEN": TokTHEN, "FOR": TokFOR, "TO": TokTO,
	"STEP": TokSTEP, "NEXT": TokNEXT, "GOTO": TokGOTO, "GOSUB": TokGOSUB,
	"RETURN": TokRETURN, "DIM": TokDIM, "DATA": TokDATA, "READ": TokREAD,
	"RESTORE": TokRESTORE, "REM": TokREM, "LET": TokLET, "END": TokEND,
	"STOP": TokSTOP, "DEF": TokDEF, "FN": TokFN, "INPUT": TokINPUT, "GET": TokGET,
	"ON": TokON, "PEEK": TokPEEK, "POKE": TokPOKE, "CALL": TokCALL,
	"AND": TokAND, "OR": TokOR, "NOT": TokNOT,
	"HOME": TokHOME, "CLEAR": TokCLEAR, "HTAB": TokHTAB, "VTAB": TokVTAB,
	"TEXT": TokTEXT, "GR": TokGR, "HGR": TokHGR, "HGR2": TokHGR2,
	"COLOR": TokCOLOR, "HCOLOR": TokHCOLOR, "PLOT": TokPLOT, "HPLOT": TokHPLOT,
	"DRAW": TokDRAW, "XDRAW": TokXDRAW, "INVERSE": TokINVERSE, "FLASH": TokFLASH,
	"NORMAL": TokNORMAL, "SLEEP": TokSLEEP, "HIMEM": TokHIMEM, "LOMEM": TokLOMEM,
	"ABS": TokABS, "SGN": TokSGN, "INT": TokINT, "SQR": TokSQR, "SIN": TokSIN,
	"COS": TokCOS, "TAN": TokTAN, "ATN": TokATN, "LOG": TokLOG, "EXP": TokEXP,
	"RND": TokRND, "LEN": TokLEN, "VAL": TokVAL, "STR$": TokSTRS, "CHR$": TokCHRS,
	"ASC": TokASC, "LEFT$": TokLEFTS, "RIGHT$": TokRIGHTS, "MID$": TokMIDS,
	"FRE": TokFRE, "POS": TokPOS, "TAB": TokTAB, "SPC": TokSPC,
}

// builtinFuncs is the subset of keywordTable that are callable expression
// functions rather than statements.
var builtinFuncs = map[TokenType]bool{
	TokABS: true, TokSGN: true, TokINT: true, TokSQR: true, TokSIN: true,
	TokCOS: true, TokTAN: true, TokATN: true, TokLOG: true, TokEXP: true,
	TokRND: true, TokLEN: true, TokVAL: true, TokSTRS: true, TokCHRS: true,
	TokASC: true, TokLEFTS: true, TokRIGHTS: true, TokMIDS: true,
	TokFRE: true, TokPOS: true, TokTAB: true, TokSPC: true, TokPEEK: true,
}
