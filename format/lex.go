package format

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
	"strings"
)

const (
	comaTerminatorToken = iota
	scopeBlockToken
)

var (
	comaTerminatorMatcher = parsly.NewToken(comaTerminatorToken, "coma", matcher.NewTerminator(',', true))
	scopeBlockMatcher     = parsly.NewToken(scopeBlockToken, "{ .... }", matcher.NewBlock('{', '}', '\\'))
)

// matchPair matches next key=value pair, key is empty for bare values
func matchPair(cursor *parsly.Cursor) (string, string) {
	key := ""
	value := ""
	match := cursor.MatchAny(scopeBlockMatcher, comaTerminatorMatcher)
	switch match.Code {
	case scopeBlockToken:
		value = match.Text(cursor)
		value = value[1 : len(value)-1]
		cursor.MatchAny(comaTerminatorMatcher)
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1]
	default:
		if cursor.Pos < len(cursor.Input) {
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
	}
	if index := strings.Index(value, "="); index != -1 {
		key = value[:index]
		value = value[index+1:]
	}
	return strings.TrimSpace(key), strings.TrimSpace(value)
}
