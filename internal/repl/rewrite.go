package repl

import (
	"errors"
	"strings"
)

// ErrNoClassName is returned when a "java" invocation names no class.
var ErrNoClassName = errors.New(`"java" command requires a class name`)

// mainCallPrefix marks input to rewrite as a main-method invocation.
const mainCallPrefix = "java "

// isMainCall reports whether trimmed input uses the "java Class args"
// shorthand.
func isMainCall(input string) bool {
	return strings.HasPrefix(input, mainCallPrefix)
}

// rewriteMainCall turns "java Foo a b" into the interpreter call
// Foo.main(new String[]{"a","b"});. The input is assumed trimmed. A
// single trailing semicolon is dropped before tokenizing. Arguments are
// concatenated into string literals verbatim, without escaping.
func rewriteMainCall(input string) (string, error) {
	input = strings.TrimSuffix(input, ";")

	tokens := strings.Fields(input)
	// tokens[0] is the "java" keyword itself.
	if len(tokens) < 2 {
		return "", ErrNoClassName
	}
	class, args := tokens[1], tokens[2:]

	var call strings.Builder
	call.WriteString(class)
	call.WriteString(".main(new String[]{")
	for i, arg := range args {
		if i > 0 {
			call.WriteString(",")
		}
		call.WriteString(`"`)
		call.WriteString(arg)
		call.WriteString(`"`)
	}
	call.WriteString("});")
	return call.String(), nil
}
