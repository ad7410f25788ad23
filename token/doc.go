// Package token recognizes compound lexical tokens one character at a time.
//
// A [Matcher] is stateless and reusable. For each recognition attempt it
// creates a fresh [Processor], which consumes characters and reports one of
// three verdicts:
//
//   - [Valid]: the character belongs to the token, which may continue.
//   - [Success]: the token ended before this character. The character is not
//     consumed.
//   - [Fail]: the input at this position is not this kind of token.
//
// [Scan] runs several matchers from the same offset and keeps the longest
// successful token, so matchers compose without knowing about each other.
//
// # Generic variables
//
// [GenericVariable] recognizes a variable name optionally qualified with
// type arguments:
//
//	count
//	count<int>
//	Map<string,int?>
//
// Once the opening '<' is seen there is no fallback to a plain identifier:
// a disallowed character inside the brackets fails the match.
package token
