// Package marble implements the front end of Marble, a small C-like
// scripting language. It provides:
//   - A Lexer that turns source text into tokens on demand.
//   - A Pratt (operator-precedence) Parser that builds an AST and collects
//     syntax errors instead of stopping at the first one.
//   - AST nodes whose String method regenerates canonical, fully
//     parenthesized source, plus Inspect for walking a tree.
//
// The language has let and return statements, integer and boolean
// literals, prefix ! and -, the binary operators + - * / < > == !=,
// if/else expressions, function literals via `fn(params) { ... }` and call
// expressions. Semicolons terminate statements but are optional before a
// closing brace or end of input.
package marble
