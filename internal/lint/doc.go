// Package lint provides the framework for running external lint tools
// and turning their output into diagnostics.
//
// A Tool declaratively describes an external linter: the command line to
// run (with a placeholder for the file under analysis), a regular
// expression with named groups that matches one diagnostic per output
// line, and the syntax (lexer name) the tool applies to. The Runner
// executes a tool against in-memory source text through a temp file and
// parses the captured output.
//
// Tools are looked up by syntax through a Registry, which is where both
// built-in adapters and Lua-defined tools are installed.
package lint
