// Package luadef loads user-defined lint tools from Lua scripts.
//
// A definition script calls lintstorm.register (or the bare register
// alias) with a table describing the tool:
//
//	lintstorm.register{
//	    name    = "shellcheck",
//	    syntax  = "Bash",
//	    cmd     = {"shellcheck", "--format=gcc", "@"},
//	    pattern = "^.+?:(?P<line>\\d+):(?P<col>\\d+): (?P<message>.*)$",
//	}
//
// Scripts run in a sandboxed Lua state: only the base, table, string
// and math libraries are open, and file loading functions are removed.
// Every registered tool is validated before it is accepted.
package luadef
