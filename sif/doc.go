// Package sif parses stub interface files (.sif), the HCL-based format
// describing the public surface of one module: its classes, functions,
// constants, aliases, and type variables.
//
// A stub declares blocks such as:
//
//	typevar "T" {}
//
//	class "box" {
//	  typeparams = ["T"]
//	  bases      = ["object"]
//
//	  field "value" { type = "T" }
//
//	  method "get" {
//	    signature {
//	      param "self" { type = "box" }
//	      returns = "T"
//	    }
//	  }
//	}
//
// Type expressions are strings in a small grammar: dotted names
// ("collections.ordered_map"), applications ("list[int]"), unions
// ("union[int, str]"), and the optional shorthand ("optional[int]",
// sugar for a union with none). Every declaration block accepts since
// and until attributes holding semver strings; declarations outside the
// target version range are dropped during parsing.
//
// The parser resolves references to type variables declared in the same
// file. All other names are left symbolic for the loader to link.
package sif
