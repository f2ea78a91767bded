// Package batch evaluates files of arithmetic jobs and watches them for
// changes.
//
// A job file is YAML (JSON works too, being a subset) holding either a
// list of jobs or a mapping with a "jobs" key:
//
//	jobs:
//	  - op: add
//	    a: 2
//	    b: 3
//	  - expr: "5 - 2"
//
// Operands are kept as written and parsed with the caller's mode, so
// "0x1f" and "1e3" mean the same thing on the command line and in a file.
package batch
