// Package expr implements the small, closed expression language used inside
// recipe files: quoted literals, references to bound names, and calls to
// built-in functions. Expressions appear in `{{...}}` template markers,
// dependency arguments, parameter defaults and top-level assignments.
//
// Parsing is delegated to hclsyntax and evaluation to an hcl.EvalContext whose
// variables are the current Scope and whose functions are the built-ins. Any
// HCL construct outside the closed grammar is rejected when the expression is
// parsed, so evaluation never has to deal with operators, conditionals or
// collections.
//
// Evaluation is pure. Built-ins read a Host snapshot taken once when the
// Evaluator is created and never start processes.
package expr
