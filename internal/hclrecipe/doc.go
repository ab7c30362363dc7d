// Package hclrecipe loads recipe files written in HCL. It decodes the file
// with gohcl into an intermediate set of structs and translates them into
// the same format-agnostic config.Model the text format produces.
//
// Attribute values are static HCL strings. Recipe arguments, parameter
// defaults, variable values and script lines are `{{...}}` templates,
// compiled by the expr package just as in the text format.
package hclrecipe
