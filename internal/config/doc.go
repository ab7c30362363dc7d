// Package config defines the format-agnostic model of a recipe file, along
// with the Loader interface implemented by the concrete file formats.
//
// The `config.Model` is the single source of truth for the store, plan and
// executor packages. Concrete loaders, for the text recipe syntax and for
// HCL, are provided in separate packages.
package config
