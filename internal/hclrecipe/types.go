package hclrecipe

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of an HCL recipe file.
type fileRoot struct {
	Settings  *settingsBlock  `hcl:"settings,block"`
	Variables []*variableBlock `hcl:"variable,block"`
	Recipes   []*recipeBlock   `hcl:"recipe,block"`
}

type settingsBlock struct {
	Shell      []string `hcl:"shell,optional"`
	DotenvLoad bool     `hcl:"dotenv_load,optional"`
	DotenvPath string   `hcl:"dotenv_path,optional"`
	Export     bool     `hcl:"export,optional"`
}

type variableBlock struct {
	Name     string    `hcl:"name,label"`
	Value    string    `hcl:"value"`
	Export   bool      `hcl:"export,optional"`
	DefRange hcl.Range `hcl:",def_range"`
}

type recipeBlock struct {
	Name        string             `hcl:"name,label"`
	Description string             `hcl:"description,optional"`
	Private     bool               `hcl:"private,optional"`
	Parameters  []*parameterBlock  `hcl:"parameter,block"`
	Before      []*dependencyBlock `hcl:"before,block"`
	After       []*dependencyBlock `hcl:"after,block"`
	Interpreter []string           `hcl:"interpreter,optional"`
	Script      string             `hcl:"script,optional"`
	DefRange    hcl.Range          `hcl:",def_range"`
}

type parameterBlock struct {
	Name     string  `hcl:"name,label"`
	Default  *string `hcl:"default,optional"`
	Variadic string  `hcl:"variadic,optional"`
	Export   bool    `hcl:"export,optional"`
}

type dependencyBlock struct {
	Recipe string   `hcl:"recipe,label"`
	Args   []string `hcl:"args,optional"`
}
