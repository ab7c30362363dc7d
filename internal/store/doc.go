// Package store holds the recipe definitions of one loaded recipe file.
//
// A Store is populated once at startup and then only read. Recipes are kept
// in an arena (a slice in definition order) with a name index, so that
// definition order, which drives default selection and listing, is preserved.
package store
