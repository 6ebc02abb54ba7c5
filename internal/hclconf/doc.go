// Package hclconf loads the provider's HCL documents: analog program
// files, remote credential files, and parameter-binding files. Each loader
// parses the file, decodes it into schema structs, and translates the cty
// values into model types.
package hclconf
