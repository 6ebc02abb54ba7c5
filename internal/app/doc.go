// Package app assembles the CLI application: it configures the logger,
// loads the HCL documents, constructs the provider and sampler, runs the
// program on the chosen backend, and prints the counts histogram.
package app
