// Package device describes the neutral-atom hardware a sequence targets:
// device descriptors with their physical constraints, trap layouts, the
// built-in device catalog, and the Target type that pairs a device with a
// resolved layout.
package device
