// Package compiler turns an analog program into a device-bound pulse
// sequence: it resolves waveform parameters into concrete numbers or
// declared variables, builds interpolated waveforms and pulses (including
// phase-modulated ones), extracts the program's single register, and
// appends one pulse per instruction, in order, to a single global channel.
package compiler
