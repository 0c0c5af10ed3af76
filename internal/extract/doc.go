// Package extract turns the two external programs' captured textual output
// into canonical, validated record lists.
//
// The grammars are fixed by the upstream tools: the quantum-chemistry
// program's "IR SPECTRUM" block and the decomposition tool's per-mode NMA
// breakdown. Extraction fails fast on unusable input: an empty mode list or a
// repeated mode index within one source aborts the run.
package extract
