// Package bp implements belief propagation over factor graphs whose
// variables take values in a finite alphabet Z_nc, with function nodes drawn
// from a fixed library (AND, XOR, ADD, MUL, their constant-operand variants,
// and bijective LOOKUP tables). Fast kernels use the Walsh-Hadamard transform
// for XOR and a real FFT for ADD and prime-modulus MUL; AND and
// composite-modulus MUL fall back to a quadratic convolution.
package bp
