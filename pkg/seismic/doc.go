/*
Package seismic declares the synthetic-data recipes.

KirchhoffModeling declares a Gaussian reflector, its velocity and dip fields and
the Kirchhoff-modeled data cube. PEFInterpolation declares the trace
interpolation of a data cube: masks and zero traces that double the CMP
sampling, then per offset gather an adaptive prediction-error filter
estimation and a missing-data solve, and finally the concatenation of all
interpolated gathers.

Both functions only register artifacts on a dsl.Builder. The numerical work is
done by the external toolchain when the declared graph is executed.
*/
package seismic
