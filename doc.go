/*
Package rsflow declares seismic processing recipes as dependency graphs of named artifacts.

A recipe couples synthetic Kirchhoff modeling of a Gaussian reflector with the
interpolation of its constant-offset gathers by adaptive prediction-error
filters. The numerical work belongs to the Madagascar toolchain: rsflow only
declares which artifact is produced from which sources by which pipeline of
programs, then renders that graph (SConstruct script, shell commands, Mermaid)
or executes it.

# Concept

Each artifact is declared once through a recipe builder:

	b := dsl.New()
	seismic.KirchhoffModeling(b, "dataCube")
	seismic.PEFInterpolation(b, seismic.Interpolation{
		DataCube: "dataCube", Interpolated: "interpolatedDataCube",
		NM: 401, DM: 0.025, NT: 1001, DT: 0.004, NHI: 1,
	})
	g, err := b.Build()

Operations are structured values (programs and arguments) built with package op;
they become Madagascar command strings only at the boundary, in package rsf.

# Usage

The facade builds the recipe described by a configuration file and wires an
executor for it:

	r, err := rsflow.Load("recipe.yaml")
	if err != nil {
		log.Fatal(err)
	}
	s, err := r.NewSession()
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	report, err := s.Executor.Run(ctx)

Artifacts whose signature (command plus source signatures) is unchanged since
the last run and whose output still exists are skipped.
*/
package rsflow
