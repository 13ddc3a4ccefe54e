/*
Package dsl provides the Go DSL for declaring rsflow recipes.

A Builder collects artifact declarations: a unique name, the ordered list of
sources it reads and the structured operation producing it. Declaring never
runs anything and never inspects the operation; the collected graph is handed
to a renderer or an executor later.

Example usage:

	package main

	import (
		"github.com/aretw0/rsflow/pkg/dsl"
		"github.com/aretw0/rsflow/pkg/op"
	)

	func main() {
		b := dsl.New()

		b.Flow("spikes", nil, op.New("spike").Int("n1", 401).Operation())
		b.Flow("mask", []string{"spikes"},
			op.New("dd").Set("type", "int").Operation()).
			Describe("integer mask")

		g, err := b.Build()
		if err != nil {
			// duplicate names or cycles
		}
		_ = g
	}

Duplicate names are the only thing checked at declaration time. The policy is
chosen with WithDuplicatePolicy; rejected declarations are kept as sticky
errors and reported by Err and Build.
*/
package dsl
