/*
Package graph holds the immutable, validated form of a recipe.

A Graph is produced once from the declarations collected by a dsl.Builder.
Sources that do not name a declared artifact are treated as external inputs:
files the recipe reads but does not produce. Edges only exist between declared
artifacts, and those edges must be acyclic.

Ordering is deterministic. Ties between independent artifacts are always broken
by declaration order, so the same recipe yields the same plan on every run.
*/
package graph
