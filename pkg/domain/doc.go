/*
Package domain contains the core models of the rsflow recipe layer.

It defines the entities shared by the builder, the graph, the renderers and the
executor. This package is kept pure and free of I/O.

# Key Entities

  - Artifact: a uniquely named, file-backed output declared in a recipe.
  - Operation: the structured descriptor of the external command producing an artifact.
  - BuildRecord: the persisted signature of a materialized artifact.
  - LifecycleHooks: callbacks fired by the executor around each build.
*/
package domain
