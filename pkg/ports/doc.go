/*
Package ports defines the driven ports (interfaces) of the rsflow executor.

These interfaces decouple execution from concrete backends, so the same recipe
can be built with signatures kept in memory, on disk or in Redis, and with
commands run locally or by a fake in tests.

# Key Interfaces

  - SignatureStore: persists the BuildRecord of every materialized artifact.
  - ProcessRunner: runs one rendered command line.
  - DistributedLocker: serializes builds of the same artifact across processes.
*/
package ports
