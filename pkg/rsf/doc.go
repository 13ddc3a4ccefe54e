/*
Package rsf renders recipe graphs into the forms the Madagascar toolchain
understands.

Operation descriptors stay structured everywhere else in rsflow; this package
is the boundary where they become text:

  - Command: the descriptor string of one operation ("spike n1=401 d1=0.0125 o1=0").
  - Parse: the inverse of Command, used for flows written by hand.
  - SConstruct: a complete SConstruct script with one Flow call per artifact.
  - Shell: an executable shell line with prefixed programs, redirections and
    source placeholders replaced by file names.
*/
package rsf
