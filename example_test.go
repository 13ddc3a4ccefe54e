package rsflow_test

import (
	"fmt"

	"github.com/aretw0/rsflow"
	"github.com/aretw0/rsflow/internal/config"
)

func ExampleLoad() {
	r, err := rsflow.Load("")
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Graph.Len(), "artifacts")
	fmt.Println(r.Interpolation.Interpolated)
	// Output:
	// 15 artifacts
	// interpolatedDataCube
}

func ExampleNew() {
	cfg := config.Default()
	cfg.Model.Enabled = false
	cfg.Interpolation.NHI = 0

	r, err := rsflow.New(cfg)
	if err != nil {
		panic(err)
	}
	for _, g := range r.Interpolation.Gathers {
		fmt.Println(g.Interpolated)
	}
	fmt.Println(r.Graph.External())
	// Output:
	// dataCube-interpolatedGather-0
	// [dataCube]
}
