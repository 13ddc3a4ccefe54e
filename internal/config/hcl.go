package config

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclConfigFile is the top-level structure of an HCL config:
//
//	model { output = "dataCube" }
//	interpolation { nm = 401 ... }
//	run { jobs = 8 }
//	flow "stack" {
//	  sources = ["interpolatedDataCube"]
//	  command = "stack"
//	}
type hclConfigFile struct {
	Model         *hclSection `hcl:"model,block"`
	Interpolation *hclSection `hcl:"interpolation,block"`
	Run           *hclRun     `hcl:"run,block"`
	Flows         []*hclFlow  `hcl:"flow,block"`
}

type hclSection struct {
	Body hcl.Body `hcl:",remain"`
}

type hclRun struct {
	Process *hclSection `hcl:"process,block"`
	Body    hcl.Body    `hcl:",remain"`
}

type hclFlow struct {
	Name        string   `hcl:"name,label"`
	Sources     []string `hcl:"sources,optional"`
	Command     string   `hcl:"command"`
	Description string   `hcl:"description,optional"`
}

// parseHCL turns an HCL file into the same generic map the YAML path produces.
func parseHCL(data []byte, filename string) (map[string]any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclConfigFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	raw := map[string]any{}
	if parsed.Model != nil {
		m, err := attributes(parsed.Model.Body, filename)
		if err != nil {
			return nil, err
		}
		raw["model"] = m
	}
	if parsed.Interpolation != nil {
		m, err := attributes(parsed.Interpolation.Body, filename)
		if err != nil {
			return nil, err
		}
		raw["interpolation"] = m
	}
	if parsed.Run != nil {
		m, err := attributes(parsed.Run.Body, filename)
		if err != nil {
			return nil, err
		}
		if parsed.Run.Process != nil {
			p, err := attributes(parsed.Run.Process.Body, filename)
			if err != nil {
				return nil, err
			}
			m["process"] = p
		}
		raw["run"] = m
	}
	if len(parsed.Flows) > 0 {
		flows := make([]any, 0, len(parsed.Flows))
		for _, f := range parsed.Flows {
			flows = append(flows, map[string]any{
				"name":        f.Name,
				"sources":     f.Sources,
				"command":     f.Command,
				"description": f.Description,
			})
		}
		raw["flows"] = flows
	}
	return raw, nil
}

func attributes(body hcl.Body, filename string) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s in %s: %w", name, filename, diags)
		}
		v, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", name, filename, err)
		}
		out[name] = v
	}
	return out, nil
}

func ctyToGo(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			i, acc := bf.Int64()
			if acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			v, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := map[string]any{}
		for it := val.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			v, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
