package manifest

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top-level structure of an HCL manifest:
//
//	symbols = ["theme"]
//
//	component "app" {
//	  provide = { "@theme" = "dark" }
//
//	  component "toolbar" {
//	    inject "theme" { from = "@theme" }
//	  }
//	}
type hclFile struct {
	Debug      *bool           `hcl:"debug,optional"`
	Symbols    []string        `hcl:"symbols,optional"`
	Components []*hclComponent `hcl:"component,block"`
}

type hclComponent struct {
	Name     string          `hcl:"name,label"`
	Provide  hcl.Expression  `hcl:"provide,optional"`
	Data     hcl.Expression  `hcl:"data,optional"`
	Inject   []*hclInject    `hcl:"inject,block"`
	Children []*hclComponent `hcl:"component,block"`
}

type hclInject struct {
	Name string  `hcl:"name,label"`
	From *string `hcl:"from,optional"`
}

func decodeHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}
	if len(parsed.Components) != 1 {
		return nil, fmt.Errorf("expected exactly one top-level component block, found %d", len(parsed.Components))
	}

	root, err := nodeFromHCL(parsed.Components[0])
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Debug:   parsed.Debug,
		Symbols: parsed.Symbols,
		Root:    root,
	}, nil
}

func nodeFromHCL(c *hclComponent) (*Node, error) {
	n := &Node{Name: c.Name}

	provide, err := objectFromExpr(c.Provide)
	if err != nil {
		return nil, fmt.Errorf("component %q provide: %w", c.Name, err)
	}
	n.Provide = provide

	data, err := objectFromExpr(c.Data)
	if err != nil {
		return nil, fmt.Errorf("component %q data: %w", c.Name, err)
	}
	n.Data = data

	for _, inj := range c.Inject {
		e := InjectEntry{Name: inj.Name}
		if inj.From != nil {
			e.From = *inj.From
		}
		n.Inject = append(n.Inject, e)
	}
	for _, child := range c.Children {
		cn, err := nodeFromHCL(child)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

// objectFromExpr evaluates an optional object attribute. A missing attribute
// yields nil, an empty object an empty map.
func objectFromExpr(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return nil, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if v.IsNull() {
		return nil, nil
	}
	if ty := v.Type(); !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("expected an object, got %s", ty.FriendlyName())
	}
	native, err := ctyToNative(v)
	if err != nil {
		return nil, err
	}
	return native.(map[string]any), nil
}

// ctyToNative converts a cty.Value to its natural Go counterpart. Whole
// numbers become int so HCL values compare equal to YAML and TOML ones.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
