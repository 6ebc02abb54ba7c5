package hclconf

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
	"github.com/qiskit-community/qiskit-pasqal-provider/internal/ctxlog"
)

// programRoot decodes the top level of a program file.
type programRoot struct {
	Program *programBlock `hcl:"program,block"`
}

// programBlock is one analog program: qubit coordinates, optional grid
// transform settings, and one or more gates.
type programBlock struct {
	Coords        cty.Value    `hcl:"coords"`
	GridTransform *string      `hcl:"grid_transform,optional"`
	Transform     *bool        `hcl:"transform,optional"`
	Gates         []*gateBlock `hcl:"gate,block"`
}

// gateBlock carries one Hamiltonian gate. Phase is either the scalar
// phase attribute or a phase_points block, not both.
type gateBlock struct {
	Amplitude   *waveformBlock `hcl:"amplitude,block"`
	Detuning    *waveformBlock `hcl:"detuning,block"`
	Phase       *cty.Value     `hcl:"phase,optional"`
	PhasePoints *waveformBlock `hcl:"phase_points,block"`
}

// waveformBlock carries an InterpolatePoints specification. Values may mix
// numbers and parameter-name strings.
type waveformBlock struct {
	Values       cty.Value  `hcl:"values"`
	Duration     *cty.Value `hcl:"duration,optional"`
	Times        []float64  `hcl:"times,optional"`
	Interpolator *string    `hcl:"interpolator,optional"`
}

// remoteRoot decodes the top level of a remote credentials file.
type remoteRoot struct {
	Remote *remoteBlock `hcl:"remote,block"`
}

type remoteBlock struct {
	Username  *string `hcl:"username,optional"`
	Password  *string `hcl:"password,optional"`
	ProjectID *string `hcl:"project_id,optional"`
	Token     *string `hcl:"token,optional"`
	Endpoint  *string `hcl:"endpoint,optional"`
	Auth0     *string `hcl:"auth0,optional"`
	Webhook   *string `hcl:"webhook,optional"`
}

// valuesRoot decodes the top level of a parameter-binding file.
type valuesRoot struct {
	Values *valuesBlock `hcl:"values,block"`
}

type valuesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// LoadProgram parses a program file into an analog program.
func LoadProgram(ctx context.Context, path string) (*analog.Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading program file.", "path", path)

	var root programRoot
	if err := decodeFile(path, &root); err != nil {
		return nil, err
	}
	if root.Program == nil {
		return nil, fmt.Errorf("%s: no program block found", path)
	}
	program, err := translateProgram(root.Program)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Program loaded.", "gates", program.Len())
	return program, nil
}

// LoadRemoteConfig parses a remote credentials file.
func LoadRemoteConfig(ctx context.Context, path string) (*cloud.RemoteConfig, error) {
	ctxlog.FromContext(ctx).Debug("Loading remote config file.", "path", path)

	var root remoteRoot
	if err := decodeFile(path, &root); err != nil {
		return nil, err
	}
	if root.Remote == nil {
		return nil, fmt.Errorf("%s: no remote block found", path)
	}
	return translateRemote(root.Remote), nil
}

// LoadValues parses a parameter-binding file into bindings keyed by
// parameter name.
func LoadValues(ctx context.Context, path string) (map[string][]float64, error) {
	ctxlog.FromContext(ctx).Debug("Loading values file.", "path", path)

	var root valuesRoot
	if err := decodeFile(path, &root); err != nil {
		return nil, err
	}
	if root.Values == nil {
		return nil, fmt.Errorf("%s: no values block found", path)
	}
	attrs, diags := root.Values.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", path, diags)
	}

	bindings := make(map[string][]float64, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: attribute %s: %w", path, name, diags)
		}
		floats, err := ctyToFloats(val)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %s: %w", path, name, err)
		}
		bindings[name] = floats
	}
	return bindings, nil
}

// decodeFile parses one HCL file and decodes its body into target.
func decodeFile(path string, target any) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, target); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return nil
}
