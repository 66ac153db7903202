package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies a pipeline stage within a WGSL module.
type ShaderType int

const (
	// ShaderTypeVertex is the @vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the @fragment stage.
	ShaderTypeFragment
)

// ErrMissingEntryPoint is returned when a module lacks a @vertex or @fragment function.
var ErrMissingEntryPoint = errors.New("missing entry point")

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	entryPoints                map[ShaderType]string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed WGSL module holding a vertex and a fragment stage, together with the
// resource layout reflected from its source.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source.
	//
	// Returns:
	//   - string: the WGSL source after include expansion
	Source() string

	// EntryPoint returns the function name of a stage.
	//
	// Parameters:
	//   - stage: ShaderTypeVertex or ShaderTypeFragment
	//
	// Returns:
	//   - string: the entry point name, e.g. "vs_main"
	EntryPoint(stage ShaderType) string

	// BindGroupLayoutDescriptor retrieves the reflected layout of one bind group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves every reflected bind group layout keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the WGSL variable bound at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// VertexLayouts retrieves the vertex buffer layouts reflected from pure @location input structs,
	// in source order. Shaders that generate vertices from @builtin(vertex_index) have none.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes WGSL source and reflects its entry points, vertex layouts and bind groups.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - source: raw WGSL source, possibly containing @uvr:include directives
//
// Returns:
//   - Shader: the parsed shader
//   - error: if pre-processing fails or an entry point is missing
func NewShader(key, source string) (Shader, error) {
	processed, err := NewPreProcessor().Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: pre-process: %w", key, err)
	}

	s := &shader{
		key:         key,
		source:      processed,
		entryPoints: make(map[ShaderType]string, 2),
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: processed,
			},
		},
	}
	for _, stage := range []ShaderType{ShaderTypeVertex, ShaderTypeFragment} {
		name := parseEntryPoint(processed, stage)
		if name == "" {
			return nil, fmt.Errorf("shader %s: %w for stage %d", key, ErrMissingEntryPoint, stage)
		}
		s.entryPoints[stage] = name
	}
	s.vertexLayouts = parseVertexLayouts(processed)
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(processed, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(stage ShaderType) string {
	return s.entryPoints[stage]
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
