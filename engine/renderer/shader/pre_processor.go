// pre_processor.go implements the WGSL include pre-processor. Shader assets name the
// shared struct declarations they need with a line comment of the form
//
//	// @uvr:include camera
//
// and the pre-processor replaces that line with the WGSL source registered for the name.
// Registered sources live next to the Go types they mirror, so the CPU and GPU layouts
// are declared side by side.
package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/mesh"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/uniform"
)

// Include names understood by the pre-processor.
const (
	IncludeCamera = "camera"
	IncludeModel  = "model"
	IncludeVertex = "vertex"
)

// includeRegex matches a whole directive line and captures the include name.
var includeRegex = regexp.MustCompile(`^\s*//\s*@uvr:include\s+(\w+)\s*$`)

// directiveRegex matches any line that looks like a directive, to report malformed ones.
var directiveRegex = regexp.MustCompile(`^\s*//\s*@uvr:`)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps include names to the WGSL struct source injected in their place.
	registry map[string]string
}

// PreProcessor expands @uvr:include directives in WGSL source.
type PreProcessor interface {
	// Process replaces every include directive with its registered WGSL source. Each name is
	// expanded at most once; repeated directives for the same name are dropped.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: if a directive is malformed or names an unknown include
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's shared structs registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			IncludeCamera: uniform.CameraUniformSource,
			IncludeModel:  uniform.ModelUniformSource,
			IncludeVertex: mesh.VertexSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)

	for i, line := range lines {
		m := includeRegex.FindStringSubmatch(line)
		if m == nil {
			if directiveRegex.MatchString(line) {
				return "", fmt.Errorf("line %d: malformed directive %q", i+1, strings.TrimSpace(line))
			}
			out = append(out, line)
			continue
		}

		name := m[1]
		src, ok := p.registry[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown @uvr:include argument %q", i+1, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, src)
	}
	return strings.Join(out, "\n"), nil
}
