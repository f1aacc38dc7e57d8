// Package translator runs WebGL2 shader sources through goshadertranslator to
// produce desktop GLSL 330.
package translator

import (
	"context"
	"fmt"
	"log"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	once       sync.Once
	initErr    error
)

// Stage names understood by the translator.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
)

// Shader is a translated shader: its GLSL 330 code and the names the
// translator gave each declared variable.
type Shader struct {
	Code  string
	Names map[string]string
}

// Translator converts WebGL2 GLSL ES 3.00 to GLSL 330.
type Translator struct {
	t *gst.ShaderTranslator
}

// Get returns the process-wide translator, creating its runtime on first use.
func Get() (*Translator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr == nil {
			log.Printf("Shader translator initialized")
		}
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", initErr)
	}
	return &Translator{t: translator}, nil
}

// Translate converts source for the given stage.
func (t *Translator) Translate(source, stage string) (*Shader, error) {
	out, err := t.t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	s := &Shader{
		Code:  out.Code,
		Names: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		s.Names[name] = v.MappedName
	}
	return s, nil
}

// MappedName returns the translated name for name, or name itself if the
// translator left it alone.
func (s *Shader) MappedName(name string) string {
	if mapped, ok := s.Names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}
