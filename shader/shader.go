package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 330 core
layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_color;
out vec3 v_color;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(in_position, 1.0);
    v_color = in_color;
}
`

const fragmentShaderSourceGL = `#version 330 core
in vec3 v_color;
out vec4 fragColor;
void main() { fragColor = vec4(v_color, 1.0); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

// WebGL2 dialect, fed to the translator.
const vertexShaderSourceGLES = `#version 300 es
precision highp float;
layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_color;
out vec3 v_color;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(in_position, 1.0);
    v_color = in_color;
}
`

const fragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec3 v_color;
out vec4 fragColor;
void main() { fragColor = vec4(v_color, 1.0); }
`

// Uniform names declared by the vertex stage.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
)

// ────────────────────────────────── Public API ─────────────────────────────────

func VertexSource(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func FragmentSource(isGLES bool) string {
	if isGLES {
		return fragmentShaderSourceGLES
	}
	return fragmentShaderSourceGL
}
