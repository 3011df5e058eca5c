package renderer

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const fragmentShader = `
#version 410 core

in vec3 vColor;

uniform vec3 uColor;
uniform float uOpacity;
uniform bool uVertexColors;

out vec4 FragColor;

void main() {
	vec3 c = uColor;
	if (uVertexColors) {
		c *= vColor;
	}
	FragColor = vec4(c, uOpacity);
}
`
