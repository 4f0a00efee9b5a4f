// Package shaders holds the GLSL sources used by the scene renderers.
package shaders

// TerrainVertexShader places one tile instance per draw instance. The
// per-instance model matrix occupies attribute locations 2 to 5.
const TerrainVertexShader = `#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec2 aTexCoord;
layout(location = 2) in mat4 aModel;

uniform mat4 uViewProj;
uniform vec3 uCameraPos;
uniform float uAmplitude;
uniform float uFrequency;
uniform float uTime;

out vec2 vTexCoord;
out float vHeight;
out float vDistance;

float heightAt(vec2 p) {
    return sin(p.x * uFrequency + uTime) * cos(p.y * uFrequency * 0.7)
         + 0.5 * sin((p.x + p.y) * uFrequency * 2.3);
}

void main() {
    vec4 world = aModel * vec4(aPosition, 1.0);
    float h = heightAt(world.xz);
    world.y += uAmplitude * h;

    vTexCoord = aTexCoord;
    vHeight = h;
    vDistance = length(world.xyz - uCameraPos);
    gl_Position = uViewProj * world;
}
`

// TerrainFragmentShader blends two colours by height and fades into fog.
const TerrainFragmentShader = `#version 410 core

in vec2 vTexCoord;
in float vHeight;
in float vDistance;

uniform vec3 uLowColor;
uniform vec3 uHighColor;
uniform vec3 uFogColor;
uniform float uFogFar;

out vec4 FragColor;

void main() {
    float t = clamp(vHeight * 0.33 + 0.5, 0.0, 1.0);
    vec3 color = mix(uLowColor, uHighColor, t);

    // Darken tile borders so the tessellation stays visible.
    vec2 edge = min(vTexCoord, 1.0 - vTexCoord);
    color *= mix(0.85, 1.0, smoothstep(0.0, 0.02, min(edge.x, edge.y)));

    float fog = clamp(vDistance / uFogFar, 0.0, 1.0);
    FragColor = vec4(mix(color, uFogColor, fog * fog), 1.0);
}
`
