// Package shaders embeds the GLSL sources used by the scene renderers.
package shaders

import _ "embed"

// TerrainVertexShader transforms aPosition and passes its height on.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades by height with a flat tint.
//
//go:embed terrain.frag
var TerrainFragmentShader string
