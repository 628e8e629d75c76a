package primitives

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mesh names understood by Draw and DrawWithTexture.
const (
	Cube   = "cube"
	Plane  = "plane"
	Sphere = "sphere"
	Torus  = "torus"
)

// Surface is the per-draw material: albedo color, lighting response and, for textured draws,
// how the alpha cutoff treats removed texels. Opacity 0 is drawn as 1.
type Surface struct {
	Color             color.NRGBA
	Opacity           float32
	Metalness         float32
	Roughness         float32
	EmissiveIntensity float32
	AlphaCutoff       float32
	// Tinted fills texels under the cutoff with Color and multiplies the rest by it.
	// Untinted cutout texels are discarded.
	Tinted bool
}

// cached holds mesh and material for a primitive type. Created lazily on first Draw.
// texturedMtl is used when drawing with an albedo texture (same mesh, different material).
type cached struct {
	mesh        rl.Mesh
	mtl         rl.Material
	texturedMtl rl.Material
}

// Registry maps primitive names to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[string]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no meshes.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.4, 0.8, 1},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

const (
	sphereRings  = 24
	sphereSlices = 24
	torusRadSeg  = 32
	torusSides   = 16
)

// ensure creates the mesh and both materials for name if not yet cached.
// Unit sizes: cube 1x1x1, plane 1x1 facing +Y, sphere radius 1, torus major radius 1.
func (r *Registry) ensure(name string) bool {
	if _, ok := r.cache[name]; ok {
		return true
	}
	var mesh rl.Mesh
	switch name {
	case Cube:
		mesh = rl.GenMeshCube(1, 1, 1)
	case Plane:
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	case Sphere:
		mesh = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	case Torus:
		// raylib scales a unit-major torus by size; radius is the tube/major ratio.
		mesh = rl.GenMeshTorus(TorusTubeRatio, 1, torusRadSeg, torusSides)
	default:
		return false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	texturedMtl := rl.LoadMaterialDefault()
	if ts := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(ts) {
		texturedMtl.Shader = ts
	}
	r.cache[name] = cached{mesh: mesh, mtl: mtl, texturedMtl: texturedMtl}
	return true
}

// TorusTubeRatio is the tube radius of the torus mesh relative to its major radius (1).
// Scale the mesh uniformly by the major radius.
const TorusTubeRatio = 0.25

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float emissive;
uniform float opacity;
out vec4 finalColor;
void main() {
  vec3 base = colDiffuse.rgb;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = base * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * base;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular + base * emissive, opacity);
}
`
	// litTexturedFS: albedo from the texture; texels under alphaCutoff are either filled with
	// colDiffuse (tinted) or discarded.
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float emissive;
uniform float opacity;
uniform float alphaCutoff;
uniform float tinted;
uniform sampler2D texture0;
out vec4 finalColor;
void main() {
  vec4 texColor = texture(texture0, fragTexCoord);
  vec3 base;
  float alpha = opacity;
  if (texColor.a < alphaCutoff) {
    if (tinted < 0.5) discard;
    base = colDiffuse.rgb;
  } else {
    base = texColor.rgb * colDiffuse.rgb;
    alpha = opacity * texColor.a;
  }
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = base * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * base;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular + base * emissive, alpha);
}
`
)

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.3, 0.3, 0.34, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0–1).
const defaultLightIntensity = float32(0.8)

// SpecularPower maps roughness (0 smooth, 1 rough) to a Blinn-Phong exponent.
func SpecularPower(roughness float32) float32 {
	return 4 + (1-clamp01(roughness))*92
}

// SpecularStrength maps metalness to the highlight weight.
func SpecularStrength(metalness float32) float32 {
	return 0.1 + clamp01(metalness)*0.7
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// setUniforms sets the frame lighting and the surface terms on shader (cgo-safe: local arrays).
func (r *Registry) setUniforms(shader rl.Shader, s Surface) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	vec := func(name string, v []float32, typ rl.ShaderUniformDataType) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, typ, 1)
		}
	}
	scalar := func(name string, v float32) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
	vec("viewPos", viewPos[:], rl.ShaderUniformVec3)
	vec("lightDir", lightDir[:], rl.ShaderUniformVec3)
	vec("ambient", amb[:], rl.ShaderUniformVec4)
	vec("lightColor", lightColor[:], rl.ShaderUniformVec3)
	scalar("lightIntensity", defaultLightIntensity)
	scalar("specularPower", SpecularPower(s.Roughness))
	scalar("specularStrength", SpecularStrength(s.Metalness))
	scalar("emissive", s.EmissiveIntensity)
	opacity := s.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	scalar("opacity", opacity)
	scalar("alphaCutoff", s.AlphaCutoff)
	tinted := float32(0)
	if s.Tinted {
		tinted = 1
	}
	scalar("tinted", tinted)
}

func setAlbedo(mtl rl.Material, c color.NRGBA) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c.R, c.G, c.B, 255)
	}
}

// Transform builds scale, then rotation, then translation. rotation may be nil.
func Transform(position, scale [3]float32, rotation *rl.Matrix) rl.Matrix {
	sx, sy, sz := scale[0], scale[1], scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	m := rl.MatrixScale(sx, sy, sz)
	if rotation != nil {
		m = rl.MatrixMultiply(m, *rotation)
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(position[0], position[1], position[2]))
}

// Draw draws one instance of the named mesh with transform and a flat surface.
// Must be called between BeginMode3D and EndMode3D, after SetView. Unknown names are skipped.
func (r *Registry) Draw(name string, transform rl.Matrix, s Surface) {
	if !r.ensure(name) {
		return
	}
	c := r.cache[name]
	setAlbedo(c.mtl, s.Color)
	r.setUniforms(c.mtl.Shader, s)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// DrawWithTexture draws the named mesh with tex as albedo. An invalid texture falls back to Draw.
func (r *Registry) DrawWithTexture(name string, transform rl.Matrix, s Surface, tex rl.Texture2D) {
	if !rl.IsTextureValid(tex) {
		r.Draw(name, transform, s)
		return
	}
	if !r.ensure(name) {
		return
	}
	c := r.cache[name]
	rl.SetMaterialTexture(&c.texturedMtl, rl.MapAlbedo, tex)
	setAlbedo(c.texturedMtl, s.Color)
	r.setUniforms(c.texturedMtl.Shader, s)
	rl.DrawMesh(c.mesh, c.texturedMtl, transform)
}

// Unload releases every cached mesh and material. Call before the window closes.
func (r *Registry) Unload() {
	for name, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadShader(c.mtl.Shader)
		rl.UnloadShader(c.texturedMtl.Shader)
		delete(r.cache, name)
	}
}
