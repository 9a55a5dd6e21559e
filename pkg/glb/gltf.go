// Package glb reads, writes and validates binary glTF 2.0 containers.
//
// The document types cover the subset of the glTF 2.0 schema a converted
// table uses: scenes, nodes, meshes, accessors, buffer views, materials with
// the transmission extension, textures, cameras and punctual lights.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package glb

// Extension names.
const (
	ExtLightsPunctual       = "KHR_lights_punctual"
	ExtMaterialTransmission = "KHR_materials_transmission"
)

// Document is the root of the JSON chunk.
type Document struct {
	Asset              Asset         `json:"asset"`
	ExtensionsUsed     []string      `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string      `json:"extensionsRequired,omitempty"`
	Scene              *int          `json:"scene,omitempty"`
	Scenes             []Scene       `json:"scenes,omitempty"`
	Nodes              []Node        `json:"nodes,omitempty"`
	Meshes             []Mesh        `json:"meshes,omitempty"`
	Accessors          []Accessor    `json:"accessors,omitempty"`
	BufferViews        []BufferView  `json:"bufferViews,omitempty"`
	Buffers            []Buffer      `json:"buffers,omitempty"`
	Materials          []Material    `json:"materials,omitempty"`
	Textures           []Texture     `json:"textures,omitempty"`
	Images             []Image       `json:"images,omitempty"`
	Samplers           []Sampler     `json:"samplers,omitempty"`
	Cameras            []Camera      `json:"cameras,omitempty"`
	Extensions         *DocumentExts `json:"extensions,omitempty"`
}

// Asset is the asset metadata. Version must be "2.0".
type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
	Copyright string `json:"copyright,omitempty"`
}

// DocumentExts holds the root-level extensions.
type DocumentExts struct {
	LightsPunctual *LightsPunctual `json:"KHR_lights_punctual,omitempty"`
}

// Scene lists root node indices.
type Scene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// Node is one element of the node hierarchy. Extras holds string metadata
// such as the originating object kind.
type Node struct {
	Name        string            `json:"name,omitempty"`
	Children    []int             `json:"children,omitempty"`
	Mesh        *int              `json:"mesh,omitempty"`
	Camera      *int              `json:"camera,omitempty"`
	Translation *[3]float32       `json:"translation,omitempty"`
	Rotation    *[4]float32       `json:"rotation,omitempty"` // x, y, z, w
	Scale       *[3]float32       `json:"scale,omitempty"`
	Extensions  *NodeExts         `json:"extensions,omitempty"`
	Extras      map[string]string `json:"extras,omitempty"`
}

// NodeExts holds the node-level extensions.
type NodeExts struct {
	LightsPunctual *NodeLight `json:"KHR_lights_punctual,omitempty"`
}

// NodeLight attaches a punctual light to a node.
type NodeLight struct {
	Light int `json:"light"`
}

// Mesh is a set of primitives.
type Mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive is one draw of a mesh.
type Primitive struct {
	// Attributes maps a semantic (POSITION, NORMAL, TEXCOORD_0) to an
	// accessor index.
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"`
}

// Attribute semantics.
const (
	AttrPosition = "POSITION"
	AttrNormal   = "NORMAL"
	AttrTexCoord = "TEXCOORD_0"
)

// Primitive modes. Only triangles are written.
const (
	ModeTriangles = 4
)

// Accessor describes typed data inside a buffer view.
type Accessor struct {
	Name          string    `json:"name,omitempty"`
	BufferView    *int      `json:"bufferView,omitempty"`
	ByteOffset    int       `json:"byteOffset,omitempty"`
	ComponentType int       `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
}

// Accessor component types.
const (
	ComponentByte          = 5120
	ComponentUnsignedByte  = 5121
	ComponentShort         = 5122
	ComponentUnsignedShort = 5123
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126
)

// Accessor element types.
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
	TypeVec4   = "VEC4"
	TypeMat4   = "MAT4"
)

// ComponentSize returns the byte size of a component type, or 0 when the
// type is unknown.
func ComponentSize(componentType int) int {
	switch componentType {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	}
	return 0
}

// ComponentCount returns the number of components of an element type, or 0
// when the type is unknown.
func ComponentCount(typ string) int {
	switch typ {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	case TypeMat4:
		return 16
	}
	return 0
}

// BufferView is a slice of a buffer.
type BufferView struct {
	Name       string `json:"name,omitempty"`
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset,omitempty"`
	ByteLength int    `json:"byteLength"`
	ByteStride int    `json:"byteStride,omitempty"`
	Target     int    `json:"target,omitempty"`
}

// Buffer view targets.
const (
	TargetArrayBuffer        = 34962
	TargetElementArrayBuffer = 34963
)

// Buffer is a binary blob. In a GLB the first buffer has no URI and refers
// to the BIN chunk.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
}

// Material is a metallic-roughness material.
type Material struct {
	Name                 string                `json:"name,omitempty"`
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	AlphaMode            string                `json:"alphaMode,omitempty"` // default OPAQUE
	DoubleSided          bool                  `json:"doubleSided,omitempty"`
	Extensions           *MaterialExts         `json:"extensions,omitempty"`
}

// Alpha modes.
const (
	AlphaOpaque = "OPAQUE"
	AlphaBlend  = "BLEND"
)

// PBRMetallicRoughness holds the core PBR parameters.
type PBRMetallicRoughness struct {
	BaseColorFactor  *[4]float32  `json:"baseColorFactor,omitempty"` // default 1, 1, 1, 1
	BaseColorTexture *TextureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor   *float32     `json:"metallicFactor,omitempty"`  // default 1
	RoughnessFactor  *float32     `json:"roughnessFactor,omitempty"` // default 1
}

// TextureInfo references a texture.
type TextureInfo struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

// MaterialExts holds the material-level extensions.
type MaterialExts struct {
	Transmission *Transmission `json:"KHR_materials_transmission,omitempty"`
}

// Transmission is the KHR_materials_transmission extension.
type Transmission struct {
	Factor float32 `json:"transmissionFactor"`
}

// Texture pairs an image with a sampler.
type Texture struct {
	Name    string `json:"name,omitempty"`
	Sampler *int   `json:"sampler,omitempty"`
	Source  *int   `json:"source,omitempty"`
}

// Image is an embedded image. In a GLB it refers to a buffer view.
type Image struct {
	Name       string `json:"name,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
	URI        string `json:"uri,omitempty"`
}

// Sampler sets texture filtering and wrapping.
type Sampler struct {
	MagFilter int `json:"magFilter,omitempty"`
	MinFilter int `json:"minFilter,omitempty"`
	WrapS     int `json:"wrapS,omitempty"`
	WrapT     int `json:"wrapT,omitempty"`
}

// Sampler filter and wrap values.
const (
	FilterLinear             = 9729
	FilterLinearMipmapLinear = 9987
	WrapClampToEdge          = 33071
	WrapRepeat               = 10497
)

// Camera is a camera projection.
type Camera struct {
	Name        string       `json:"name,omitempty"`
	Type        string       `json:"type"`
	Perspective *Perspective `json:"perspective,omitempty"`
}

// CameraPerspective is the camera type written for view cameras.
const CameraPerspective = "perspective"

// Perspective is a perspective projection. A zero Zfar means infinite.
type Perspective struct {
	AspectRatio float32 `json:"aspectRatio,omitempty"`
	YFov        float32 `json:"yfov"`
	Zfar        float32 `json:"zfar,omitempty"`
	Znear       float32 `json:"znear"`
}

// LightsPunctual is the root KHR_lights_punctual extension.
type LightsPunctual struct {
	Lights []Light `json:"lights"`
}

// Light is a punctual light. A zero Range means unlimited.
type Light struct {
	Name      string      `json:"name,omitempty"`
	Type      string      `json:"type"`
	Color     *[3]float32 `json:"color,omitempty"`
	Intensity *float32    `json:"intensity,omitempty"`
	Range     float32     `json:"range,omitempty"`
}

// LightPoint is the light type written for point lights.
const LightPoint = "point"

// Ptr returns a pointer to v. Optional schema fields are pointers so that a
// zero index can be told apart from an absent one.
func Ptr[T any](v T) *T {
	return &v
}
