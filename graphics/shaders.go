package graphics

// WGSL sources for every pipeline. Bind group convention across all
// passes: group 0 holds the global uniforms and samplers, group 1 the
// pass-specific bindings, group 2 the drawer's instance data.

// wgslGlobalBlock is shared by every shader below.
const wgslGlobalBlock = `
struct GlobalUniforms {
    view_projection: mat4x4<f32>,
    view: mat4x4<f32>,
    inverse_view_projection: mat4x4<f32>,
    camera_position: vec4<f32>,
    ambient_color: vec4<f32>,
    screen_size: vec2<f32>,
    pointer_position: vec2<f32>,
    animation_timer: f32,
    day_timer: f32,
    water_level: f32,
    padding: f32,
}
@group(0) @binding(0) var<uniform> global_uniforms: GlobalUniforms;
`

// shadowObjectShader renders depth-only geometry for the shadow passes.
// Group 1 binds the pass view-projection (one matrix slice per cube
// face for point shadows).
const shadowObjectShader = wgslGlobalBlock + `
struct PassUniforms {
    view_projection: mat4x4<f32>,
}
@group(1) @binding(0) var<uniform> pass_uniforms: PassUniforms;

struct Instance {
    transform: mat4x4<f32>,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

var<private> quad: array<vec2<f32>, 6> = array<vec2<f32>, 6>(
    vec2<f32>(-0.5, 1.0), vec2<f32>(-0.5, 0.0), vec2<f32>(0.5, 1.0),
    vec2<f32>(0.5, 1.0), vec2<f32>(-0.5, 0.0), vec2<f32>(0.5, 0.0),
);

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> @builtin(position) vec4<f32> {
    let corner = quad[vertex_index % 6u];
    let world = instances[instance_index].transform * vec4<f32>(corner.x, corner.y, 0.0, 1.0);
    return pass_uniforms.view_projection * world;
}
`

// geometryObjectShader renders entities and models into the forward
// color and depth targets.
const geometryObjectShader = wgslGlobalBlock + `
struct Instance {
    transform: mat4x4<f32>,
    color: vec4<f32>,
    frame: vec4<f32>,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

var<private> quad: array<vec2<f32>, 6> = array<vec2<f32>, 6>(
    vec2<f32>(-0.5, 1.0), vec2<f32>(-0.5, 0.0), vec2<f32>(0.5, 1.0),
    vec2<f32>(0.5, 1.0), vec2<f32>(-0.5, 0.0), vec2<f32>(0.5, 0.0),
);

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    let corner = quad[vertex_index % 6u];
    let instance = instances[instance_index];
    var output: VertexOutput;
    output.position = global_uniforms.view_projection * instance.transform * vec4<f32>(corner.x, corner.y, 0.0, 1.0);
    output.color = instance.color;
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return input.color;
}
`

// waterShader renders the animated water plane.
const waterShader = wgslGlobalBlock + `
struct WaterUniforms {
    color: vec4<f32>,
    water_level: f32,
    wave_amplitude: f32,
    wave_speed: f32,
    padding: f32,
}
@group(2) @binding(0) var<uniform> water_uniforms: WaterUniforms;

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32) -> @builtin(position) vec4<f32> {
    let extent = 512.0;
    var plane = array<vec2<f32>, 6>(
        vec2<f32>(-extent, -extent), vec2<f32>(extent, -extent), vec2<f32>(-extent, extent),
        vec2<f32>(-extent, extent), vec2<f32>(extent, -extent), vec2<f32>(extent, extent),
    );
    let corner = plane[vertex_index];
    let wave = sin(global_uniforms.animation_timer * water_uniforms.wave_speed + corner.x * 0.1) * water_uniforms.wave_amplitude;
    let world = vec4<f32>(corner.x, water_uniforms.water_level + wave, corner.y, 1.0);
    return global_uniforms.view_projection * world;
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return water_uniforms.color;
}
`

// indicatorShader renders the tile cursor indicator quad.
const indicatorShader = wgslGlobalBlock + `
struct IndicatorUniforms {
    upper_left: vec4<f32>,
    upper_right: vec4<f32>,
    lower_left: vec4<f32>,
    lower_right: vec4<f32>,
    color: vec4<f32>,
}
@group(2) @binding(0) var<uniform> indicator_uniforms: IndicatorUniforms;

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32) -> @builtin(position) vec4<f32> {
    var corners = array<vec4<f32>, 6>(
        indicator_uniforms.upper_left, indicator_uniforms.lower_left, indicator_uniforms.upper_right,
        indicator_uniforms.upper_right, indicator_uniforms.lower_left, indicator_uniforms.lower_right,
    );
    return global_uniforms.view_projection * vec4<f32>(corners[vertex_index].xyz, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return indicator_uniforms.color;
}
`

// rectangleShader renders screen-space rectangles; shared by the
// interface pass and all three screen rectangle layers.
const rectangleShader = wgslGlobalBlock + `
struct Instance {
    position: vec2<f32>,
    size: vec2<f32>,
    clip_min: vec2<f32>,
    clip_max: vec2<f32>,
    color: vec4<f32>,
    texture_position: vec2<f32>,
    texture_size: vec2<f32>,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

var<private> quad: array<vec2<f32>, 6> = array<vec2<f32>, 6>(
    vec2<f32>(0.0, 0.0), vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 0.0),
    vec2<f32>(1.0, 0.0), vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 1.0),
);

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    let instance = instances[instance_index];
    let corner = instance.position + quad[vertex_index] * instance.size;
    let ndc = vec2<f32>(
        corner.x / global_uniforms.screen_size.x * 2.0 - 1.0,
        1.0 - corner.y / global_uniforms.screen_size.y * 2.0,
    );
    var output: VertexOutput;
    output.position = vec4<f32>(ndc, 0.0, 1.0);
    output.color = instance.color;
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return input.color;
}
`

// pickerObjectShader writes 64-bit object identifiers into the picker
// target, split across the two 32-bit channels.
const pickerObjectShader = wgslGlobalBlock + `
struct Instance {
    transform: mat4x4<f32>,
    identifier_low: u32,
    identifier_high: u32,
    padding0: u32,
    padding1: u32,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) @interpolate(flat) identifier: vec2<u32>,
}

var<private> quad: array<vec2<f32>, 6> = array<vec2<f32>, 6>(
    vec2<f32>(-0.5, 1.0), vec2<f32>(-0.5, 0.0), vec2<f32>(0.5, 1.0),
    vec2<f32>(0.5, 1.0), vec2<f32>(-0.5, 0.0), vec2<f32>(0.5, 0.0),
);

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    let corner = quad[vertex_index % 6u];
    let instance = instances[instance_index];
    var output: VertexOutput;
    output.position = global_uniforms.view_projection * instance.transform * vec4<f32>(corner.x, corner.y, 0.0, 1.0);
    output.identifier = vec2<u32>(instance.identifier_low, instance.identifier_high);
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec2<u32> {
    return input.identifier;
}
`

// fullscreenLightShader computes one full-screen lighting contribution.
// Group 1 binds the forward depth and the interface buffer; group 2 the
// per-light data. Used by the ambient, directional and water light
// drawers with different light uniforms.
const fullscreenLightShader = wgslGlobalBlock + `
struct LightUniforms {
    color: vec4<f32>,
    direction: vec4<f32>,
}
@group(2) @binding(0) var<uniform> light_uniforms: LightUniforms;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32) -> VertexOutput {
    // Single full-screen triangle.
    let x = f32(i32(vertex_index / 2u) * 4 - 1);
    let y = f32(i32(vertex_index & 1u) * 4 - 1);
    var output: VertexOutput;
    output.position = vec4<f32>(x, y, 0.0, 1.0);
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return light_uniforms.color;
}
`

// pointLightShader accumulates point light contributions from an
// instance list, one full-screen triangle per light.
const pointLightShader = wgslGlobalBlock + `
struct Instance {
    position: vec4<f32>,
    color: vec4<f32>,
    range: f32,
    shadow_index: i32,
    padding0: f32,
    padding1: f32,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) @interpolate(flat) instance_index: u32,
}

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    let x = f32(i32(vertex_index / 2u) * 4 - 1);
    let y = f32(i32(vertex_index & 1u) * 4 - 1);
    var output: VertexOutput;
    output.position = vec4<f32>(x, y, 0.0, 1.0);
    output.instance_index = instance_index;
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    let instance = instances[input.instance_index];
    return instance.color;
}
`

// effectShader renders additive effect quads from four explicit corners.
const effectShader = wgslGlobalBlock + `
struct Instance {
    corners: array<vec4<f32>, 4>,
    color: vec4<f32>,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

var<private> corner_order: array<u32, 6> = array<u32, 6>(0u, 1u, 2u, 2u, 1u, 3u);

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    let instance = instances[instance_index];
    let corner = instance.corners[corner_order[vertex_index]];
    let ndc = vec2<f32>(
        corner.x / global_uniforms.screen_size.x * 2.0 - 1.0,
        1.0 - corner.y / global_uniforms.screen_size.y * 2.0,
    );
    var output: VertexOutput;
    output.position = vec4<f32>(ndc, 0.0, 1.0);
    output.color = instance.color;
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return input.color;
}
`

// debugLineShader renders wireframe boxes and circles for the debug
// overlays.
const debugLineShader = wgslGlobalBlock + `
struct Instance {
    transform: mat4x4<f32>,
    color: vec4<f32>,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    // Unit cube corner per vertex index, expanded by the edge list on
    // the CPU side (24 vertices, 12 edges).
    let corner = vec3<f32>(
        f32(vertex_index & 1u) - 0.5,
        f32((vertex_index >> 1u) & 1u) - 0.5,
        f32((vertex_index >> 2u) & 1u) - 0.5,
    );
    let instance = instances[instance_index];
    var output: VertexOutput;
    output.position = global_uniforms.view_projection * instance.transform * vec4<f32>(corner, 1.0);
    output.color = instance.color;
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return input.color;
}
`

// bufferOverlayShader blits an intermediate buffer for inspection.
const bufferOverlayShader = wgslGlobalBlock + `
@group(1) @binding(0) var pass_depth: texture_depth_2d;
@group(1) @binding(1) var pass_interface: texture_2d<f32>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32) -> VertexOutput {
    let x = f32(i32(vertex_index / 2u) * 4 - 1);
    let y = f32(i32(vertex_index & 1u) * 4 - 1);
    var output: VertexOutput;
    output.position = vec4<f32>(x, y, 0.0, 1.0);
    output.uv = vec2<f32>(x, -y) * 0.5 + vec2<f32>(0.5, 0.5);
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    let coords = vec2<i32>(input.uv * global_uniforms.screen_size);
    let depth = textureLoad(pass_depth, coords, 0);
    return vec4<f32>(depth, depth, depth, 1.0);
}
`

// overlayShader composites the interface buffer over the screen.
const overlayShader = wgslGlobalBlock + `
@group(1) @binding(0) var pass_depth: texture_depth_2d;
@group(1) @binding(1) var pass_interface: texture_2d<f32>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32) -> VertexOutput {
    let x = f32(i32(vertex_index / 2u) * 4 - 1);
    let y = f32(i32(vertex_index & 1u) * 4 - 1);
    var output: VertexOutput;
    output.position = vec4<f32>(x, y, 0.0, 1.0);
    output.uv = vec2<f32>(x, -y) * 0.5 + vec2<f32>(0.5, 0.5);
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    let coords = vec2<i32>(input.uv * global_uniforms.screen_size);
    return textureLoad(pass_interface, coords, 0);
}
`

// shadowIndicatorShader renders the tile indicator into a shadow map so
// the cursor highlight casts onto the ground.
const shadowIndicatorShader = wgslGlobalBlock + `
struct PassUniforms {
    view_projection: mat4x4<f32>,
}
@group(1) @binding(0) var<uniform> pass_uniforms: PassUniforms;

struct IndicatorUniforms {
    upper_left: vec4<f32>,
    upper_right: vec4<f32>,
    lower_left: vec4<f32>,
    lower_right: vec4<f32>,
    color: vec4<f32>,
}
@group(2) @binding(0) var<uniform> indicator_uniforms: IndicatorUniforms;

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32) -> @builtin(position) vec4<f32> {
    var corners = array<vec4<f32>, 6>(
        indicator_uniforms.upper_left, indicator_uniforms.lower_left, indicator_uniforms.upper_right,
        indicator_uniforms.upper_right, indicator_uniforms.lower_left, indicator_uniforms.lower_right,
    );
    return pass_uniforms.view_projection * vec4<f32>(corners[vertex_index].xyz, 1.0);
}
`

// pickerTileShader renders the map tile grid from the map-owned vertex
// buffer; each vertex carries its tile identifier.
const pickerTileShader = wgslGlobalBlock + `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) @interpolate(flat) identifier: vec2<u32>,
}

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) identifier: vec2<u32>) -> VertexOutput {
    var output: VertexOutput;
    output.position = global_uniforms.view_projection * vec4<f32>(position, 1.0);
    output.identifier = identifier;
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec2<u32> {
    return input.identifier;
}
`

// pickerMarkerShader renders clickable debug marker quads into the
// picker target.
const pickerMarkerShader = wgslGlobalBlock + `
struct Instance {
    position: vec2<f32>,
    size: vec2<f32>,
    identifier_low: u32,
    identifier_high: u32,
    padding0: u32,
    padding1: u32,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) @interpolate(flat) identifier: vec2<u32>,
}

var<private> quad: array<vec2<f32>, 6> = array<vec2<f32>, 6>(
    vec2<f32>(0.0, 0.0), vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 0.0),
    vec2<f32>(1.0, 0.0), vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 1.0),
);

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    let instance = instances[instance_index];
    let corner = instance.position + quad[vertex_index] * instance.size;
    let ndc = vec2<f32>(
        corner.x / global_uniforms.screen_size.x * 2.0 - 1.0,
        1.0 - corner.y / global_uniforms.screen_size.y * 2.0,
    );
    var output: VertexOutput;
    output.position = vec4<f32>(ndc, 0.0, 1.0);
    output.identifier = vec2<u32>(instance.identifier_low, instance.identifier_high);
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec2<u32> {
    return input.identifier;
}
`

// debugCircleShader renders screen-space debug circles, discarding
// fragments outside the radius.
const debugCircleShader = wgslGlobalBlock + `
struct Instance {
    position: vec2<f32>,
    size: vec2<f32>,
    color: vec4<f32>,
}
@group(2) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
    @location(1) local: vec2<f32>,
}

var<private> quad: array<vec2<f32>, 6> = array<vec2<f32>, 6>(
    vec2<f32>(0.0, 0.0), vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 0.0),
    vec2<f32>(1.0, 0.0), vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 1.0),
);

@vertex
fn vs_main(@builtin(vertex_index) vertex_index: u32, @builtin(instance_index) instance_index: u32) -> VertexOutput {
    let instance = instances[instance_index];
    let unit = quad[vertex_index];
    let corner = instance.position + unit * instance.size;
    let ndc = vec2<f32>(
        corner.x / global_uniforms.screen_size.x * 2.0 - 1.0,
        1.0 - corner.y / global_uniforms.screen_size.y * 2.0,
    );
    var output: VertexOutput;
    output.position = vec4<f32>(ndc, 0.0, 1.0);
    output.color = instance.color;
    output.local = unit - vec2<f32>(0.5, 0.5);
    return output;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    if (length(input.local) > 0.5) {
        discard;
    }
    return input.color;
}
`
