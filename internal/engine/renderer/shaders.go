package renderer

// Vertex layout: location 0 position, location 1 normal.

const litVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat4 uLightViewProj;

out vec3 vWorldPos;
out vec3 vNormal;
out vec4 vLightPos;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(transpose(inverse(uModel))) * aNormal;
    vLightPos = uLightViewProj * world;
    gl_Position = uProjection * uView * world;
}
`

const litFragmentShader = `#version 410 core
#define MAX_DIR_LIGHTS 4
const float PI = 3.14159265;

in vec3 vWorldPos;
in vec3 vNormal;
in vec4 vLightPos;

uniform vec3 uCameraPos;

uniform vec3 uBaseColor;
uniform float uOpacity;
uniform float uRoughness;
uniform float uMetalness;
uniform float uClearcoat;
uniform float uClearcoatRoughness;
uniform float uEnvIntensity;
uniform bool uDoubleSided;

uniform vec3 uAmbient;
uniform vec3 uHemiSky;
uniform vec3 uHemiGround;

uniform int uDirCount;
uniform vec3 uDirDirection[MAX_DIR_LIGHTS];
uniform vec3 uDirRadiance[MAX_DIR_LIGHTS];
uniform int uShadowLight;

uniform vec3 uSpotPosition;
uniform vec3 uSpotDirection;
uniform vec3 uSpotRadiance;
uniform vec2 uSpotCos;
uniform float uSpotDecay;
uniform float uSpotDistance;

uniform bool uUseEnvMap;
uniform samplerCube uEnvMap;
uniform bool uReceiveShadow;
uniform sampler2DShadow uShadowMap;

uniform float uExposure;
uniform bool uToneMap;

out vec4 FragColor;

float distributionGGX(float NdotH, float a) {
    float a2 = a * a;
    float d = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

float geometrySmith(float NdotV, float NdotL, float roughness) {
    float k = (roughness + 1.0) * (roughness + 1.0) / 8.0;
    float gv = NdotV / (NdotV * (1.0 - k) + k);
    float gL = NdotL / (NdotL * (1.0 - k) + k);
    return gv * gL;
}

vec3 fresnel(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(1.0 - cosTheta, 5.0);
}

vec3 brdf(vec3 N, vec3 V, vec3 L, vec3 albedo, vec3 F0, float roughness) {
    vec3 H = normalize(V + L);
    float NdotL = max(dot(N, L), 0.0);
    float NdotV = max(dot(N, V), 1e-4);
    float NdotH = max(dot(N, H), 0.0);
    float a = max(roughness * roughness, 0.002);

    vec3 F = fresnel(max(dot(H, V), 0.0), F0);
    vec3 spec = distributionGGX(NdotH, a) * geometrySmith(NdotV, NdotL, roughness) * F
        / (4.0 * NdotV * max(NdotL, 1e-4));
    vec3 kd = (1.0 - F) * (1.0 - uMetalness);
    return (kd * albedo / PI + spec) * NdotL;
}

float shadowFactor() {
    vec3 p = vLightPos.xyz / vLightPos.w * 0.5 + 0.5;
    if (p.z > 1.0) {
        return 1.0;
    }
    float bias = 0.0015;
    vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * texel, p.z - bias));
        }
    }
    return lit / 9.0;
}

vec3 acesFilm(vec3 x) {
    return clamp((x * (2.51 * x + 0.03)) / (x * (2.43 * x + 0.59) + 0.14), 0.0, 1.0);
}

void main() {
    vec3 N = normalize(vNormal);
    vec3 V = normalize(uCameraPos - vWorldPos);
    if (uDoubleSided && dot(N, V) < 0.0) {
        N = -N;
    }

    vec3 albedo = uBaseColor;
    float roughness = clamp(uRoughness, 0.04, 1.0);
    vec3 F0 = mix(vec3(0.04), albedo, uMetalness);

    vec3 color = vec3(0.0);
    float shadow = uReceiveShadow ? shadowFactor() : 1.0;
    for (int i = 0; i < uDirCount; i++) {
        vec3 L = normalize(uDirDirection[i]);
        vec3 c = brdf(N, V, L, albedo, F0, roughness) * uDirRadiance[i] * PI;
        if (i == uShadowLight) {
            c *= shadow;
        }
        color += c;
    }

    vec3 toSpot = uSpotPosition - vWorldPos;
    float dist = length(toSpot);
    vec3 Ls = toSpot / dist;
    float cone = smoothstep(uSpotCos.y, uSpotCos.x, dot(-Ls, normalize(uSpotDirection)));
    float falloff = pow(clamp(1.0 - dist / uSpotDistance, 0.0, 1.0), uSpotDecay);
    color += brdf(N, V, Ls, albedo, F0, roughness) * uSpotRadiance * PI * cone * falloff;

    float up = dot(N, vec3(0.0, 1.0, 0.0)) * 0.5 + 0.5;
    vec3 indirect = uAmbient + mix(uHemiGround, uHemiSky, up);
    color += indirect * albedo * (1.0 - uMetalness);

    vec3 R = reflect(-V, N);
    float NdotV = max(dot(N, V), 0.0);
    if (uUseEnvMap) {
        float lod = roughness * 6.0;
        vec3 env = textureLod(uEnvMap, R, lod).rgb;
        color += env * fresnel(NdotV, F0) * uEnvIntensity;
    } else {
        color += indirect * F0 * 0.25 * uEnvIntensity;
    }

    if (uClearcoat > 0.0) {
        float ccRough = clamp(uClearcoatRoughness, 0.04, 1.0);
        vec3 ccF = fresnel(NdotV, vec3(0.04)) * uClearcoat;
        vec3 coat = vec3(0.0);
        for (int i = 0; i < uDirCount; i++) {
            vec3 L = normalize(uDirDirection[i]);
            vec3 H = normalize(V + L);
            float NdotL = max(dot(N, L), 0.0);
            float D = distributionGGX(max(dot(N, H), 0.0), ccRough * ccRough);
            coat += D * NdotL * uDirRadiance[i] * 0.25;
        }
        if (uUseEnvMap) {
            coat += textureLod(uEnvMap, R, ccRough * 6.0).rgb * uEnvIntensity;
        }
        color = color * (1.0 - ccF) + coat * ccF;
    }

    // environment captures stay linear HDR
    if (uToneMap) {
        color = pow(acesFilm(color * uExposure), vec3(1.0 / 2.2));
    }
    FragColor = vec4(color, uOpacity);
}
`

// depthVertexShader renders shadow casters from the light.
const depthVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;

uniform mat4 uModel;
uniform mat4 uLightViewProj;

void main() {
    gl_Position = uLightViewProj * uModel * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `#version 410 core
void main() {
}
`
