package app

// Lit pass. texture1 is bound through the metalness map slot and carries the
// packed light-space depth rendered by the shadow pass.
const litVertexShader = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
uniform mat4 lightVP;

out vec3 fragPosition;
out vec3 fragNormal;
out vec4 fragLightSpace;

void main() {
    vec4 world = matModel * vec4(vertexPosition, 1.0);
    fragPosition = world.xyz;
    fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
    fragLightSpace = lightVP * world;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const litFragmentShader = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
in vec4 fragLightSpace;

uniform sampler2D texture1;

uniform vec3 viewPos;
uniform vec3 baseColor;
uniform float roughness;
uniform float metalness;
uniform vec3 emissive;
uniform float unlit;
uniform float receiveShadow;

uniform vec3 ambientColor;
uniform vec3 dirColor;
uniform vec3 dirDirection;
uniform float shadowEnabled;
uniform float shadowTexel;

uniform vec3 pointColor;
uniform vec3 pointPosition;
uniform float pointDistance;
uniform float pointDecay;

out vec4 finalColor;

float unpackDepth(vec3 c) {
    return dot(c, vec3(1.0, 1.0/255.0, 1.0/65025.0));
}

float shadowFactor(vec3 n, vec3 l) {
    if (shadowEnabled < 0.5 || receiveShadow < 0.5) return 1.0;
    vec3 p = fragLightSpace.xyz / fragLightSpace.w * 0.5 + 0.5;
    if (p.x < 0.0 || p.x > 1.0 || p.y < 0.0 || p.y > 1.0 || p.z > 1.0) return 1.0;
    float bias = max(0.004 * (1.0 - dot(n, l)), 0.001);
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            float d = unpackDepth(texture(texture1, p.xy + vec2(x, y) * shadowTexel).rgb);
            lit += (p.z - bias > d) ? 0.0 : 1.0;
        }
    }
    return lit / 9.0;
}

vec3 shade(vec3 n, vec3 v, vec3 l, vec3 radiance) {
    float ndl = max(dot(n, l), 0.0);
    vec3 h = normalize(l + v);
    float shininess = mix(128.0, 2.0, roughness);
    float specular = pow(max(dot(n, h), 0.0), shininess) * (1.0 - roughness * 0.9);
    vec3 diffuse = baseColor * (1.0 - metalness);
    vec3 specColor = mix(vec3(0.04), baseColor, metalness);
    return (diffuse + specColor * specular) * radiance * ndl;
}

void main() {
    if (unlit > 0.5) {
        finalColor = vec4(baseColor, 1.0);
        return;
    }
    vec3 n = normalize(fragNormal);
    vec3 v = normalize(viewPos - fragPosition);
    if (dot(n, v) < 0.0) n = -n;

    vec3 color = baseColor * ambientColor;

    vec3 l = normalize(-dirDirection);
    color += shade(n, v, l, dirColor) * shadowFactor(n, l);

    vec3 toPoint = pointPosition - fragPosition;
    float dist = length(toPoint);
    float atten = 1.0 / max(pow(dist, pointDecay), 0.01);
    if (pointDistance > 0.0) {
        float r = clamp(1.0 - pow(dist / pointDistance, 4.0), 0.0, 1.0);
        atten *= r * r;
    }
    color += shade(n, v, toPoint / max(dist, 0.0001), pointColor * atten);

    color += emissive;
    finalColor = vec4(clamp(color, 0.0, 1.0), 1.0);
}
`

// Depth pass from the directional light. Depth is packed into RGB so the
// shadow map works on plain color render textures.
const depthVertexShader = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
void main() {
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const depthFragmentShader = `#version 330
out vec4 finalColor;
void main() {
    float d = gl_FragCoord.z;
    vec3 enc = fract(d * vec3(1.0, 255.0, 65025.0));
    enc -= enc.yzz * vec3(1.0/255.0, 1.0/255.0, 0.0);
    finalColor = vec4(enc, 1.0);
}
`
