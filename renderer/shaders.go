package renderer

// Uniform names shared by the fragment stage and Background.
const (
	uniformTime          = "iTime"
	uniformResolution    = "iResolution"
	uniformScale         = "uScale"
	uniformGridMul       = "uGridMul"
	uniformDigitSize     = "uDigitSize"
	uniformScanline      = "uScanlineIntensity"
	uniformGlitch        = "uGlitchAmount"
	uniformFlicker       = "uFlickerAmount"
	uniformNoiseAmp      = "uNoiseAmp"
	uniformCurvature     = "uCurvature"
	uniformTint          = "uTint"
	uniformMouse         = "uMouse"
	uniformMouseStrength = "uMouseStrength"
	uniformUseMouse      = "uUseMouse"
	uniformBrightness    = "uBrightness"
	uniformAspect        = "uAspect"
)

// VertexShader passes clip-space positions through untransformed. The
// full-screen triangle (-1,-1) (3,-1) (-1,3) covers the viewport and vUv
// spans [0,1]² over the visible part.
const VertexShader = `#version 330

in vec3 vertexPosition;

out vec2 vUv;

void main()
{
    vUv = vertexPosition.xy*0.5 + 0.5;
    gl_Position = vec4(vertexPosition.xy, 0.0, 1.0);
}
`

// FragmentShader draws the terminal grid. effect.Shade is its CPU twin;
// constants must change in both places.
const FragmentShader = `#version 330

in vec2 vUv;

out vec4 finalColor;

uniform float iTime;
uniform vec3  iResolution;
uniform float uScale;
uniform vec2  uGridMul;
uniform float uDigitSize;
uniform float uScanlineIntensity;
uniform float uGlitchAmount;
uniform float uFlickerAmount;
uniform float uNoiseAmp;
uniform float uCurvature;
uniform vec3  uTint;
uniform vec2  uMouse;
uniform float uMouseStrength;
uniform float uUseMouse;
uniform float uBrightness;
uniform float uAspect;

float slowTime;

mat2 rot(float a)
{
    float c = cos(a);
    float s = sin(a);
    return mat2(c, -s, s, c);
}

float noise(vec2 p)
{
    return sin(p.x*10.0)*sin(p.y*3.0 + slowTime*0.3) + 0.2;
}

float fbm(vec2 p)
{
    float amp = 0.5*uNoiseAmp;
    float f = amp*noise(p);

    p = rot(slowTime*0.02)*p*2.0;
    amp *= 0.5;
    f += amp*noise(p);

    return f;
}

float pattern(vec2 p)
{
    vec2 warp = vec2(fbm(p + 1.0), fbm(rot(slowTime*0.1)*p + 1.0));
    return fbm(p + warp);
}

float cellIntensity(vec2 s)
{
    float v = pattern(s*0.1)*1.3 - 0.03;

    if (uUseMouse > 0.5) {
        vec2 m = uMouse*uScale;
        m.x *= uAspect;
        float d = distance(s, m);
        float glow = exp(-d*8.0)*uMouseStrength*10.0;
        v += glow;
        v += sin(d*20.0 - iTime*5.0)*0.1*glow;
    }
    return v;
}

float digit(vec2 p)
{
    vec2 grid = uGridMul*15.0;
    vec2 s = floor(p*grid)/grid;
    p = p*grid;

    float v = cellIntensity(s);

    p = fract(p)*uDigitSize;

    float px5 = p.x*5.0;
    float py5 = (1.0 - p.y)*5.0;

    float i = floor(py5) - 2.0;
    float j = floor(px5) - 2.0;
    float f = (i*i + j*j)*0.0625;

    float on = step(0.1, v - f);
    float b = on*(0.2 + fract(py5)*0.8)*(0.75 + fract(px5)*0.25);

    return step(0.0, p.x)*step(p.x, 1.0)*step(0.0, p.y)*step(p.y, 1.0)*b;
}

float onOff(float a, float b, float c)
{
    return step(c, sin(iTime + a*cos(iTime*b)))*uFlickerAmount;
}

vec3 terminal(vec2 p)
{
    float bar = (step(mod(p.y + slowTime*20.0, 1.0), 0.2)*0.4 + 1.0)*uScanlineIntensity;

    float y = p.y - mod(iTime*0.25, 1.0);
    float window = 1.0/(1.0 + 50.0*y*y);
    float displacement = sin(p.y*20.0 + iTime)*0.0125*onOff(4.0, 2.0, 0.8)*(1.0 + cos(iTime*60.0))*window;
    p.x += displacement*uGlitchAmount;

    float d = digit(p);
    float glow = d*0.3;

    return vec3(d*0.9 + glow)*bar;
}

vec2 barrel(vec2 uv)
{
    vec2 c = uv*2.0 - 1.0;
    c *= 1.0 + uCurvature*dot(c, c);
    return c*0.5 + 0.5;
}

void main()
{
    slowTime = iTime*0.333333;

    vec2 uv = vUv;
    if (uCurvature != 0.0) {
        uv = barrel(uv);
    }

    vec2 p = uv*uScale;
    p.x *= uAspect;

    finalColor = vec4(terminal(p)*uTint*uBrightness, 1.0);
}
`
