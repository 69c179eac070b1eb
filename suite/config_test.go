package suite

import "testing"

// TestConfig_Defaults verifies the fixed defaults with a clean environment.
func TestConfig_Defaults(t *testing.T) {
	t.Setenv(EnvServiceName, "")
	t.Setenv(EnvOTLPEndpoint, "")
	t.Setenv(EnvEnvironment, "")
	t.Setenv(EnvTrigger, "")
	t.Setenv(EnvBrowser, "")
	t.Setenv(EnvHeadless, "")

	c := Config{}.withDefaults()

	if c.ServiceName != DefaultServiceName {
		t.Errorf("ServiceName = %q", c.ServiceName)
	}
	if c.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q", c.Endpoint)
	}
	if c.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q", c.Environment)
	}
	if c.Trigger != DefaultTrigger {
		t.Errorf("Trigger = %q", c.Trigger)
	}
	if c.Browser != DefaultBrowser {
		t.Errorf("Browser = %q", c.Browser)
	}
	if !c.headless() {
		t.Error("Headless should default to true")
	}
	if !c.insecure() {
		t.Error("Insecure should default to true")
	}
	if c.ViewportWidth != DefaultViewportWidth || c.ViewportHeight != DefaultViewportHeight {
		t.Errorf("viewport = %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
}

// TestConfig_EnvFallback verifies environment values apply to unset fields.
func TestConfig_EnvFallback(t *testing.T) {
	t.Setenv(EnvServiceName, "checkout-e2e")
	t.Setenv(EnvOTLPEndpoint, "http://collector:4317")
	t.Setenv(EnvEnvironment, "staging")
	t.Setenv(EnvTrigger, "ci")
	t.Setenv(EnvBrowser, "chrome")
	t.Setenv(EnvHeadless, "false")

	c := Config{}.withDefaults()

	if c.ServiceName != "checkout-e2e" {
		t.Errorf("ServiceName = %q", c.ServiceName)
	}
	if c.Endpoint != "http://collector:4317" {
		t.Errorf("Endpoint = %q", c.Endpoint)
	}
	if c.Environment != "staging" {
		t.Errorf("Environment = %q", c.Environment)
	}
	if c.Trigger != "ci" {
		t.Errorf("Trigger = %q", c.Trigger)
	}
	if c.Browser != "chrome" {
		t.Errorf("Browser = %q", c.Browser)
	}
	if c.headless() {
		t.Error("TRACEWRIGHT_HEADLESS=false should disable headless")
	}
}

// TestConfig_ConstructorWins verifies explicit values beat the environment.
func TestConfig_ConstructorWins(t *testing.T) {
	t.Setenv(EnvServiceName, "from-env")
	t.Setenv(EnvEnvironment, "staging")
	t.Setenv(EnvHeadless, "false")

	headless := true
	c := Config{
		ServiceName: "from-ctor",
		Environment: "production",
		Headless:    &headless,
	}.withDefaults()

	if c.ServiceName != "from-ctor" {
		t.Errorf("ServiceName = %q", c.ServiceName)
	}
	if c.Environment != "production" {
		t.Errorf("Environment = %q", c.Environment)
	}
	if !c.headless() {
		t.Error("explicit Headless should beat the environment")
	}
}

// TestParseBool covers the accepted falsy spellings.
func TestParseBool(t *testing.T) {
	for _, falsy := range []string{"false", "False", "0", "no", "NO"} {
		if parseBool(falsy) {
			t.Errorf("parseBool(%q) = true, want false", falsy)
		}
	}
	for _, truthy := range []string{"true", "1", "yes", "anything"} {
		if !parseBool(truthy) {
			t.Errorf("parseBool(%q) = false, want true", truthy)
		}
	}
}
