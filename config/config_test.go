package config

import "testing"

func TestEmbeddedDefaultParses(t *testing.T) {
	conf, err := load(defaultConfigData)
	if err != nil {
		t.Fatalf("embedded default config is invalid: %v", err)
	}
	if conf.Default != "amiga-dd" {
		t.Errorf("default profile = %q, want amiga-dd", conf.Default)
	}

	if err := selectProfile(conf, ""); err != nil {
		t.Fatalf("failed to select default profile: %v", err)
	}
	if ProfileName != "amiga-dd" || Cylinders != 83 || RPM != 300 || BitRateKbps != 250 {
		t.Errorf("selected profile = %s/%d/%d/%d, want amiga-dd/83/300/250",
			ProfileName, Cylinders, RPM, BitRateKbps)
	}
	if Encoding != "amiga-mfm" || Interface != "amiga-dd" {
		t.Errorf("encoding/interface = %s/%s, want amiga-mfm/amiga-dd", Encoding, Interface)
	}
}

func TestSelectNamedProfile(t *testing.T) {
	conf, err := load(defaultConfigData)
	if err != nil {
		t.Fatalf("embedded default config is invalid: %v", err)
	}

	if err := selectProfile(conf, "ibmpc-hd"); err != nil {
		t.Fatalf("failed to select ibmpc-hd: %v", err)
	}
	if BitRateKbps != 500 || RPM != 360 {
		t.Errorf("ibmpc-hd bitrate/rpm = %d/%d, want 500/360", BitRateKbps, RPM)
	}

	if err := selectProfile(conf, "no-such-profile"); err == nil {
		t.Error("selecting an unknown profile should fail")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing default", `[[profile]]` + "\n" + `name = "a"` + "\n" + `cylinders = 80` + "\n" + `rpm = 300` + "\n" + `bitrate = 250`},
		{"no profiles", `default = "a"`},
		{"zero cylinders", "default = \"a\"\n[[profile]]\nname = \"a\"\ncylinders = 0\nrpm = 300\nbitrate = 250"},
		{"too many cylinders", "default = \"a\"\n[[profile]]\nname = \"a\"\ncylinders = 300\nrpm = 300\nbitrate = 250"},
		{"zero rpm", "default = \"a\"\n[[profile]]\nname = \"a\"\ncylinders = 80\nrpm = 0\nbitrate = 250"},
		{"not toml", "{not toml}"},
	}
	for _, c := range cases {
		if _, err := load([]byte(c.data)); err == nil {
			t.Errorf("%s: load should fail", c.name)
		}
	}
}
