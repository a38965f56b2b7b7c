package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mj1618/undecorate/internal/model"
	"gopkg.in/yaml.v3"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func sampleList() WindowList {
	return WindowList{
		TS: 1707500000,
		Windows: []model.Window{
			{ID: "0x3a00007", Title: "Terminal", Type: "normal", App: "org.gnome.Terminal", Whitelisted: true},
			{ID: "0x1e00003", Type: "desktop", Decorated: true},
		},
	}
}

func TestPrintYAML(t *testing.T) {
	out := captureStdout(t, func() error { return PrintYAML(sampleList()) })

	if strings.Count(out, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded WindowList
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Windows) != 2 || decoded.Windows[0].App != "org.gnome.Terminal" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	out := captureStdout(t, func() error { return PrintJSON(sampleList()) })

	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Errorf("compact JSON should be a single line, got:\n%s", out)
	}
	var decoded WindowList
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TS != 1707500000 {
		t.Errorf("ts = %d", decoded.TS)
	}
}

func TestPrint_Pretty(t *testing.T) {
	OutputFormat = FormatJSON
	PrettyOutput = true
	t.Cleanup(func() {
		OutputFormat = FormatYAML
		PrettyOutput = false
	})

	out := captureStdout(t, func() error { return Print(WhitelistResult{Whitelist: []string{"firefox"}}) })
	if !strings.Contains(out, "\n  \"whitelist\"") {
		t.Errorf("expected indented JSON, got:\n%s", out)
	}
}

func TestWhitelistResult_OmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(WhitelistResult{Whitelist: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["changed"]; ok {
		t.Error("false changed should be omitted")
	}
	if _, ok := m["whitelist"]; !ok {
		t.Error("whitelist should always be present")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"yaml", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestText(t *testing.T) {
	s, err := Text(model.Window{ID: "0x1", Type: "normal"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "type: normal") {
		t.Errorf("text = %q", s)
	}
}
