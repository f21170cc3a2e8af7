package calcapp

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"papercalc-core/basis"
	"papercalc/internal/calccli"
	"papercalc/internal/config"
	"papercalc/pkg/api"
)

func run(t *testing.T, argv ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	var out, errB bytes.Buffer
	code = Run(argv, &out, &errB)
	return code, out.String(), errB.String()
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		name string
		argv []string
		want int
	}{
		{"no args prints quickstart", nil, ExitOK},
		{"help", []string{"--help"}, ExitOK},
		{"version", []string{"-v"}, ExitOK},
		{"scenario", []string{"--micron", "160", "--bulk", "1.30"}, ExitOK},
		{"unknown flag", []string{"--colour", "red"}, ExitUsage},
		{"positional", []string{"160"}, ExitUsage},
		{"unknown preset", []string{"--gsm", "80", "--preset", "nope"}, ExitUsage},
		{"bad size", []string{"--gsm", "80", "--size", "25by38"}, ExitUsage},
		{"size with named preset", []string{"--gsm", "80", "--size", "20x26", "--preset", "cover"}, ExitUsage},
		{"size and width", []string{"--gsm", "80", "--size", "20x26", "--width", "3"}, ExitUsage},
		{"bad output", []string{"--gsm", "80", "-o", "xml"}, ExitUsage},
		{"missing input", []string{"--input", "does-not-exist.json"}, ExitUsage},
		{"conflict warns", []string{"--micron", "160", "--mm", "0.2"}, ExitOK},
		{"conflict strict", []string{"--micron", "160", "--mm", "0.2", "--strict"}, ExitConflict},
		{"list presets", []string{"--list-presets"}, ExitOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, _, stderr := run(t, c.argv...)
			if code != c.want {
				t.Fatalf("exit %d, want %d; stderr=%s", code, c.want, stderr)
			}
		})
	}
}

func TestQuickstart(t *testing.T) {
	code, out, _ := run(t)
	if code != ExitOK || !strings.Contains(out, "papercalc --micron 160 --bulk 1.30") || !strings.Contains(out, "--help") {
		t.Fatalf("exit %d, quickstart:\n%s", code, out)
	}
}

func TestScenarioText(t *testing.T) {
	code, out, stderr := run(t, "--micron", "160", "--bulk", "1.30")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{
		"Basis weight (g/m²)\t123.08 *\n",
		"Thickness (μm)\t160\n",
		"Thickness (mm)\t0.16 *\n",
		"Thickness (tiao)\t16 *\n",
		"Ream weight (lb)\t83.15 *\n",
		"Basis size (in)\twoodfree-A 25x38 = 950 in²\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestConflictWarningAndQuiet(t *testing.T) {
	_, _, stderr := run(t, "--micron", "160", "--mm", "0.2")
	if !strings.Contains(stderr, "WARN: conflicting input: mm = μm/1000") {
		t.Fatalf("stderr = %q", stderr)
	}
	_, _, stderr = run(t, "--micron", "160", "--mm", "0.2", "-q")
	if stderr != "" {
		t.Fatalf("quiet stderr = %q", stderr)
	}
	code, out, stderr := run(t, "--micron", "160", "--mm", "0.2", "--strict")
	if code != ExitConflict || out != "" || !strings.Contains(stderr, "error: conflicting input") {
		t.Fatalf("strict: code=%d out=%q stderr=%q", code, out, stderr)
	}
}

func TestExplain(t *testing.T) {
	_, _, stderr := run(t, "--lb", "80", "--bulk", "1.35", "--explain")
	for _, rule := range []string{"lb-to-gsm", "thickness-from-product"} {
		if !strings.Contains(stderr, rule) {
			t.Errorf("explain missing %s:\n%s", rule, stderr)
		}
	}
}

func TestUnparseableFieldIsUnknown(t *testing.T) {
	code, out, stderr := run(t, "--gsm", "abc", "--bulk", "1.1", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var r api.ResultV1
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatal(err)
	}
	if r.BasisWeightGSM != nil || r.ThicknessUm != nil {
		t.Fatalf("nothing should be derived from bulk alone: %+v", r)
	}
	if r.BulkCm3G == nil || *r.BulkCm3G != 1.1 {
		t.Fatalf("bulk = %v", r.BulkCm3G)
	}
}

func TestCustomSizeImpliesCustomPreset(t *testing.T) {
	code, out, stderr := run(t, "--gsm", "100", "--width", "20", "--height", "26", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var r api.ResultV1
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatal(err)
	}
	if r.Preset != basis.Custom || r.AreaSqIn != 520 {
		t.Fatalf("preset=%q area=%v", r.Preset, r.AreaSqIn)
	}
	if r.PoundWeightLb == nil {
		t.Fatal("lb not derived for custom size")
	}
}

func TestDegenerateCustomSizeWarns(t *testing.T) {
	code, out, stderr := run(t, "--gsm", "100", "--width", "20", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "lb ⇄ gsm conversions skipped") {
		t.Fatalf("stderr = %q", stderr)
	}
	if strings.Contains(out, "pound_weight_lb") {
		t.Fatalf("lb derived from a zero area:\n%s", out)
	}
}

func TestConfigPresetAndPrecision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papercalc.yaml")
	cfg := "default_preset: bristol\nprecision:\n  gsm: 0\npresets:\n  - name: bristol\n    width_in: 20\n    height_in: 26\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, stderr := run(t, "--config", path, "--lb", "80", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var r api.ResultV1
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatal(err)
	}
	if r.Preset != "bristol" || r.AreaSqIn != 520 {
		t.Fatalf("preset=%q area=%v", r.Preset, r.AreaSqIn)
	}
	// 80 lb on 20x26 is 216.33 g/m², shown with no decimals.
	if r.BasisWeightGSM == nil || *r.BasisWeightGSM != 216 {
		t.Fatalf("gsm = %v", r.BasisWeightGSM)
	}
}

func TestBuildRequestMerging(t *testing.T) {
	cfg := &config.Config{}
	cat, err := cfg.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	doc := filepath.Join(dir, "sheet.yaml")
	if err := os.WriteFile(doc, []byte("preset: custom\nsize: 20x26\ngsm: 90\nbulk: 1.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	parse := func(argv ...string) calccli.Options {
		t.Helper()
		o, err := calccli.ParseArgs(calccli.NewFlagSet("t"), argv)
		if err != nil {
			t.Fatal(err)
		}
		return o
	}

	t.Run("flags override document", func(t *testing.T) {
		req, err := buildRequest(parse("--input", doc, "--gsm", "100", "--bulk", ""), cfg, cat, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got, _ := req.input.BasisWeight.Get(); got != 100 {
			t.Fatalf("gsm = %v", got)
		}
		if req.input.Bulk.Known() {
			t.Fatal("empty --bulk should clear the document value")
		}
		if req.preset != basis.Custom || req.size != basis.Cover {
			t.Fatalf("preset=%q size=%v", req.preset, req.size)
		}
	})
	t.Run("preset flag beats document size", func(t *testing.T) {
		req, err := buildRequest(parse("--input", doc, "--preset", "text-book"), cfg, cat, nil)
		if err != nil {
			t.Fatal(err)
		}
		if req.preset != "text-book" || req.size != basis.Standard {
			t.Fatalf("preset=%q size=%v", req.preset, req.size)
		}
	})
	t.Run("sample", func(t *testing.T) {
		req, err := buildRequest(parse("--sample"), cfg, cat, nil)
		if err != nil {
			t.Fatal(err)
		}
		lb, _ := req.input.PoundWeight.Get()
		bulk, _ := req.input.Bulk.Get()
		if req.preset != basis.DefaultPreset || lb != 80 || bulk != 1.35 || req.input.Count() != 2 {
			t.Fatalf("sample = %+v", req)
		}
	})
	t.Run("preset case-insensitive", func(t *testing.T) {
		req, err := buildRequest(parse("--preset", "COVER"), cfg, cat, nil)
		if err != nil {
			t.Fatal(err)
		}
		if req.preset != "cover" {
			t.Fatalf("preset = %q", req.preset)
		}
	})
}

func TestInteractiveCanceled(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errB bytes.Buffer
	code := RunContext(ctx, []string{"--interactive"}, strings.NewReader(""), &out, &errB)
	if code != ExitCanceled {
		t.Fatalf("exit %d: %s", code, errB.String())
	}
}

func TestUseColor(t *testing.T) {
	var b bytes.Buffer
	if !useColor("always", &b) || useColor("never", &b) || useColor("auto", &b) {
		t.Fatal("color resolution wrong for non-terminal writer")
	}
}
