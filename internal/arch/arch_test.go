// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	apps := []string{
		"papercalc/internal/calcapp", "papercalc/internal/calccli",
		"papercalc/internal/interactive", "papercalc/cmd/",
	}
	bans := map[string][]string{
		"papercalc/internal/codec":   {"papercalc/"},
		"papercalc/internal/display": append([]string{"papercalc/internal/output", "papercalc/internal/writers", "papercalc/internal/pretty"}, apps...),
		"papercalc/internal/docio":   append([]string{"papercalc/internal/display", "papercalc/internal/output", "papercalc/internal/writers"}, apps...),
		"papercalc/internal/config":  append([]string{"papercalc/internal/output", "papercalc/internal/writers"}, apps...),
		"papercalc/internal/output":  append([]string{"papercalc/internal/writers", "papercalc/internal/pretty"}, apps...),
		"papercalc/internal/pretty":  append([]string{"papercalc/internal/output", "papercalc/internal/writers"}, apps...),
		"papercalc/internal/writers": apps,
		"papercalc/pkg/":             {"papercalc/internal/", "papercalc/cmd/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "papercalc/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "papercalc/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
