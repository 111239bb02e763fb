package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/xll-gen/build-payload/internal/config"
	"github.com/xll-gen/build-payload/internal/payload"
)

func plainConfig() *config.Config {
	cfg := config.Default()
	cfg.NoCopyright = true
	cfg.Compress = false
	return &cfg
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate_Stdin(t *testing.T) {
	g := New(plainConfig(), WithStdin(strings.NewReader("\x01\x02")))

	var buf bytes.Buffer
	if err := g.Generate(&buf, nil); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	want := "static const unsigned char declarations[2] = {\n" +
		"    0x01, 0x02\n" +
		"};\n" +
		"\n" +
		"static const unsigned long declarationsSize = 2;\n" +
		"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}

	results := g.Results()
	if len(results) != 1 || results[0].Source != "<stdin>" || results[0].Size != 2 {
		t.Errorf("Results() = %+v", results)
	}
}

func TestGenerate_EmptyStdin(t *testing.T) {
	g := New(plainConfig(), WithStdin(strings.NewReader("")))

	var buf bytes.Buffer
	if err := g.Generate(&buf, nil); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	want := "static const unsigned char declarations[0] = {\n};\n\n" +
		"static const unsigned long declarationsSize = 0;\n\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "only.bin", []byte{0xFF})

	cfg := plainConfig()
	cfg.Variable = "logo"
	cfg.SizeVariable = "logoSize"

	var buf bytes.Buffer
	if err := New(cfg).Generate(&buf, []string{path}); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "// Contents of") {
		t.Errorf("single input should not emit a source comment:\n%s", out)
	}
	if !strings.Contains(out, "static const unsigned char logo[1] = {\n    0xFF\n};") {
		t.Errorf("unexpected array declaration:\n%s", out)
	}
	if !strings.Contains(out, "static const unsigned long logoSize = 1;") {
		t.Errorf("unexpected size declaration:\n%s", out)
	}
}

func TestGenerate_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.bin", []byte{0x0A})
	writeFile(t, dir, filepath.Join("sub", "b.bin"), []byte{0x0B, 0x0C})

	// Paths relative to dir keep the comments stable.
	origWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origWd)

	cfg := plainConfig()
	cfg.Variable = "Data"
	cfg.SizeVariable = "Size"

	g := New(cfg)
	var buf bytes.Buffer
	if err := g.Generate(&buf, []string{"a.bin", "sub/b.bin"}); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	want := "// Contents of a.bin:\n" +
		"static const unsigned char a_binData[1] = {\n" +
		"    0x0A\n" +
		"};\n" +
		"\n" +
		"static const unsigned long a_binSize = 1;\n" +
		"\n" +
		"// Contents of sub/b.bin:\n" +
		"static const unsigned char b_binData[2] = {\n" +
		"    0x0B, 0x0C\n" +
		"};\n" +
		"\n" +
		"static const unsigned long b_binSize = 2;\n" +
		"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}

	var names []string
	for _, r := range g.Results() {
		names = append(names, r.Name, r.SizeName)
	}
	if diff := cmp.Diff([]string{"a_binData", "a_binSize", "b_binData", "b_binSize"}, names); diff != "" {
		t.Errorf("Results() names mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_EmptySuffix(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.bin", []byte{0x0A})
	b := writeFile(t, dir, "b.dat", []byte{0x0B})

	cfg := plainConfig()
	cfg.Variable = ""
	cfg.SizeVariable = "_size"

	g := New(cfg)
	var buf bytes.Buffer
	if err := g.Generate(&buf, []string{a, b}); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"a_bin[1] = {", "a_bin_size = 1;", "b_dat[1] = {", "b_dat_size = 1;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerate_StopsAtFirstMissingFile(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.bin", []byte{0x01})
	missing := filepath.Join(dir, "missing.bin")
	third := writeFile(t, dir, "third.bin", []byte{0x03})

	g := New(plainConfig())
	var buf bytes.Buffer
	err := g.Generate(&buf, []string{first, missing, third})
	if err == nil {
		t.Fatal("Generate() expected error, got nil")
	}
	if !errors.Is(err, payload.ErrUnreadableSource) {
		t.Errorf("Generate() error = %v, want ErrUnreadableSource", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q should name the failing source %s", err, missing)
	}

	out := buf.String()
	if !strings.Contains(out, "first_bin") {
		t.Errorf("output of the first source should remain:\n%s", out)
	}
	if strings.Contains(out, "missing_bin") || strings.Contains(out, "third_bin") {
		t.Errorf("processing should stop at the missing source:\n%s", out)
	}
	if len(g.Results()) != 1 {
		t.Errorf("Results() = %+v, want one entry", g.Results())
	}
}

func TestGenerate_SingleMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.bin")

	var buf bytes.Buffer
	err := New(plainConfig()).Generate(&buf, []string{missing})
	if !errors.Is(err, payload.ErrUnreadableSource) {
		t.Fatalf("Generate() error = %v, want ErrUnreadableSource", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no declarations expected, got:\n%s", buf.String())
	}
}

func TestGenerate_Namespace(t *testing.T) {
	cfg := plainConfig()
	cfg.Namespace = "Assets"

	var buf bytes.Buffer
	if err := New(cfg, WithStdin(strings.NewReader("\x2A"))).Generate(&buf, nil); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	want := "namespace Assets{\n" +
		"    static const unsigned char declarations[1] = {\n" +
		"        0x2A\n" +
		"    };\n" +
		"\n" +
		"    static const unsigned long declarationsSize = 1;\n" +
		"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}

	cfg.CloseNamespace = true
	buf.Reset()
	if err := New(cfg, WithStdin(strings.NewReader("\x2A"))).Generate(&buf, nil); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if diff := cmp.Diff(want+"}\n", buf.String()); diff != "" {
		t.Errorf("Generate() with closing brace mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Header(t *testing.T) {
	tests := []struct {
		name        string
		noCopyright bool
		description string
		wantHeader  bool
		wantFile    bool
	}{
		{"default copyright", false, "", true, false},
		{"suppressed without description", true, "", false, false},
		{"description without copyright", true, "Icons.", true, true},
		{"both", false, "Icons.", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := plainConfig()
			cfg.NoCopyright = tt.noCopyright
			cfg.Description = tt.description

			var buf bytes.Buffer
			if err := New(cfg, WithStdin(strings.NewReader("x"))).Generate(&buf, nil); err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			out := buf.String()

			if got := strings.HasPrefix(out, "/*-*-c++-*-*"); got != tt.wantHeader {
				t.Errorf("header present = %v, want %v:\n%s", got, tt.wantHeader, out)
			}
			if got := strings.Contains(out, "* \\file\n"); got != tt.wantFile {
				t.Errorf("\\file section present = %v, want %v:\n%s", got, tt.wantFile, out)
			}
			if got := strings.Contains(out, "Inesonic"); got != !tt.noCopyright {
				t.Errorf("copyright present = %v, want %v", got, !tt.noCopyright)
			}
		})
	}
}

var (
	arrayRe = regexp.MustCompile(`\w+\[(\d+)\] = \{`)
	sizeRe  = regexp.MustCompile(`Size = (\d+);`)
)

func TestGenerate_SizeMatchesElements(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		bytes.Repeat([]byte("abc"), 333),
	}

	for _, compress := range []bool{false, true} {
		for _, in := range inputs {
			cfg := plainConfig()
			cfg.Compress = compress

			g := New(cfg, WithStdin(bytes.NewReader(in)))
			var buf bytes.Buffer
			if err := g.Generate(&buf, nil); err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			out := buf.String()

			declared := arrayRe.FindStringSubmatch(out)
			size := sizeRe.FindStringSubmatch(out)
			if declared == nil || size == nil {
				t.Fatalf("could not parse output:\n%s", out)
			}
			elements := strings.Count(out, "0x")
			n, _ := strconv.Atoi(size[1])
			if declared[1] != size[1] || n != elements {
				t.Errorf("compress=%v len=%d: declared %s, size %s, elements %d", compress, len(in), declared[1], size[1], elements)
			}
			if r := g.Results()[0]; r.EncodedSize != n || r.Size != len(in) {
				t.Errorf("Results() = %+v, want encoded %d", r, n)
			}
		}
	}
}
