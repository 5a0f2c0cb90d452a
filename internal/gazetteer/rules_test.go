package gazetteer

import (
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
)

func TestLoadRuleFile(t *testing.T) {
	fsys := fstest.MapFS{
		"gender.csv": &fstest.MapFile{Data: []byte(
			"analista,analista,analistas\n" +
				"# a comment line\n" +
				"\n" +
				"gerente,gerente,gerenta\n" +
				"malformed\n",
		)},
	}

	rules, err := loadRuleFile(fsys, "gender.csv", zap.NewNop())
	if err != nil {
		t.Fatalf("loadRuleFile: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules (malformed line skipped), got %d", len(rules))
	}
	if rules[0].Canonical != "analista" {
		t.Errorf("rules[0].Canonical = %q, want analista", rules[0].Canonical)
	}
}

func TestRuleApply(t *testing.T) {
	fsys := fstest.MapFS{
		"gender.csv": &fstest.MapFile{Data: []byte("analista,analista,analistas gerentes\n")},
	}
	rules, err := loadRuleFile(fsys, "gender.csv", zap.NewNop())
	if err != nil {
		t.Fatalf("loadRuleFile: %v", err)
	}

	got := rules[0].Apply("vaga para analistas gerentes senior")
	want := "vaga para analista senior"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestCompileAlternationPattern_LongestFirst(t *testing.T) {
	pat := compileAlternationPattern([]string{"ti", "tecnologia da informacao"})
	got := pat.ReplaceAllString("analista de tecnologia da informacao senior", "${1}TI${3}")
	want := "analista de TI senior"
	if got != want {
		t.Errorf("compileAlternationPattern longest-first = %q, want %q", got, want)
	}
}
