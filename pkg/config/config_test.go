package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token"`
}

func (s *sample) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_TOKEN", "s3cret")
	path := writeFile(t, "name: cal\ntoken: ${SAMPLE_TOKEN}\n")

	var s sample
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "cal" || s.Token != "s3cret" {
		t.Errorf("loaded %+v", s)
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	path := writeFile(t, "token: x\n")
	var s sample
	err := Load(path, &s)
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var s sample
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &s); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v", err)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	def := writeFile(t, "name: default\n")
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	var s sample
	if err := LoadWithDefaults(missing, def, &s); err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if s.Name != "default" {
		t.Errorf("name = %q, want default", s.Name)
	}

	if err := LoadWithDefaults(missing, "", &s); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := LoadWithDefaults(missing, missing, &s); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := LoadWithDefaults("", def, &s); err != nil || s.Name != "default" {
		t.Errorf("empty filename: name = %q err = %v", s.Name, err)
	}

	own := writeFile(t, "name: own\n")
	if err := LoadWithDefaults(own, def, &s); err != nil || s.Name != "own" {
		t.Errorf("name = %q err = %v", s.Name, err)
	}
}

func TestDecode_KeepsPrefilledDefaults(t *testing.T) {
	s := sample{Name: "keep", Token: "default"}
	if err := Decode([]byte("token: set\n"), &s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "keep" || s.Token != "set" {
		t.Errorf("decoded %+v", s)
	}
	if err := Decode([]byte("name: [unclosed\n"), &s); err == nil {
		t.Error("expected a parse error")
	}
}

func TestMustLoad_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var s sample
	MustLoad(filepath.Join(t.TempDir(), "nope.yaml"), &s)
}
