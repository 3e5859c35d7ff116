package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	cfg := "paths:\n" +
		"  data: " + filepath.Join(root, "data") + "\n" +
		"  output: " + filepath.Join(root, "output") + "\n" +
		"  inbox: " + filepath.Join(root, "inbox") + "\n" +
		"  images: " + filepath.Join(root, "images") + "\n" +
		"  temp: " + filepath.Join(root, "temp") + "\n" +
		"logging:\n  level: error\n"
	path := filepath.Join(root, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProjectCreateAndShow(t *testing.T) {
	cfg := writeTestConfig(t)
	env := filepath.Join(t.TempDir(), "missing.env")
	script := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(script, []byte(`[{"id":"s1","text":"Octopuses have three hearts."},{"text":"Blue blood."}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", cfg, "--env", env, "project", "create", "--topic", "octopus", "--script", script)
	if err != nil {
		t.Fatalf("project create: %v\n%s", err, out)
	}
	var created models.Project
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if created.AspectRatio != "9:16" || created.Status != models.StatusDraft || len(created.Script) != 2 {
		t.Errorf("created = %+v", created)
	}

	out, err = run(t, "--config", cfg, "--env", env, "show", created.ID)
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	if !strings.Contains(out, created.ID) {
		t.Errorf("show output missing id:\n%s", out)
	}

	if _, err := run(t, "--config", cfg, "--env", env, "show", "nope"); err == nil {
		t.Error("show of unknown project expected error")
	}
}

func TestRenderRequiresVoiceover(t *testing.T) {
	cfg := writeTestConfig(t)
	env := filepath.Join(t.TempDir(), "missing.env")
	script := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(script, []byte(`[{"text":"Only scene."}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "--config", cfg, "--env", env, "project", "create", "--topic", "t", "--script", script)
	if err != nil {
		t.Fatal(err)
	}
	var p models.Project
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "--config", cfg, "--env", env, "render", p.ID); err == nil || !strings.Contains(err.Error(), "no voiceover") {
		t.Errorf("render error = %v, want missing voiceover", err)
	}
}

func TestReadScriptErrors(t *testing.T) {
	if _, err := readScript(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("readScript(missing) expected error")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := readScript(bad); err == nil {
		t.Error("readScript(bad json) expected error")
	}
}
