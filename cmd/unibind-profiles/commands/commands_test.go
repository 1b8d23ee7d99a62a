package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

const simpleController = "/interaction_profiles/khr/simple_controller"

func TestValidateEmbedded(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := RunValidate(nil, &stdout, &stderr)
	if code != exitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "OK (12 profiles)") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte(`
profiles:
  /interaction_profiles/test/pad:
    title: Test Pad
    subaction_paths:
      - /user/gamepad
    subpaths:
      /input/a:
        type: button
        localized_name: A
        features: [click]
`), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := RunValidate([]string{good}, &stdout, &stderr); code != exitSuccess {
		t.Fatalf("exit code = %d, stdout: %s", code, stdout.String())
	}
	if !strings.Contains(stdout.String(), "OK (1 profiles)") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestValidateBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(`
profiles:
  /interaction_profiles/test/pad:
    title: No Subaction Paths
    subpaths:
      /input/a:
        type: button
        localized_name: A
        features: [click]
`), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := RunValidate([]string{bad}, &stdout, &stderr); code != exitValidation {
		t.Fatalf("exit code = %d, want %d", code, exitValidation)
	}
	if !strings.Contains(stdout.String(), "FAILED") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestValidateJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := RunValidate([]string{"--json"}, &stdout, &stderr); code != exitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	var results map[string]ValidationOutput
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	result, ok := results[embeddedName]
	if !ok || !result.Valid || result.Profiles != 12 {
		t.Errorf("results = %+v", results)
	}
}

func TestShowText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := RunShow(nil, &stdout, &stderr); code != exitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, simpleController) {
		t.Errorf("output missing simple controller:\n%s", out)
	}
	if !strings.Contains(out, "Total: 12 profiles") {
		t.Errorf("output missing total:\n%s", out)
	}
}

func TestShowProfileFilter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := RunShow([]string{"--profile", simpleController, "--format", "json"}, &stdout, &stderr)
	if code != exitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	var outputs []ProfileOutput
	if err := json.Unmarshal(stdout.Bytes(), &outputs); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(outputs) != 1 {
		t.Fatalf("got %d profiles, want 1", len(outputs))
	}
	p := outputs[0]
	if p.Path != simpleController || p.Title != "Khronos Simple Controller" {
		t.Errorf("profile = %+v", p)
	}
	// 4 input subpaths + haptic output = 5 god actions; the 4 inputs bind
	// for both hands = 8 god bindings.
	if p.GodActions != 5 || p.GodBindings != 8 {
		t.Errorf("god plan = %d actions, %d bindings", p.GodActions, p.GodBindings)
	}
}

func TestShowUnknownProfile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := RunShow([]string{"--profile", "/interaction_profiles/acme/nonexistent"}, &stdout, &stderr)
	if code != exitCommandError {
		t.Fatalf("exit code = %d, want %d", code, exitCommandError)
	}
	if !strings.Contains(stderr.String(), "not in catalogue") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestConvertJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := RunConvert(nil, &stdout, &stderr); code != exitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	var doc CatalogueDoc
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Profiles) != 12 {
		t.Errorf("got %d profiles, want 12", len(doc.Profiles))
	}
	sp, ok := doc.Profiles[simpleController].Subpaths["/input/select"]
	if !ok || len(sp.Features) != 1 || sp.Features[0] != "click" {
		t.Errorf("select subpath = %+v", sp)
	}
}

func TestConvertCBORToFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalogue.cbor")

	var stdout, stderr bytes.Buffer
	code := RunConvert([]string{"--format", "cbor", "-o", out}, &stdout, &stderr)
	if code != exitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc CatalogueDoc
	if err := cbor.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid CBOR: %v", err)
	}
	if len(doc.Profiles) != 12 {
		t.Errorf("got %d profiles, want 12", len(doc.Profiles))
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := RunConvert([]string{"--format", "xml"}, &stdout, &stderr); code != exitCommandError {
		t.Fatalf("exit code = %d, want %d", code, exitCommandError)
	}
}
