package geodesy

import (
	"strings"
	"testing"
)

func TestParseYAMLBlockSingleOperator(t *testing.T) {
	def := "tmerc:\n  lon_0: 9\n  ellps: GRS80\n"
	resource, err := ParseYAMLBlock(def)
	if err != nil {
		t.Fatalf("ParseYAMLBlock: %v", err)
	}
	if resource.ID != "tmerc" {
		t.Errorf("ID = %q, want tmerc", resource.ID)
	}
	if len(resource.Steps) != 1 {
		t.Fatalf("got %d steps, want 1: %v", len(resource.Steps), resource.Steps)
	}
	step := resource.Steps[0]
	if !strings.HasPrefix(step, "tmerc ") {
		t.Errorf("step = %q, want it to start with 'tmerc '", step)
	}
	if !strings.Contains(step, "lon_0:9") || !strings.Contains(step, "ellps:GRS80") {
		t.Errorf("step = %q, missing expected key:value pairs", step)
	}
}

func TestParseYAMLBlockStepsList(t *testing.T) {
	def := "pipeline:\n  steps:\n    - cart:\n        ellps: GRS80\n    - helmert:\n        x: 1\n"
	resource, err := ParseYAMLBlock(def)
	if err != nil {
		t.Fatalf("ParseYAMLBlock: %v", err)
	}
	if resource.ID != "pipeline" {
		t.Errorf("ID = %q, want pipeline", resource.ID)
	}
	if len(resource.Steps) != 2 {
		t.Fatalf("got %d steps, want 2: %v", len(resource.Steps), resource.Steps)
	}
	if !strings.HasPrefix(resource.Steps[0], "cart ") {
		t.Errorf("step 0 = %q, want it to start with 'cart '", resource.Steps[0])
	}
	if resource.Steps[1] != "helmert x:1" {
		t.Errorf("step 1 = %q, want 'helmert x:1'", resource.Steps[1])
	}
}

func TestParseYAMLBlockRejectsMultipleTopLevelKeys(t *testing.T) {
	def := "tmerc:\n  lon_0: 9\nutm:\n  zone: 32\n"
	_, err := ParseYAMLBlock(def)
	if err == nil {
		t.Fatal("expected an error for multiple top-level keys")
	}
}

func TestParseYAMLBlockBareOperatorNoParams(t *testing.T) {
	def := "noop:\n"
	resource, err := ParseYAMLBlock(def)
	if err != nil {
		t.Fatalf("ParseYAMLBlock: %v", err)
	}
	if len(resource.Steps) != 1 || resource.Steps[0] != "noop" {
		t.Fatalf("Steps = %v, want [noop]", resource.Steps)
	}
}
