package main

import (
	"strings"
	"testing"
)

// TestNonNilResultSlices ensures JSON serialization emits [] instead of
// null for empty results.
func TestNonNilResultSlices(t *testing.T) {
	app := newTestApp()

	result := app.Convert(`[]`, "")
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}

	result = app.Convert(`broken`, "")
	if result.Meshes == nil || result.Errors == nil {
		t.Error("result slices should be non-nil even on decode failure")
	}
}

// TestErrorMessagesAreDescriptive checks failure records carry enough
// context to show in the editor.
func TestErrorMessagesAreDescriptive(t *testing.T) {
	app := newTestApp()

	result := app.Convert(`[{"type": "module_instantiation", "name": "gear"}]`, "")
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if !strings.Contains(result.Errors[0].Message, "gear") {
		t.Errorf("error %q should name the failing callee", result.Errors[0].Message)
	}
	if result.Errors[0].Type != "module_instantiation" {
		t.Errorf("error type = %q, want module_instantiation", result.Errors[0].Type)
	}
}

// TestSequentialConvertsDoNotInterfere runs several conversions through one
// App, including failing ones, and checks no state bleeds between calls.
func TestSequentialConvertsDoNotInterfere(t *testing.T) {
	app := newTestApp()

	programs := []string{
		`[{"type": "cube", "size": 2}]`,
		`not even json`,
		`[{"type": "module_definition", "name": "widget",
			"children": [{"type": "sphere", "r": 1}]},
		  {"type": "module_instantiation", "name": "widget"}]`,
		`[]`,
		`[{"type": "module_instantiation", "name": "widget"}]`, // widget must NOT persist
		`[{"type": "sphere", "r": 2}]`,
	}

	for i, src := range programs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, src, r)
				}
			}()
			result := app.Convert(src, "")
			_ = result
		}()
	}

	// Module definitions are per-conversion; the fifth program's call must
	// have failed rather than seeing the third program's registry.
	result := app.Convert(`[{"type": "module_instantiation", "name": "widget"}]`, "")
	if len(result.Errors) != 1 {
		t.Errorf("expected module state to reset between conversions, errors = %v", result.Errors)
	}
}

// TestAssignmentVisibleToLaterSiblings checks statement ordering within one
// conversion.
func TestAssignmentVisibleToLaterSiblings(t *testing.T) {
	app := newTestApp()

	astJSON := `[
		{"type": "assignment", "name": "w", "value": 6},
		{"type": "module_instantiation", "name": "cube",
			"args": [{"value": {"type": "variable", "name": "w"}}]}
	]`
	result := app.Convert(astJSON, "")
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(result.Meshes))
	}
	bb := result.Meshes[1].Metadata.BoundingBox
	if bb.Max[0] < 5.5 || bb.Max[0] > 6.5 {
		t.Errorf("cube max x = %f, expected ~6 from assigned variable", bb.Max[0])
	}
}
