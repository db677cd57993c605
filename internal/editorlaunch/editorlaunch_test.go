package editorlaunch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgsVimFamilyReadOnlyWithLine(t *testing.T) {
	args := BuildArgs("vim", Request{Path: "foo.go", Line: 42, HasLine: true, ReadOnly: true})
	assert.Equal(t, []string{"-R", "+42", "foo.go"}, args)
}

func TestBuildArgsNonVimIgnoresFlags(t *testing.T) {
	args := BuildArgs("nano", Request{Path: "foo.go", Line: 42, HasLine: true, ReadOnly: true})
	assert.Equal(t, []string{"foo.go"}, args, "expected plain path for non-vim editor")
}

func TestBuildArgsVimFamilyNoLine(t *testing.T) {
	args := BuildArgs("nvim", Request{Path: "foo.go"})
	assert.Equal(t, []string{"foo.go"}, args, "expected plain path without -R/+N")
}

func TestResolveDefaultsToVi(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vi", Resolve())
}

func TestResolvePrefersVisualOverEditor(t *testing.T) {
	t.Setenv("VISUAL", "myvisual")
	t.Setenv("EDITOR", "myeditor")
	assert.Equal(t, "myvisual", Resolve(), "expected VISUAL to take priority")
}
