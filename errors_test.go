package binreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultErrorMessageSubstitution(t *testing.T) {
	msg := DefaultErrorMessage(ErrorUnknownType, "foo")
	assert.Equal(t, "Unknown type 'foo'", msg)
}

func TestDefaultErrorMessageMissingArgsRenderEmpty(t *testing.T) {
	msg := DefaultErrorMessage(ErrorUnknownType)
	assert.Equal(t, "Unknown type ''", msg)
}

func TestDefaultErrorMessageExtraArgsIgnored(t *testing.T) {
	msg := DefaultErrorMessage(ErrorNoTypes, "unused")
	assert.Equal(t, "No types in definition file", msg)
}

func TestErrorInfoStringGrowsMoreSpecific(t *testing.T) {
	base := NewErrorInfo(DebugInfo{}, ErrorNoTypes, LevelError, 0)
	assert.Equal(t, "error: No types in definition file", base.String())

	withFile := NewErrorInfo(DebugInfo{FilePath: "def.yaml"}, ErrorNoTypes, LevelError, 0)
	assert.Equal(t, "def.yaml: error: No types in definition file", withFile.String())

	withLine := NewErrorInfo(DebugInfo{FilePath: "def.yaml", Line: 3}, ErrorNoTypes, LevelWarning, 0)
	assert.Equal(t, "def.yaml:3: warning: No types in definition file", withLine.String())

	withColumn := NewErrorInfo(DebugInfo{FilePath: "def.yaml", Line: 3, Column: 7}, ErrorNoTypes, LevelInfo, 0)
	assert.Equal(t, "def.yaml:3:7: info: No types in definition file", withColumn.String())
}

func TestErrorCollectionHasErrorsOnlyForErrorLevel(t *testing.T) {
	c := &ErrorCollection{}
	assert.False(t, c.HasErrors())
	c.Add(NewErrorInfo(DebugInfo{}, ErrorShadowingType, LevelWarning, 0, "x"))
	assert.False(t, c.HasErrors())
	c.Add(NewErrorInfo(DebugInfo{}, ErrorShadowingMember, LevelError, 0, "y"))
	assert.True(t, c.HasErrors())
	assert.Len(t, c.All(), 2)
}
