package film

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryContainsBuiltins(t *testing.T) {
	assert.Equal(t, []string{"normal8", "std16mm", "super16", "super8"}, Keys())

	for _, key := range Keys() {
		spec := Get(key)
		require.NotNil(t, spec, key)
		assert.Equal(t, key, spec.Key)
		assert.NoError(t, spec.Validate())
	}
}

func TestGetUnknownKey(t *testing.T) {
	assert.Nil(t, Get("imax"))
}

func TestPerforationAspectRatio(t *testing.T) {
	super8 := Get("super8")
	assert.InDelta(t, 0.914/1.143, super8.PerforationAspectRatio(), 1e-9)

	std16 := Get("std16mm")
	assert.InDelta(t, 1.829/1.27, std16.PerforationAspectRatio(), 1e-9)
}

func TestPerforationPositions(t *testing.T) {
	// Super 8 has its perforation centered vertically on the frame
	super8 := Get("super8")
	require.Len(t, super8.PerforationPos, 1)
	assert.InDelta(t, super8.FrameSize.Height/2, super8.PerforationPos[0].Y, 1e-9)

	// 16mm perforations sit on the frame line
	std16 := Get("std16mm")
	require.Len(t, std16.PerforationPos, 1)
	assert.InDelta(t, 0, std16.PerforationPos[0].Y, 1e-9)
}

func TestValidate(t *testing.T) {
	spec := *Super8Spec()
	assert.NoError(t, spec.Validate())

	broken := spec
	broken.Key = ""
	assert.Error(t, broken.Validate())

	broken = spec
	broken.PerforationSize.Height = 0
	assert.Error(t, broken.Validate())

	broken = spec
	broken.PerforationsPerFrame = 0
	assert.Error(t, broken.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "super8.json")

	orig := Super8Spec()
	require.NoError(t, orig.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig, loaded)
}

func TestLoadRejectsInvalidSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")

	broken := *Super8Spec()
	broken.CameraSize = SizeMM{}
	require.NoError(t, broken.SaveToFile(path))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
