package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateKnownTypes(t *testing.T) {
	for _, tp := range Registry.All() {
		v, err := Registry.Activate(tp, 0.5)
		require.NoError(t, err)
		assert.False(t, v != v, "activation produced NaN for type %d", tp)
	}
}

func TestActivateUnknownType(t *testing.T) {
	_, err := Registry.Activate(Type(255), 1.0)
	require.Error(t, err)
}

func TestNameRoundTrip(t *testing.T) {
	for _, tp := range Registry.All() {
		name, err := Registry.NameOf(tp)
		require.NoError(t, err)
		back, err := Registry.TypeFromName(name)
		require.NoError(t, err)
		assert.Equal(t, tp, back)
	}
}

func TestStepIsBinary(t *testing.T) {
	v, _ := Registry.Activate(Step, -1)
	assert.Equal(t, 0.0, v)
	v, _ = Registry.Activate(Step, 1)
	assert.Equal(t, 1.0, v)
}

func TestReLUClampsNegative(t *testing.T) {
	v, _ := Registry.Activate(ReLU, -5)
	assert.Equal(t, 0.0, v)
	v, _ = Registry.Activate(ReLU, 5)
	assert.Equal(t, 5.0, v)
}

func TestAllReturnsTenTypes(t *testing.T) {
	assert.Len(t, Registry.All(), 10)
}
