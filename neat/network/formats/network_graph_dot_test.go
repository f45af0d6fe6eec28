package formats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDOT(t *testing.T) {
	net := buildNetwork()

	b := bytes.NewBufferString("")
	err := WriteDOT(b, net)
	require.NoError(t, err)
	assert.NotEmpty(t, b.String())
	assert.Contains(t, b.String(), "TestNN")
}

func TestWriteDOTPropagatesWriteError(t *testing.T) {
	net := buildNetwork()
	err := WriteDOT(ErrorWriter(0), net)
	require.Error(t, err)
	assert.Equal(t, alwaysError, err)
}
