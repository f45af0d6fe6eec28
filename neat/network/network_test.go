package network

import (
	"testing"

	"github.com/arcevo/neat/neat/activation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildXORLikeNetwork(t *testing.T) *Network {
	t.Helper()
	in1 := NewNNode(1, Input, activation.Linear)
	in2 := NewNNode(2, Input, activation.Linear)
	bias := NewNNode(3, Bias, activation.Linear)
	out := NewNNode(4, Output, activation.Sigmoid)

	l1 := NewLink(1.0, in1, out, true)
	l2 := NewLink(1.0, in2, out, true)
	l3 := NewLink(1.0, bias, out, true)
	out.Incoming = []*Link{l1, l2, l3}
	in1.Outgoing = []*Link{l1}
	in2.Outgoing = []*Link{l2}
	bias.Outgoing = []*Link{l3}

	net, err := NewNetwork("xor", []*NNode{in1, in2, bias, out}, []int64{1, 2}, []int64{4})
	require.NoError(t, err)
	return net
}

func TestActivateProducesOutputPerOutputNode(t *testing.T) {
	net := buildXORLikeNetwork(t)
	out, err := net.Activate([]float64{1, 0})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestActivateRejectsArityMismatch(t *testing.T) {
	net := buildXORLikeNetwork(t)
	_, err := net.Activate([]float64{1})
	require.Error(t, err)
	assert.Equal(t, ErrInputArityMismatch, err)
}

func TestActivateIsIdempotentGivenSameInputs(t *testing.T) {
	net := buildXORLikeNetwork(t)
	a, err := net.Activate([]float64{1, 0})
	require.NoError(t, err)
	b, err := net.Activate([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewNetworkRejectsUnknownNodeID(t *testing.T) {
	in := NewNNode(1, Input, activation.Linear)
	_, err := NewNetwork("broken", []*NNode{in}, []int64{1}, []int64{99})
	require.Error(t, err)
	assert.Equal(t, ErrUnknownNode, err)
}

func TestEvaluationOrderRespectsDependencies(t *testing.T) {
	net := buildXORLikeNetwork(t)
	order, err := net.evaluationOrder()
	require.NoError(t, err)

	pos := make(map[int64]int, len(order))
	for i, n := range order {
		pos[n.Id] = i
	}
	assert.Less(t, pos[int64(1)], pos[int64(4)])
	assert.Less(t, pos[int64(2)], pos[int64(4)])
}

func TestComplexityCountsNodesAndEnabledLinks(t *testing.T) {
	net := buildXORLikeNetwork(t)
	assert.Equal(t, 4+3, net.Complexity())
}
