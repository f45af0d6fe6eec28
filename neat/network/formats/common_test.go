package formats

import (
	"errors"

	"github.com/arcevo/neat/neat/activation"
	"github.com/arcevo/neat/neat/network"
)

const alwaysErrorText = "always be failing"

var alwaysError = errors.New(alwaysErrorText)

// ErrorWriter is an io.Writer that always fails, for exercising error paths
// in the exporters.
type ErrorWriter int

func (e ErrorWriter) Write(_ []byte) (int, error) {
	return 0, alwaysError
}

func buildNetwork() *network.Network {
	in1 := network.NewNNode(1, network.Input, activation.Linear)
	in2 := network.NewNNode(2, network.Input, activation.Linear)
	bias := network.NewNNode(3, network.Bias, activation.Linear)
	hidden := network.NewNNode(4, network.Hidden, activation.Sigmoid)
	out := network.NewNNode(5, network.Output, activation.Sigmoid)

	l1 := network.NewLink(15.0, in1, hidden, true)
	l2 := network.NewLink(10.0, in2, hidden, true)
	l3 := network.NewLink(1.0, bias, hidden, true)
	l4 := network.NewLink(7.0, hidden, out, true)
	hidden.Incoming = []*network.Link{l1, l2, l3}
	out.Incoming = []*network.Link{l4}
	in1.Outgoing = []*network.Link{l1}
	in2.Outgoing = []*network.Link{l2}
	bias.Outgoing = []*network.Link{l3}
	hidden.Outgoing = []*network.Link{l4}

	net, _ := network.NewNetwork("TestNN", []*network.NNode{in1, in2, bias, hidden, out}, []int64{1, 2}, []int64{5})
	return net
}
