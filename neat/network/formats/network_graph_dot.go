// Package formats renders evolved network phenotypes to interchange formats
// for offline inspection.
package formats

import (
	"io"

	"github.com/arcevo/neat/neat/network"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// WriteDOT renders n using the GraphViz DOT encoding.
// See DOT Guide: https://www.graphviz.org/pdf/dotguide.pdf
func WriteDOT(w io.Writer, n *network.Network) error {
	data, err := dot.Marshal(n, n.Name, "", "")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
