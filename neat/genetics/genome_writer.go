package genetics

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/arcevo/neat/neat/activation"
	"github.com/arcevo/neat/neat/network"
)

// yamlNode and yamlGene are the on-disk shapes of Genome's fields; Genome
// itself is kept free of struct tags so its in-memory layout isn't coupled
// to the persisted format.
type yamlNode struct {
	Id         int64   `yaml:"id"`
	Role       string  `yaml:"role"`
	Activation string  `yaml:"activation"`
	Bias       float64 `yaml:"bias"`
}

type yamlGene struct {
	Innovation int64   `yaml:"innovation"`
	InNodeId   int64   `yaml:"in"`
	OutNodeId  int64   `yaml:"out"`
	Weight     float64 `yaml:"weight"`
	Enabled    bool    `yaml:"enabled"`
}

type yamlGenome struct {
	Id        int64      `yaml:"id"`
	Fitness   float64    `yaml:"fitness"`
	InputIds  []int64    `yaml:"input_ids"`
	OutputIds []int64    `yaml:"output_ids"`
	Nodes     []yamlNode `yaml:"nodes"`
	Genes     []yamlGene `yaml:"genes"`
}

// WriteGenomeYAML encodes g as a YAML document.
func WriteGenomeYAML(w io.Writer, g *Genome) error {
	doc := yamlGenome{
		Id:        g.Id,
		Fitness:   g.Fitness,
		InputIds:  g.InputIds,
		OutputIds: g.OutputIds,
	}
	for _, n := range g.Nodes {
		name, err := activation.Registry.NameOf(n.ActivationType)
		if err != nil {
			return errors.Wrap(err, "failed to encode node activation")
		}
		doc.Nodes = append(doc.Nodes, yamlNode{Id: n.Id, Role: network.RoleName(n.Role), Activation: name, Bias: n.Bias})
	}
	for _, c := range g.Genes {
		doc.Genes = append(doc.Genes, yamlGene{
			Innovation: c.InnovationId, InNodeId: c.InNodeId, OutNodeId: c.OutNodeId,
			Weight: c.Weight, Enabled: c.Enabled,
		})
	}
	content, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal genome to YAML")
	}
	_, err = w.Write(content)
	return err
}

// WriteGenomeText encodes g in a plain line-oriented format: a header line,
// one line per node, one line per connection gene.
func WriteGenomeText(w io.Writer, g *Genome) error {
	if _, err := fmt.Fprintf(w, "genome %d %g\n", g.Id, g.Fitness); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		name, err := activation.Registry.NameOf(n.ActivationType)
		if err != nil {
			return errors.Wrap(err, "failed to encode node activation")
		}
		if _, err := fmt.Fprintf(w, "node %d %s %s %g\n", n.Id, network.RoleName(n.Role), name, n.Bias); err != nil {
			return err
		}
	}
	for _, c := range g.Genes {
		if _, err := fmt.Fprintf(w, "gene %d %d %d %g %t\n", c.InnovationId, c.InNodeId, c.OutNodeId, c.Weight, c.Enabled); err != nil {
			return err
		}
	}
	return nil
}
