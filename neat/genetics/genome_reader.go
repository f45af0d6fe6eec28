package genetics

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/arcevo/neat/neat/activation"
	"github.com/arcevo/neat/neat/network"
)

// ReadGenomeYAML decodes a genome encoded by WriteGenomeYAML.
func ReadGenomeYAML(r io.Reader) (*Genome, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read genome YAML")
	}
	var doc yamlGenome
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode genome YAML")
	}

	g := &Genome{Id: doc.Id, Fitness: doc.Fitness, InputIds: doc.InputIds, OutputIds: doc.OutputIds, topologyDirty: true}
	for _, n := range doc.Nodes {
		role, err := network.RoleByName(n.Role)
		if err != nil {
			return nil, err
		}
		actType, err := activation.Registry.TypeFromName(n.Activation)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, &Node{Id: n.Id, Role: role, ActivationType: actType, Bias: n.Bias})
		if n.Id >= g.nextLocalNodeId {
			g.nextLocalNodeId = n.Id + 1
		}
	}
	for _, c := range doc.Genes {
		g.Genes = append(g.Genes, &Gene{
			InnovationId: c.Innovation, InNodeId: c.InNodeId, OutNodeId: c.OutNodeId,
			Weight: c.Weight, Enabled: c.Enabled,
		})
	}
	return g, nil
}

// ReadGenomeText decodes a genome encoded by WriteGenomeText.
func ReadGenomeText(r io.Reader) (*Genome, error) {
	g := &Genome{topologyDirty: true}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var kind string
		fmt.Sscanf(line, "%s", &kind)
		switch kind {
		case "genome":
			if _, err := fmt.Sscanf(line, "genome %d %g", &g.Id, &g.Fitness); err != nil {
				return nil, errors.Wrap(err, "failed to parse genome header")
			}
		case "node":
			var id int64
			var roleName, actName string
			var bias float64
			if _, err := fmt.Sscanf(line, "node %d %s %s %g", &id, &roleName, &actName, &bias); err != nil {
				return nil, errors.Wrap(err, "failed to parse node line")
			}
			role, err := network.RoleByName(roleName)
			if err != nil {
				return nil, err
			}
			actType, err := activation.Registry.TypeFromName(actName)
			if err != nil {
				return nil, err
			}
			g.Nodes = append(g.Nodes, &Node{Id: id, Role: role, ActivationType: actType, Bias: bias})
			if id >= g.nextLocalNodeId {
				g.nextLocalNodeId = id + 1
			}
		case "gene":
			var innov, in, out int64
			var weight float64
			var enabled bool
			if _, err := fmt.Sscanf(line, "gene %d %d %d %g %t", &innov, &in, &out, &weight, &enabled); err != nil {
				return nil, errors.Wrap(err, "failed to parse gene line")
			}
			g.Genes = append(g.Genes, &Gene{InnovationId: innov, InNodeId: in, OutNodeId: out, Weight: weight, Enabled: enabled})
		default:
			return nil, errors.Errorf("unknown genome text record kind: %s", kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, n := range g.Nodes {
		switch n.Role {
		case network.Input:
			g.InputIds = append(g.InputIds, n.Id)
		case network.Output:
			g.OutputIds = append(g.OutputIds, n.Id)
		}
	}
	return g, nil
}
