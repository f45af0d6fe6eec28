package neat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoadYAMLOptions loads NEAT options encoded as a YAML document.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read YAML options")
	}

	opts := DefaultOptions()
	if err = yaml.Unmarshal(content, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}

	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// LoadTextOptions loads NEAT options from the plain ".neat" text format: one
// whitespace-separated "name value" pair per line.
func LoadTextOptions(r io.Reader) (*Options, error) {
	c := DefaultOptions()
	var name string
	var param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "failed to parse NEAT text options")
		}
		switch name {
		case "population_size":
			c.PopulationSize = cast.ToInt(param)
		case "compat_threshold":
			c.CompatThreshold = cast.ToFloat64(param)
		case "compat_modifier":
			c.CompatModifier = cast.ToFloat64(param)
		case "target_species_count":
			c.TargetSpeciesCount = cast.ToInt(param)
		case "excess_coeff":
			c.ExcessCoeff = cast.ToFloat64(param)
		case "disjoint_coeff":
			c.DisjointCoeff = cast.ToFloat64(param)
		case "mutdiff_coeff":
			c.MutdiffCoeff = cast.ToFloat64(param)
		case "small_genome_threshold":
			c.SmallGenomeThreshold = cast.ToInt(param)
		case "weight_mutate_rate":
			c.WeightMutateRate = cast.ToFloat64(param)
		case "weight_mutate_power":
			c.WeightMutatePower = cast.ToFloat64(param)
		case "weight_replace_rate":
			c.WeightReplaceRate = cast.ToFloat64(param)
		case "add_node_prob":
			c.AddNodeProb = cast.ToFloat64(param)
		case "add_conn_prob":
			c.AddConnProb = cast.ToFloat64(param)
		case "new_conn_tries":
			c.NewConnTries = cast.ToInt(param)
		case "toggle_link_rate":
			c.ToggleLinkRate = cast.ToFloat64(param)
		case "activation_mutate_rate":
			c.ActivationMutateRate = cast.ToFloat64(param)
		case "crossover_rate":
			c.CrossoverRate = cast.ToFloat64(param)
		case "interspecies_mate_rate":
			c.InterspeciesMateRate = cast.ToFloat64(param)
		case "disable_inherited_gene_rate":
			c.DisableInheritedGeneRate = cast.ToFloat64(param)
		case "survival_threshold":
			c.SurvivalThreshold = cast.ToFloat64(param)
		case "elitism":
			c.Elitism = cast.ToInt(param)
		case "species_elitism":
			c.SpeciesElitism = cast.ToInt(param)
		case "stagnation_threshold":
			c.StagnationThreshold = cast.ToInt(param)
		case "allow_recurrent":
			c.AllowRecurrent = cast.ToBool(param)
		case "reproduction_retry_budget":
			c.ReproductionRetryBudget = cast.ToInt(param)
		case "num_runs":
			c.NumRuns = cast.ToInt(param)
		case "num_generations":
			c.NumGenerations = cast.ToInt(param)
		case "log_level":
			c.LogLevel = param
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}

	if err := InitLogger(c.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return c, nil
}

// ReadOptionsFromFile reads NEAT options from configFilePath, resolving the
// encoding (YAML or plain text) from its file extension.
func ReadOptionsFromFile(configFilePath string) (*Options, error) {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer configFile.Close()

	if strings.HasSuffix(configFilePath, "yml") || strings.HasSuffix(configFilePath, "yaml") {
		return LoadYAMLOptions(configFile)
	}
	return LoadTextOptions(configFile)
}
