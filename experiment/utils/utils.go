// Package utils provides filesystem helpers for persisting experiment
// artifacts: genomes and populations dumped to per-trial output directories.
package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/arcevo/neat/experiment"
	"github.com/arcevo/neat/neat/genetics"
	"github.com/arcevo/neat/neat/network/formats"
)

// WriteGenomePlain writes g's plain-text encoding to genomeFile under
// outDir/epoch.TrialId, returning the path written.
func WriteGenomePlain(genomeFile, outDir string, g *genetics.Genome, epoch *experiment.Generation) (string, error) {
	path := fmt.Sprintf("%s/%s_%d-%d", CreateOutDirForTrial(outDir, epoch.TrialId),
		genomeFile, len(g.Nodes), len(g.Genes))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if err := genetics.WriteGenomeText(file, g); err != nil {
		return "", err
	}
	return path, nil
}

// WriteGenomeDOT writes g's phenotype as a GraphViz DOT file under
// outDir/epoch.TrialId, returning the path written.
func WriteGenomeDOT(genomeFile, outDir string, g *genetics.Genome, epoch *experiment.Generation) (string, error) {
	net, err := g.Phenotype()
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("%s/%s_%d-%d.dot", CreateOutDirForTrial(outDir, epoch.TrialId),
		genomeFile, len(g.Nodes), len(g.Genes))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if err := formats.WriteDOT(file, net); err != nil {
		return "", err
	}
	return path, nil
}

// WritePopulationPlain writes every genome in pop, in plain-text encoding,
// to a single file under outDir/epoch.TrialId, returning the path written.
func WritePopulationPlain(outDir string, pop *genetics.Population, epoch *experiment.Generation) (string, error) {
	path := fmt.Sprintf("%s/gen_%d", CreateOutDirForTrial(outDir, epoch.TrialId), epoch.Id)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if err := genetics.WritePopulation(file, pop); err != nil {
		return "", err
	}
	return path, nil
}

// CreateOutDirForTrial returns outDir/trialID, creating it if it does not
// already exist.
func CreateOutDirForTrial(outDir string, trialID int) string {
	dir := fmt.Sprintf("%s/%d", outDir, trialID)
	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Fatal("failed to create output directory: ", err)
		}
	}
	return dir
}
