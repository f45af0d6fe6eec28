package experiment

import (
	"bytes"
	"encoding/gob"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWinnerNodes = 7
	testWinnerGenes = 5
	testDiversity   = 32
)

var (
	testAge        = Floats{1.0, 3.0, 4.0, 10.0}
	testComplexity = Floats{34.0, 21.0, 56.0, 15.0}
	testFitness    = Floats{10.0, 30.0, 40.0}
)

func TestTrialAvgEpochDuration(t *testing.T) {
	durations := []time.Duration{time.Duration(3), time.Duration(10), time.Duration(2)}
	trial := buildTestTrialWithGenerationsDuration(durations)
	assert.Equal(t, time.Duration(5), trial.AvgEpochDuration())
}

func TestTrialAvgEpochDurationEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	assert.Equal(t, EmptyDuration, trial.AvgEpochDuration())
}

func TestTrialRecentEpochEvalTime(t *testing.T) {
	now := time.Now().Add(-10 * time.Second)
	trial := buildTestTrial(1, 3)
	assert.True(t, trial.RecentEpochEvalTime().After(now))
}

func TestTrialRecentEpochEvalTimeEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	assert.Equal(t, time.Time{}, trial.RecentEpochEvalTime())
}

func TestTrialBestGenome(t *testing.T) {
	trial := buildTestTrial(1, 3)
	g, ok := trial.BestGenome(true)
	assert.True(t, ok)
	assert.NotNil(t, g)
	assert.Equal(t, fitnessScore(3), g.Fitness)
}

func TestTrialBestGenomeEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	g, ok := trial.BestGenome(true)
	assert.False(t, ok)
	assert.Nil(t, g)
}

func TestTrialSolved(t *testing.T) {
	trial := buildTestTrial(1, 5)
	assert.True(t, trial.Solved())
}

func TestTrialSolvedEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	assert.False(t, trial.Solved())
}

func TestTrialBestFitness(t *testing.T) {
	numGen := 4
	trial := buildTestTrial(1, numGen)
	fitness := trial.BestFitness()
	require.Equal(t, numGen, len(fitness))
	for i := 0; i < numGen; i++ {
		assert.Equal(t, fitnessScore(i+1), fitness[i])
	}
}

func TestTrialBestFitnessEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	assert.Equal(t, 0, len(trial.BestFitness()))
}

func TestTrialBestAge(t *testing.T) {
	numGen := 4
	trial := buildTestTrial(1, numGen)
	age := trial.BestAge()
	require.Equal(t, numGen, len(age))
	assert.Equal(t, testAge[0], age[0])
}

func TestTrialBestAgeEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	assert.Equal(t, 0, len(trial.BestAge()))
}

func TestTrialBestComplexity(t *testing.T) {
	numGen := 4
	trial := buildTestTrial(1, numGen)
	compl := trial.BestComplexity()
	require.Equal(t, numGen, len(compl))
	for _, c := range compl {
		assert.True(t, c > 0)
	}
}

func TestTrialBestComplexityEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	assert.Equal(t, 0, len(trial.BestComplexity()))
}

func TestTrialDiversity(t *testing.T) {
	numGen := 4
	trial := buildTestTrial(1, numGen)
	div := trial.Diversity()
	require.Equal(t, numGen, len(div))
	for _, d := range div {
		assert.Equal(t, float64(testDiversity), d)
	}
}

func TestTrialDiversityEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	assert.Equal(t, 0, len(trial.Diversity()))
}

func TestTrialAverage(t *testing.T) {
	numGen := 4
	trial := buildTestTrial(1, numGen)
	fitness, age, complexity := trial.Average()
	assert.Equal(t, numGen, len(fitness))
	assert.Equal(t, numGen, len(age))
	assert.Equal(t, numGen, len(complexity))
	for i := 0; i < numGen; i++ {
		assert.Equal(t, testAge.Mean(), age[i])
		assert.Equal(t, testComplexity.Mean(), complexity[i])
	}
}

func TestTrialAverageEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	fitness, age, complexity := trial.Average()
	assert.Equal(t, 0, len(fitness))
	assert.Equal(t, 0, len(age))
	assert.Equal(t, 0, len(complexity))
}

func TestTrialWinner(t *testing.T) {
	numGen := 4
	trial := buildTestTrial(1, numGen)
	nodes, genes, evals, diversity := trial.Winner()
	assert.Equal(t, testWinnerNodes, nodes)
	assert.Equal(t, testWinnerGenes, genes)
	assert.True(t, evals > 0)
	assert.Equal(t, testDiversity, diversity)
	assert.NotNil(t, trial.WinnerGeneration)
}

func TestTrialWinnerEmptyEpochs(t *testing.T) {
	trial := Trial{Id: 1, Generations: make(Generations, 0)}
	nodes, genes, evals, diversity := trial.Winner()
	assert.Equal(t, 0, nodes)
	assert.Equal(t, 0, genes)
	assert.Equal(t, 0, evals)
	assert.Equal(t, 0, diversity)
	assert.Nil(t, trial.WinnerGeneration)
}

func TestTrialEncodeDecode(t *testing.T) {
	trial := buildTestTrial(1, 3)

	var buff bytes.Buffer
	enc := gob.NewEncoder(&buff)
	require.NoError(t, trial.Encode(enc), "failed to encode trial")

	dec := gob.NewDecoder(bytes.NewReader(buff.Bytes()))
	decTrial := Trial{}
	require.NoError(t, decTrial.Decode(dec), "failed to decode trial")

	assert.Equal(t, trial.Id, decTrial.Id)
	require.Equal(t, len(trial.Generations), len(decTrial.Generations))
	for i := range trial.Generations {
		assert.Equal(t, trial.Generations[i].Id, decTrial.Generations[i].Id)
		assert.Equal(t, trial.Generations[i].Best.Fitness, decTrial.Generations[i].Best.Fitness)
	}
}

func buildTestTrial(id, numGenerations int) *Trial {
	return buildTestTrialWithFitnessMultiplier(id, numGenerations, 1.0)
}

func buildTestTrialWithFitnessMultiplier(id, numGenerations int, fitnessMultiplier float64) *Trial {
	trial := Trial{Id: id, Generations: make(Generations, numGenerations)}
	for i := 0; i < numGenerations; i++ {
		trial.Generations[i] = *buildTestGeneration(i+1, fitnessScore(i+1)*fitnessMultiplier)
	}
	return &trial
}

func buildTestTrialWithGenerationsDuration(durations []time.Duration) *Trial {
	generations := make(Generations, len(durations))
	for i, d := range durations {
		generations[i] = *buildTestGeneration(i+1, fitnessScore(i+1))
		generations[i].Duration = d
	}
	return &Trial{Id: rand.Int(), Generations: generations}
}

func fitnessScore(index int) float64 {
	return float64(index) * math.E
}
