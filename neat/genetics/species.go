package genetics

import (
	"fmt"
	"sort"

	"github.com/arcevo/neat/neat"
)

// Species groups genomes whose mutual compatibility distance falls under the
// population's compatibility threshold. It owns no genomes: Members holds
// non-owning references into the population's genome slice. Representative
// is the genome the species was founded with; speciation compares candidates
// against it and never replaces it, so in later generations it is not
// necessarily one of Members.
type Species struct {
	Id int64

	Representative *Genome
	Members        []*Genome

	// BestFitnessEver is the highest raw fitness any member of this species
	// lineage has ever recorded, across generations.
	BestFitnessEver float64
	// Age is the number of generations this species has existed.
	Age int
	// Staleness counts consecutive generations since BestFitnessEver last
	// improved; a species is a stagnation-culling candidate once this meets
	// or exceeds opts.StagnationThreshold.
	Staleness int

	// ExpectedOffspring is computed during reproduction's offspring
	// allocation step and consumed by the reproduce phase.
	ExpectedOffspring int
}

// NewSpecies creates a species represented by representative, with
// representative as its sole initial member.
func NewSpecies(id int64, representative *Genome) *Species {
	return &Species{
		Id:             id,
		Representative: representative,
		Members:        []*Genome{representative},
	}
}

// AddMember appends g to the species and stamps g's SpeciesId.
func (s *Species) AddMember(g *Genome) {
	g.SpeciesId = s.Id
	s.Members = append(s.Members, g)
}

// IsEmpty reports whether the species has lost all its members; an empty
// species is removed at the end of speciation regardless of elitism or
// staleness.
func (s *Species) IsEmpty() bool {
	return len(s.Members) == 0
}

// MaxFitness returns the highest raw fitness among the species' current
// members, or 0 if the species has no members.
func (s *Species) MaxFitness() float64 {
	best := 0.0
	for i, m := range s.Members {
		if i == 0 || m.Fitness > best {
			best = m.Fitness
		}
	}
	return best
}

// AdjustFitness applies fitness sharing: every member's AdjustedFitness
// becomes its raw Fitness divided by the species size, so a species'
// reproductive share reflects per-genome fitness rather than raw headcount
// (fitness-sharing conservation: summing adjusted fitness over the species
// gives the species' total raw fitness divided by its size).
func (s *Species) AdjustFitness() {
	size := float64(len(s.Members))
	if size == 0 {
		return
	}
	for _, m := range s.Members {
		m.AdjustedFitness = m.Fitness / size
	}
}

// UpdateStaleness refreshes BestFitnessEver/Staleness from the species'
// current members. Called once per generation, after fitness evaluation and
// before stagnation culling.
func (s *Species) UpdateStaleness() {
	s.Age++
	if current := s.MaxFitness(); current > s.BestFitnessEver {
		s.BestFitnessEver = current
		s.Staleness = 0
	} else {
		s.Staleness++
	}
}

// IsStagnant reports whether the species has gone threshold or more
// generations without improving BestFitnessEver.
func (s *Species) IsStagnant(threshold int) bool {
	return s.Staleness >= threshold
}

// TotalAdjustedFitness sums AdjustedFitness across members; callers must
// call AdjustFitness first for the result to be meaningful.
func (s *Species) TotalAdjustedFitness() float64 {
	total := 0.0
	for _, m := range s.Members {
		total += m.AdjustedFitness
	}
	return total
}

// SortMembersByFitness orders Members by decreasing raw fitness, the order
// survival-threshold selection and elitism both depend on.
func (s *Species) SortMembersByFitness() {
	sort.Slice(s.Members, func(i, j int) bool { return s.Members[i].Fitness > s.Members[j].Fitness })
}

// Survivors returns the top fraction (opts.SurvivalThreshold) of Members by
// fitness, always at least one genome when the species is non-empty. Members
// must already be sorted by SortMembersByFitness.
func (s *Species) Survivors(opts *neat.Options) []*Genome {
	if len(s.Members) == 0 {
		return nil
	}
	count := int(float64(len(s.Members)) * opts.SurvivalThreshold)
	if count < 1 {
		count = 1
	}
	if count > len(s.Members) {
		count = len(s.Members)
	}
	return s.Members[:count]
}

func (s *Species) String() string {
	return fmt.Sprintf("Species(id:%d, size:%d, best-ever:%.4f, staleness:%d)",
		s.Id, len(s.Members), s.BestFitnessEver, s.Staleness)
}
