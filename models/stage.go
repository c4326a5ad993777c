// ABOUTME: Deal pipeline stages and stage-indexed win probabilities
// ABOUTME: Provides DefaultProbability, DeriveProbability, and probability bands
package models

// Stage is a deal's position in the sales pipeline.
type Stage string

const (
	StageLead        Stage = "lead"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed-won"
	StageClosedLost  Stage = "closed-lost"
)

// AllStages lists the stages in pipeline order.
func AllStages() []Stage {
	return []Stage{
		StageLead,
		StageQualified,
		StageProposal,
		StageNegotiation,
		StageClosedWon,
		StageClosedLost,
	}
}

var stageProbability = map[Stage]int{
	StageLead:        10,
	StageQualified:   25,
	StageProposal:    50,
	StageNegotiation: 75,
	StageClosedWon:   100,
	StageClosedLost:  0,
}

func (s Stage) Valid() bool {
	_, ok := stageProbability[s]
	return ok
}

// Closed reports whether the stage ends the pipeline.
func (s Stage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// DefaultProbability returns the win probability a deal takes on when it enters stage.
func DefaultProbability(stage Stage) (int, bool) {
	p, ok := stageProbability[stage]
	return p, ok
}

// DeriveProbability returns the probability a deal should carry after a stage edit.
// The stage default only applies when the stage actually changed; unknown stages
// keep the current value.
func DeriveProbability(stage Stage, current int, stageChanged bool) int {
	if !stageChanged {
		return current
	}
	if p, ok := DefaultProbability(stage); ok {
		return p
	}
	return current
}

// ProbabilityBand buckets a win probability for display.
type ProbabilityBand string

const (
	BandHigh ProbabilityBand = "high"
	BandGood ProbabilityBand = "good"
	BandFair ProbabilityBand = "fair"
	BandLow  ProbabilityBand = "low"
)

func BandFor(probability int) ProbabilityBand {
	switch {
	case probability >= 80:
		return BandHigh
	case probability >= 60:
		return BandGood
	case probability >= 40:
		return BandFair
	}
	return BandLow
}
