package pipeline

// bhtSize is the number of entries in the branch history table. Every
// BNEZ's target is computable directly as pc+imm, so unlike a general
// branch predictor this one carries no target buffer.
const bhtSize = 1024

// BranchPredictorStats holds statistics for the branch predictor.
type BranchPredictorStats struct {
	// Predictions is the total number of branch predictions made.
	Predictions uint64
	// Correct is the number of correct predictions.
	Correct uint64
	// Mispredictions is the number of incorrect predictions.
	Mispredictions uint64
}

// Accuracy returns the prediction accuracy as a percentage.
func (s BranchPredictorStats) Accuracy() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predictions) * 100
}

// BranchPredictor implements a 2-bit saturating counter (bimodal) predictor
// indexed by pc>>2.
//
// States: 0=Strongly Not Taken, 1=Weakly Not Taken, 2=Weakly Taken,
// 3=Strongly Taken. Every entry starts at 2.
type BranchPredictor struct {
	table []uint8
	stats BranchPredictorStats
}

// NewBranchPredictor creates a predictor with all counters initialized to
// weakly-taken (2).
func NewBranchPredictor() *BranchPredictor {
	bp := &BranchPredictor{
		table: make([]uint8, bhtSize),
	}
	for i := range bp.table {
		bp.table[i] = 2
	}
	return bp
}

func (bp *BranchPredictor) index(pc uint32) uint32 {
	return (pc >> 2) & (bhtSize - 1)
}

// Predict returns true if the counter at pc's index is 2 or greater.
func (bp *BranchPredictor) Predict(pc uint32) bool {
	bp.stats.Predictions++
	return bp.table[bp.index(pc)] >= 2
}

// Update applies a saturating ±1 adjustment toward the observed outcome and
// records whether the predictor's prior call for pc was correct.
//
// Note: since Predict already advanced Predictions on the same prediction
// this Update corresponds to, Correct/Mispredictions are accounted against
// the counter state as it stood before this update, which is what the
// caller observed when it predicted.
func (bp *BranchPredictor) Update(pc uint32, actualTaken bool) {
	idx := bp.index(pc)
	counter := bp.table[idx]

	predicted := counter >= 2
	if predicted == actualTaken {
		bp.stats.Correct++
	} else {
		bp.stats.Mispredictions++
	}

	if actualTaken {
		if counter < 3 {
			bp.table[idx] = counter + 1
		}
	} else if counter > 0 {
		bp.table[idx] = counter - 1
	}
}

// Stats returns the branch predictor's prediction statistics.
func (bp *BranchPredictor) Stats() BranchPredictorStats {
	return bp.stats
}

// Reset restores every counter to weakly-taken and clears statistics.
func (bp *BranchPredictor) Reset() {
	for i := range bp.table {
		bp.table[i] = 2
	}
	bp.stats = BranchPredictorStats{}
}
