package derive

import "github.com/adirathodd/cs-490-project-sub009/internal/domain"

// opacityFloor keeps sparse funnel stages visible when one stage dwarfs
// the rest.
const opacityFloor = 0.15

// BuildFunnel aggregates raw status counts into the fixed six-stage pipeline
// view. Stages absent from the input render with a zero count, unknown keys
// are ignored, and negative counts are treated as zero. Bucket opacity scales
// against the largest stage and never drops below the floor.
func BuildFunnel(statusCounts map[string]int) domain.FunnelView {
	counts := make([]int, len(domain.FunnelStages))
	total := 0
	maxCount := 0
	for i, stage := range domain.FunnelStages {
		count := statusCounts[string(stage)]
		if count < 0 {
			count = 0
		}
		counts[i] = count
		total += count
		if count > maxCount {
			maxCount = count
		}
	}

	scale := maxCount
	if scale < 1 {
		scale = 1
	}

	stages := make([]domain.StageBucket, len(domain.FunnelStages))
	for i, stage := range domain.FunnelStages {
		opacity := float64(counts[i]) / float64(scale)
		if opacity < opacityFloor {
			opacity = opacityFloor
		}
		if opacity > 1 {
			opacity = 1
		}
		stages[i] = domain.StageBucket{
			Stage:   stage,
			Label:   stage.Label(),
			Count:   counts[i],
			Color:   stage.Color(),
			Opacity: opacity,
		}
	}

	return domain.FunnelView{Stages: stages, Total: total}
}
