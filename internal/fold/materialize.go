package fold

import (
	"sort"

	"shotfold/internal/shotlist"
)

// Options controls which optional attribute blocks the materialized
// shots carry. Disabled blocks are omitted entirely, never emitted as
// empty placeholders.
type Options struct {
	IncludeCameraMovement bool
	IncludeShotTimecode   bool
}

// DefaultOptions includes every attribute block.
func DefaultOptions() Options {
	return Options{
		IncludeCameraMovement: true,
		IncludeShotTimecode:   true,
	}
}

// Materialize converts the keyed intermediate tree into an ordered
// project: phases ascending by number, scenes ascending within each
// phase, shots in append order. The tree is not mutated, so
// materializing twice yields structurally identical projects.
func Materialize(tree *Tree, stats Stats, title string, opts Options) *shotlist.Project {
	project := &shotlist.Project{
		Title:      title,
		TotalShots: stats.RowsConsidered,
		Phases:     []shotlist.Phase{},
	}

	for _, phaseNum := range tree.PhaseNumbers() {
		pb := tree.phases[phaseNum]
		phase := shotlist.Phase{
			PhaseNumber: pb.number,
			TimePeriod:  pb.period,
			Scenes:      []shotlist.Scene{},
		}

		sceneNums := make([]int, 0, len(pb.scenes))
		for n := range pb.scenes {
			sceneNums = append(sceneNums, n)
		}
		sort.Ints(sceneNums)

		for _, sceneNum := range sceneNums {
			sb := pb.scenes[sceneNum]
			scene := sb.scene
			scene.Shots = make([]shotlist.Shot, 0, len(sb.shots))
			for _, shot := range sb.shots {
				if !opts.IncludeCameraMovement {
					shot.CameraMovement = nil
				}
				if !opts.IncludeShotTimecode {
					shot.ShotTimecode = nil
				}
				scene.Shots = append(scene.Shots, shot)
			}
			phase.Scenes = append(phase.Scenes, scene)
		}

		project.Phases = append(project.Phases, phase)
	}

	return project
}
