package fold

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"shotfold/internal/shotlist"
	"shotfold/internal/tsv"
)

// Column names the folder recognizes. These are a contract with the
// tabular source; the exported YAML field names are decoupled from them.
const (
	colPhaseNum     = "PHASE_NUM"
	colPhaseStart   = "PHASE_START"
	colPhaseEnd     = "PHASE_END"
	colSceneNum     = "SCENE_NUM"
	colSceneComment = "SCENE_CONTEXT_COMMENT"
	colPeriod       = "PERIOD"
	colSeason       = "SEASON"
	colWeather      = "WEATHER"
	colLocType      = "LOC_TYPE"
	colLocation     = "LOCATION"
	colDiurnal      = "DIURNAL"
	colLightSource  = "LIGHT_SOURCE(S)"
	colShotNum      = "SHOT_NUM"
	colAngle        = "ANGLE"
	colSpecificArea = "SPECIFIC AREA"
	colDescription  = "SHOT_DESCRIPTION"
	colMoveSpeed    = "MOVE_SPEED"
	colMoveType     = "MOVE_TYPE"
	colVideoPrompt  = "VIDEO_PROMPT"
	colIn           = "IN"
	colOut          = "OUT"
	colImagePrompt  = "IMAGE_PROMPT"
	colOref         = "OREF"
)

// DropReason explains why a row contributed no shot.
type DropReason string

const (
	DropMissingShotNumber  DropReason = "missing_shot_number"
	DropInvalidSceneNumber DropReason = "invalid_scene_number"
	DropUnresolvedPhase    DropReason = "unresolved_phase"
	DropUnresolvedScene    DropReason = "unresolved_scene"
)

// Stats accumulates per-row outcomes across one fold. Dropped rows are
// recorded here instead of surfacing as errors.
type Stats struct {
	RowsRead int
	// RowsConsidered counts rows that carried a shot number, including
	// rows later dropped because their phase or scene never resolved.
	// This is the project's total_shots.
	RowsConsidered int
	ShotsAttached  int
	Drops          map[DropReason]int
}

func (s *Stats) drop(reason DropReason) {
	if s.Drops == nil {
		s.Drops = make(map[DropReason]int)
	}
	s.Drops[reason]++
}

// Dropped returns the total number of dropped rows.
func (s Stats) Dropped() int {
	n := 0
	for _, c := range s.Drops {
		n += c
	}
	return n
}

type sceneBuilder struct {
	scene shotlist.Scene
	shots []shotlist.Shot
}

type phaseBuilder struct {
	number int
	period shotlist.TimePeriod
	scenes map[int]*sceneBuilder
}

// Tree is the keyed intermediate structure a fold produces: phases by
// number, scenes by (phase, scene) pair, shots in append order. It is
// converted to an ordered Project by Materialize.
type Tree struct {
	phases map[int]*phaseBuilder
}

// Folder runs the carry-forward fold over one source. State is scoped
// to a single fold; use a fresh Folder per source.
type Folder struct {
	norm *tsv.Normalizer

	currentPhase int
	currentScene int
	havePhase    bool
	haveScene    bool
}

// New builds a folder using the given normalizer.
func New(norm *tsv.Normalizer) *Folder {
	return &Folder{norm: norm}
}

// Fold consumes rows in arrival order and builds the keyed tree.
// Row-level problems become drop outcomes in the returned stats; an
// error is returned only for values the source contract requires to be
// numeric (phase numbers, phase range bounds, shot numbers), which fail
// the whole source.
func (f *Folder) Fold(tbl *tsv.Table) (*Tree, Stats, error) {
	tree := &Tree{phases: make(map[int]*phaseBuilder)}
	stats := Stats{}

	for i, row := range tbl.Rows {
		stats.RowsRead++
		// Header is row 1 in the file.
		line := i + 2

		cells := f.norm.CleanRow(tbl, row)

		// Rows without a shot number are separators or padding.
		shotRaw, ok := cells[colShotNum]
		if !ok {
			stats.drop(DropMissingShotNumber)
			continue
		}
		stats.RowsConsidered++

		if raw, ok := cells[colPhaseNum]; ok {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, stats, fmt.Errorf("row %d: parse phase number %q: %w", line, raw, err)
			}
			f.currentPhase = n
			f.havePhase = true
		}
		if raw, ok := cells[colSceneNum]; ok {
			n, ok := parseSceneNumber(raw)
			if !ok {
				// No fallback to the previous scene: the row is gone.
				stats.drop(DropInvalidSceneNumber)
				continue
			}
			f.currentScene = n
			f.haveScene = true
		}

		if !f.havePhase {
			stats.drop(DropUnresolvedPhase)
			continue
		}
		if !f.haveScene {
			stats.drop(DropUnresolvedScene)
			continue
		}

		shotNum, err := strconv.Atoi(shotRaw)
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: parse shot number %q: %w", line, shotRaw, err)
		}

		phase, err := tree.ensurePhase(f.currentPhase, cells)
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: %w", line, err)
		}
		scene := phase.ensureScene(f.currentScene, cells)
		scene.shots = append(scene.shots, buildShot(shotNum, cells))
		stats.ShotsAttached++
	}

	return tree, stats, nil
}

// ensurePhase creates the phase entry on first sight. Later rows with
// the same number never overwrite the range: first writer wins.
func (t *Tree) ensurePhase(number int, cells map[string]string) (*phaseBuilder, error) {
	if p, ok := t.phases[number]; ok {
		return p, nil
	}
	p := &phaseBuilder{
		number: number,
		scenes: make(map[int]*sceneBuilder),
	}
	if raw, ok := cells[colPhaseStart]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse phase start %q: %w", raw, err)
		}
		p.period.Start = shotlist.Int(n)
	}
	if raw, ok := cells[colPhaseEnd]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse phase end %q: %w", raw, err)
		}
		p.period.End = shotlist.Int(n)
	}
	t.phases[number] = p
	return p, nil
}

// ensureScene creates the scene entry on first sight, seeded from the
// introducing row's descriptive fields. First writer wins.
func (p *phaseBuilder) ensureScene(number int, cells map[string]string) *sceneBuilder {
	if s, ok := p.scenes[number]; ok {
		return s
	}
	s := &sceneBuilder{
		scene: shotlist.Scene{
			SceneNumber: number,
			Comment:     optional(cells, colSceneComment),
			Period:      display(cells, colPeriod),
			Season:      display(cells, colSeason),
			Weather:     display(cells, colWeather),
			Location: shotlist.Location{
				Type:         optional(cells, colLocType),
				LocationName: display(cells, colLocation),
			},
			Diurnal:     optional(cells, colDiurnal),
			LightSource: optional(cells, colLightSource),
		},
	}
	p.scenes[number] = s
	return s
}

func buildShot(number int, cells map[string]string) shotlist.Shot {
	shot := shotlist.Shot{
		ShotNumber:   number,
		CameraAngle:  optional(cells, colAngle),
		SpecificArea: display(cells, colSpecificArea),
		Description:  optional(cells, colDescription),
		CameraMovement: &shotlist.CameraMovement{
			Speed:       display(cells, colMoveSpeed),
			Type:        display(cells, colMoveType),
			VideoPrompt: optional(cells, colVideoPrompt),
		},
		ShotTimecode: &shotlist.ShotTimecode{
			In:  optional(cells, colIn),
			Out: optional(cells, colOut),
		},
		ImagePrompt: optional(cells, colImagePrompt),
	}
	// The overlay reference flag is only carried for the exact literal
	// "TRUE"; "true", "false" and absence all omit it.
	if cells[colOref] == "TRUE" {
		shot.Oref = shotlist.Str("TRUE")
	}
	return shot
}

// parseSceneNumber tolerates decimal representations ("2.0" → 2,
// truncating toward zero) since spreadsheets export numeric cells that
// way.
func parseSceneNumber(raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	fv, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(fv) || math.IsInf(fv, 0) {
		return 0, false
	}
	return int(fv), true
}

func optional(cells map[string]string, column string) *string {
	if v, ok := cells[column]; ok {
		return shotlist.Str(v)
	}
	return nil
}

// Columns whose values are reshaped for display: underscores become
// spaces and the value is sentence-cased. Applied after substitution,
// matching the order the rest of the toolchain expects.
var displayColumns = map[string]bool{
	colLocation:     true,
	colSpecificArea: true,
	colPeriod:       true,
	colSeason:       true,
	colWeather:      true,
	colMoveSpeed:    true,
	colMoveType:     true,
}

func display(cells map[string]string, column string) *string {
	v, ok := cells[column]
	if !ok {
		return nil
	}
	if displayColumns[column] {
		v = sentenceCase(v)
	}
	return shotlist.Str(v)
}

func sentenceCase(v string) string {
	v = strings.ToLower(strings.ReplaceAll(v, "_", " "))
	r := []rune(v)
	if len(r) == 0 {
		return v
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// PhaseNumbers returns the phase keys in ascending order, mostly for
// tests and diagnostics.
func (t *Tree) PhaseNumbers() []int {
	nums := make([]int, 0, len(t.phases))
	for n := range t.phases {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
