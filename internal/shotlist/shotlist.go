package shotlist

// Document is the root wrapper written to YAML output.
type Document struct {
	Project Project `yaml:"project"`
}

// Project is the top of the shot-list hierarchy.
type Project struct {
	Title      string  `yaml:"title"`
	TotalShots int     `yaml:"total_shots"`
	Phases     []Phase `yaml:"phases"`
}

// TimePeriod is the bounded year range a phase covers.
type TimePeriod struct {
	Start *int `yaml:"start,omitempty"`
	End   *int `yaml:"end,omitempty"`
}

// Phase is a top-level narrative grouping, identified by an integer
// number unique within the project.
type Phase struct {
	PhaseNumber int        `yaml:"phase_number"`
	TimePeriod  TimePeriod `yaml:"time_period"`
	Scenes      []Scene    `yaml:"scenes"`
}

// Location describes where a scene takes place.
type Location struct {
	Type         *string `yaml:"type,omitempty"`
	LocationName *string `yaml:"location_name,omitempty"`
}

// Scene groups shots, identified by an integer number unique within
// its phase. All descriptive attributes are independently optional.
type Scene struct {
	SceneNumber int      `yaml:"scene_number"`
	Comment     *string  `yaml:"comment,omitempty"`
	Period      *string  `yaml:"period,omitempty"`
	Season      *string  `yaml:"season,omitempty"`
	Weather     *string  `yaml:"weather,omitempty"`
	Location    Location `yaml:"location"`
	Diurnal     *string  `yaml:"diurnal,omitempty"`
	LightSource *string  `yaml:"light_source,omitempty"`
	Shots       []Shot   `yaml:"shots"`
}

// CameraMovement describes how the camera moves during a shot.
type CameraMovement struct {
	Speed       *string `yaml:"speed,omitempty"`
	Type        *string `yaml:"type,omitempty"`
	VideoPrompt *string `yaml:"video_prompt,omitempty"`
}

// ShotTimecode holds the in/out markers of a shot.
type ShotTimecode struct {
	In  *string `yaml:"in,omitempty"`
	Out *string `yaml:"out,omitempty"`
}

// Shot is the smallest unit of work. Shot numbers are display
// attributes: they are not required to be unique or monotonic.
type Shot struct {
	ShotNumber     int             `yaml:"shot_number"`
	CameraAngle    *string         `yaml:"camera_angle,omitempty"`
	SpecificArea   *string         `yaml:"specific_area,omitempty"`
	Description    *string         `yaml:"description,omitempty"`
	CameraMovement *CameraMovement `yaml:"camera_movement,omitempty"`
	ShotTimecode   *ShotTimecode   `yaml:"shot_timecode,omitempty"`
	ImagePrompt    *string         `yaml:"image_prompt,omitempty"`
	Oref           *string         `yaml:"oref,omitempty"`
}

// Counts returns the number of phases, scenes and shots in the project.
func (p *Project) Counts() (phases, scenes, shots int) {
	phases = len(p.Phases)
	for _, ph := range p.Phases {
		scenes += len(ph.Scenes)
		for _, sc := range ph.Scenes {
			shots += len(sc.Shots)
		}
	}
	return phases, scenes, shots
}

// Str returns a pointer to s, for building optional attributes.
func Str(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
