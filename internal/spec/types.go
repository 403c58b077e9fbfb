package spec

// Config is the on-disk shape of .learnbench/config.yml.
type Config struct {
	Version    int              `yaml:"version"`
	Output     OutputConfig     `yaml:"output"`
	Run        RunConfig        `yaml:"run"`
	Generation GenerationConfig `yaml:"generation"`
	Learners   LearnersConfig   `yaml:"learners"`
	Models     []ModelConfig    `yaml:"models"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	DuckDB string `yaml:"duckdb"`
	CSV    string `yaml:"csv"`
}

type RunConfig struct {
	Seed          uint64  `yaml:"seed"`
	Workers       int     `yaml:"workers"`
	OnFailure     string  `yaml:"on_failure"`
	SplitRatio    float64 `yaml:"split_ratio"`
	SplitBoundary string  `yaml:"split_boundary"`
	SortByLength  bool    `yaml:"sort_by_length"`
}

type GenerationConfig struct {
	Strategy      string `yaml:"strategy"`
	Count         int    `yaml:"count"`
	MinLength     int    `yaml:"min_length"`
	MaxLength     int    `yaml:"max_length"`
	Walks         int    `yaml:"walks"`
	WalkMinLength int    `yaml:"walk_min_length"`
	WalkMaxLength int    `yaml:"walk_max_length"`
}

type LearnersConfig struct {
	DFA LearnerConfig `yaml:"dfa"`
	VPA LearnerConfig `yaml:"vpa"`
}

// LearnerConfig selects either an external Command or a Builtin learner.
type LearnerConfig struct {
	Label          string   `yaml:"label"`
	Command        []string `yaml:"command"`
	Builtin        string   `yaml:"builtin"`
	Dir            string   `yaml:"dir"`
	Env            []string `yaml:"env"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// ModelConfig names a built-in ground truth ("all" for the whole catalogue) or an automaton JSON file.
type ModelConfig struct {
	Builtin string `yaml:"builtin"`
	Path    string `yaml:"path"`
	Name    string `yaml:"name"`
}
