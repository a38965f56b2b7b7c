package model

// ActionResult reports the outcome of a window menu action.
type ActionResult struct {
	OK     bool    `yaml:"ok"               json:"ok"`
	Action string  `yaml:"action"           json:"action"`
	Error  string  `yaml:"error,omitempty"  json:"error,omitempty"`
	Window *Window `yaml:"window,omitempty" json:"window,omitempty"`
}
