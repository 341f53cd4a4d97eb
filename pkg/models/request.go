package models

// Request represents the parsed command-line inputs for one scaffolding run
type Request struct {
	Name       string            // project name
	Dir        string            // explicit target directory; empty means ./Name
	ConfigPath string            // explicit config file replacing the search path
	Overrides  map[string]string // option values fixed on the command line
}

// NewRequest returns an empty request with its override map allocated.
func NewRequest() *Request {
	return &Request{
		Overrides: make(map[string]string),
	}
}

// TargetDir returns the directory the project will be written to.
func (r *Request) TargetDir() string {
	if r.Dir != "" {
		return r.Dir
	}
	return r.Name
}
