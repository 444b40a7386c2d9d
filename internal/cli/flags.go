package cli

import "qtb/internal/config"

// Flags holds command-line flags
type Flags struct {
	SuitePath  string
	NameFilter string
	Port       int
	Timeout    int
	NoSocket   bool
	Debug      bool
	Limit      int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		SuitePath:  f.SuitePath,
		NameFilter: f.NameFilter,
		Port:       f.Port,
		Timeout:    f.Timeout,
		NoSocket:   f.NoSocket,
		Debug:      f.Debug,
		Limit:      f.Limit,
	}
}
