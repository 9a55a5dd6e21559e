package config

import "flag"

// Flags are the command-line overrides of one subcommand. Only flags that
// were set on the command line override the file.
type Flags struct {
	ConfigPath  string
	WriteConfig string

	fs               *flag.FlagSet
	scale            float64
	cameraFit        string
	groupBy          string
	includeInvisible bool
	parallel         bool
	workers          int
	gameLights       bool
	logLevel         string
	logFile          string
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file (YAML or TOML)")
	fs.StringVar(&f.WriteConfig, "write-config", "", "Write the effective config to this path")
	fs.Float64Var(&f.scale, "scale", DefaultUnitScale, "Meters per table unit")
	fs.StringVar(&f.cameraFit, "camera-fit", CameraFitSimple, "Camera fit strategy: simple or accurate")
	fs.StringVar(&f.groupBy, "group-by", GroupByLayer, "Mesh grouping: layer, none or part_group")
	fs.BoolVar(&f.includeInvisible, "include-invisible", false, "Export invisible objects")
	fs.BoolVar(&f.parallel, "parallel", true, "Generate meshes in parallel")
	fs.IntVar(&f.workers, "workers", 0, "Parallel workers (0 = all CPUs)")
	fs.BoolVar(&f.gameLights, "game-lights", true, "Export GI lights as point lights")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", "", "Also log to this file")
	return f
}

// apply applies the flags that were set to cfg.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "scale":
			cfg.Export.UnitScale = float32(f.scale)
		case "camera-fit":
			cfg.Export.CameraFit = f.cameraFit
		case "group-by":
			cfg.Export.GroupBy = f.groupBy
		case "include-invisible":
			cfg.Export.IncludeInvisible = f.includeInvisible
		case "parallel":
			cfg.Export.Parallel = f.parallel
		case "workers":
			cfg.Export.Workers = f.workers
		case "game-lights":
			cfg.Export.GameLights = f.gameLights
		case "log-level":
			cfg.Logging.Level = f.logLevel
		case "log-file":
			cfg.Logging.LogFile = f.logFile
		}
	})
}
