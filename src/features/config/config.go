package config

// Config holds the application configuration.
type Config struct {
	Catalog  Catalog  `yaml:"catalog" validate:"required"`
	Logger   Logger   `yaml:"logger"`
	Server   Server   `yaml:"server"`
	Telegram Telegram `yaml:"telegram"`
	Sync     Sync     `yaml:"sync"`
	Jobs     Jobs     `yaml:"jobs"`
}

// Catalog points at the source library snapshot.
type Catalog struct {
	// Source is how the snapshot is loaded: "itunes" (Library.xml
	// export), "sqlite" (catalog database) or "scan" (walk a music
	// directory reading file tags).
	Source string `yaml:"source" validate:"required,oneof=itunes sqlite scan"`
	Path   string `yaml:"path" validate:"required"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

type Telegram struct {
	Enabled      bool     `yaml:"enabled"`
	Token        string   `yaml:"token"`
	AllowedUsers []string `yaml:"allowedUsers"`
}

type Jobs struct {
	Log      bool          `yaml:"log"`
	LogPath  string        `yaml:"log_path"`
	Webhooks WebhookConfig `yaml:"webhooks"`
}

type WebhookConfig struct {
	Enabled  bool     `yaml:"enabled"`
	JobTypes []string `yaml:"job_types"`
	Command  string   `yaml:"command"`
}

// Sync holds configuration for destination volumes.
type Sync struct {
	Enabled bool     `yaml:"enabled"`
	Devices []Device `yaml:"devices"`
}

// Device holds configuration for one destination volume. The sync options
// here are the defaults for the device's first sync; once a profile is
// saved on the volume itself, the profile wins.
type Device struct {
	UUID     string `yaml:"uuid"`
	Name     string `yaml:"name"`
	SyncPath string `yaml:"sync_path"`

	CapacityBytes        int64 `yaml:"capacity_bytes" validate:"gte=0"`
	RandomFill           bool  `yaml:"random_fill"`
	UseSubfolders        bool  `yaml:"use_subfolders"`
	MaxFilesPerSubfolder int   `yaml:"max_files_per_subfolder"`
}
