package config

// SignerConfig tunes batch signing: pool width and the rate budget
// applied across the whole batch.
type SignerConfig struct {
	KeyFile       string `mapstructure:"KEY_FILE"        json:"key_file"        validate:"omitempty"`
	Workers       int    `mapstructure:"WORKERS"         json:"workers"         validate:"required,min=1,max=256"`
	QueueSize     int    `mapstructure:"QUEUE_SIZE"      json:"queue_size"      validate:"required,min=1,max=65536"`
	RatePerSecond int    `mapstructure:"RATE_PER_SECOND" json:"rate_per_second" validate:"min=0,max=100000"`
	Burst         int    `mapstructure:"BURST"           json:"burst"           validate:"min=0,max=10000"`
}
