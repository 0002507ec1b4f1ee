package model

// ================ Config ================

type ScheduleConfig struct {
	Slots          []string `envconfig:"SCHEDULE_SLOTS" default:"09:00,10:00,11:00,12:00,13:00,14:00,15:00,16:00,17:00"`
	WorkingDays    []int    `envconfig:"SCHEDULE_WORKING_DAYS" default:"1,2,3,4,5"`
	MaxAdvanceDays int      `envconfig:"SCHEDULE_MAX_ADVANCE_DAYS" default:"30"`
	WindowDays     int      `envconfig:"SCHEDULE_WINDOW_DAYS" default:"7"`
}

type ClassifierConfig struct {
	Engine              string  `envconfig:"CLASSIFIER_ENGINE" default:"logistic"`
	ConfidenceThreshold float64 `envconfig:"CLASSIFIER_CONFIDENCE_THRESHOLD" default:"0.3"`
	MaxFeatures         int     `envconfig:"CLASSIFIER_MAX_FEATURES" default:"500"`
	NgramMin            int     `envconfig:"CLASSIFIER_NGRAM_MIN" default:"1"`
	NgramMax            int     `envconfig:"CLASSIFIER_NGRAM_MAX" default:"3"`
	ModelDir            string  `envconfig:"CLASSIFIER_MODEL_DIR"`
}

type SessionConfig struct {
	Backend string `envconfig:"SESSION_BACKEND" default:"memory"`
	TTL     string `envconfig:"SESSION_TTL" default:"15m"`
}

type BotConfig struct {
	TypoCorrectionsPath string `envconfig:"BOT_TYPO_CORRECTIONS" default:"data/typo_corrections.json"`
	DefaultUserID       string `envconfig:"BOT_DEFAULT_USER_ID" default:"user"`
}
