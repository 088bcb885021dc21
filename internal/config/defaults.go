package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Search: SearchConfig{
			BaseURL:        "https://api.search.brave.com/res/v1/web/search",
			Market:         "en-US",
			SafeSearch:     "moderate",
			Freshness:      "pw", // past week, favors recent coverage
			TimeoutSeconds: 10,
			PauseMillis:    1000,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "~/.vcscout/history.db",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9109",
		},
	}
}
