package cmd

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	FCMBaseURL         string
	FCMServerKey       string
	StaleSweepSchedule string
	AcceptTimeout      string
}
