package config

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewAppConfigForTest creates an AppConfig reading path
func NewAppConfigForTest(path string) *AppConfig {
	return &AppConfig{path: path}
}

// NewRepositoryForTest creates a Repository config for the given backend
func NewRepositoryForTest(backend, dataFile string) *Repository {
	return &Repository{backend: backend, dataFile: dataFile}
}

// NewLoggerForTest creates a Logger config
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewStorageForTest(bucket string) *Storage {
	return &Storage{bucket: bucket}
}

func NewSentryForTest(dsn string) *Sentry {
	return &Sentry{dsn: dsn}
}
