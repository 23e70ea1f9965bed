package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8001
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./data/uploads"
	}
	if cfg.Storage.AuditLogPath == "" {
		cfg.Storage.AuditLogPath = "./logs/audit_trail.json"
	}
	if cfg.Storage.AuditIndexPath == "" {
		cfg.Storage.AuditIndexPath = "./logs/audit_index.bleve"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4-turbo"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 45
	}
	if cfg.LLM.MaxClauses == 0 {
		cfg.LLM.MaxClauses = 15
	}
	if cfg.LLM.SummaryChars == 0 {
		cfg.LLM.SummaryChars = 5000
	}
	if cfg.LLM.SampleChars == 0 {
		cfg.LLM.SampleChars = 2000
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".pdf", ".docx", ".txt"}
	}
}
