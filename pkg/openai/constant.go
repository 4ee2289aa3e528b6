package openai

import "time"

const (
	// DefaultModel matches the model the bot was first tuned against.
	DefaultModel = "gpt-4-0125-preview"

	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 60 * time.Second

	// OpenAI-compatible endpoints served through the same client.
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
)
