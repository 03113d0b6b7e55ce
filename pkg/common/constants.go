package common

const (
	RedisStreamAlertTriggered = "alert.triggered"

	RedisStreamGroup    = "advisor-group"
	RedisStreamConsumer = "advisor-consumer"

	RedisKeyLastPrice      = "last_price:%s"
	RedisKeyAnalysisResult = "analysis_result:%s"
)
