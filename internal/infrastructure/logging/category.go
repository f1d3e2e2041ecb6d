package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Internal        Category = "Internal"
	Mongo           Category = "Mongo"
	RabbitMQ        Category = "RabbitMQ"
	ChangeFeed      Category = "ChangeFeed"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	Authorization   SubCategory = "Authorization"
	ExternalService SubCategory = "ExternalService"

	// ChangeFeed
	Watch   SubCategory = "Watch"
	Publish SubCategory = "Publish"
	Consume SubCategory = "Consume"
	Derive  SubCategory = "Derive"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ScenarioID   ExtraKey = "ScenarioId"
	EventID      ExtraKey = "EventId"
	ErrorMessage ExtraKey = "ErrorMessage"
)
