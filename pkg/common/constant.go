package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	LoggerNameMonitor       string = "monitor"
	LoggerNameFetcher       string = "fetcher"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameSupervisor    string = "supervisor"
	LoggerNameDb            string = "db"

	LoggerFieldCategory string = "category"
	LoggerFieldCity     string = "city"

	LoggerCategoryReading      string = "reading"
	LoggerCategoryAlert        string = "alert"
	LoggerCategorySummary      string = "summary"
	LoggerCategoryThreshold    string = "threshold"
	LoggerCategoryNotification string = "notification"
	LoggerCategoryLoop         string = "loop"

	DateLayout string = "2006-01-02"
)
