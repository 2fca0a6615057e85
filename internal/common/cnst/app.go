package cnst

const (
	// AppName is the name of the application
	AppName = "bllokusync"

	// CommandName is the name of the apiserver binary
	CommandName = "apiserver"

	// ApiServerYaml is the default apiserver configuration file name
	ApiServerYaml = "apiserver.yaml"
)
