package domain

const (
	// AppName is the human readable application name
	AppName = "DevOps CI/CD Demo Application"

	// ServiceName identifies the service in health reports
	ServiceName = "devops-demo-app"

	// Version is the application version reported by the API
	Version = "1.0.0"

	// WelcomeMessage is returned by the home endpoint
	WelcomeMessage = "Welcome to DevOps CI/CD Pipeline Demo"

	StatusSuccess = "success"
	StatusHealthy = "healthy"
)

// HomeResponse is the body of GET /
type HomeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// InfoResponse is the body of GET /api/info
type InfoResponse struct {
	AppName     string `json:"app_name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Host        string `json:"host"`
}

// NewHomeResponse builds the home payload
func NewHomeResponse() HomeResponse {
	return HomeResponse{
		Message: WelcomeMessage,
		Status:  StatusSuccess,
		Version: Version,
	}
}

// NewHealthResponse builds the health payload
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:  StatusHealthy,
		Service: ServiceName,
	}
}

// NewInfoResponse builds the info payload for the given environment and host
func NewInfoResponse(environment, host string) InfoResponse {
	return InfoResponse{
		AppName:     AppName,
		Version:     Version,
		Environment: environment,
		Host:        host,
	}
}
